package events

import "time"

// TransportStart is emitted before the request body is handed to the
// transport.
type TransportStart struct {
	RequestBytes int
}

// TransportFinish is emitted after the transport returns. StatusCode
// and ResponseBytes are zero when the transport failed outright.
type TransportFinish struct {
	StatusCode    int
	ResponseBytes int
	Err           error
	Duration      time.Duration
}
