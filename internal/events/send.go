package events

import "time"

// SendStart is emitted before an operation is sent.
type SendStart struct {
	Query         string
	OperationName string
	OperationKind string
}

// SendFinish is emitted after the outcome of a send is classified.
// Err holds the classified error, or nil on success.
type SendFinish struct {
	OperationName string
	OperationKind string
	Err           error
	Duration      time.Duration
}
