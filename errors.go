package gleamql

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// PathElement is one segment of a response path: a string field key or
// an int list index.
type PathElement any

// Path locates a value within the response data, as reported by the
// server in an error's path array.
type Path []PathElement

// String renders the path with dotted keys and bracketed indexes,
// e.g. "countries.[1].name".
func (p Path) String() string {
	var b strings.Builder
	for i, elem := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		switch v := elem.(type) {
		case string:
			b.WriteString(v)
		case int:
			fmt.Fprintf(&b, "[%d]", v)
		}
	}
	return b.String()
}

// UnmarshalJSON accepts the wire form of a path: an array mixing
// strings and numbers. Integral numbers become int elements.
func (p *Path) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Path, len(raw))
	for i, elem := range raw {
		switch v := elem.(type) {
		case string:
			out[i] = v
			continue
		case float64:
			if v == math.Trunc(v) && math.Abs(v) <= maxJSONInt {
				out[i] = int(v)
				continue
			}
		}
		return fmt.Errorf("gleamql: path element %d is neither a string nor an integer", i)
	}
	*p = out
	return nil
}

// GraphQLError is one entry of a response's top-level errors array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       Path           `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// GraphQLErrors is a server-reported errors array. Send returns it as
// the error value whenever the response carries one, regardless of
// HTTP status.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	switch len(e) {
	case 0:
		return "gleamql: server returned errors"
	case 1:
		return "gleamql: server returned an error: " + e[0].Message
	}
	return fmt.Sprintf("gleamql: server returned %d errors, first: %s", len(e), e[0].Message)
}

// NetworkError wraps a transport failure: the request never produced
// an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "gleamql: network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx response that did not carry a GraphQL
// errors array. Body holds the raw response body.
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gleamql: server returned HTTP %d", e.StatusCode)
}

// InvalidJSONError reports a 2xx response whose body could not be
// parsed as JSON.
type InvalidJSONError struct {
	Err  error
	Body []byte
}

func (e *InvalidJSONError) Error() string {
	return "gleamql: response is not valid JSON: " + e.Err.Error()
}

func (e *InvalidJSONError) Unwrap() error { return e.Err }

// DecodeFailure pinpoints one place where the response data did not
// have the shape the operation's decoder expects. Path segments are
// response keys, with list indexes rendered in decimal.
type DecodeFailure struct {
	Expected string
	Found    string
	Path     []string
}

func (f DecodeFailure) String() string {
	at := "response root"
	if len(f.Path) > 0 {
		at = strings.Join(f.Path, ".")
	}
	return fmt.Sprintf("expected %s, found %s at %s", f.Expected, f.Found, at)
}

// DecodeError reports a well-formed response whose data did not match
// the operation's decoder. Every failure found during the walk is
// retained, not just the first.
type DecodeError struct {
	Failures []DecodeFailure
	Body     []byte
}

func (e *DecodeError) Error() string {
	switch len(e.Failures) {
	case 0:
		return "gleamql: response data did not decode"
	case 1:
		return "gleamql: response data did not decode: " + e.Failures[0].String()
	}
	return fmt.Sprintf("gleamql: response data did not decode: %s (and %d more)",
		e.Failures[0].String(), len(e.Failures)-1)
}
