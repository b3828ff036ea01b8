package gleamql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cobbinma/gleamql/internal/eventbus"
	"github.com/cobbinma/gleamql/internal/events"
	"github.com/cobbinma/gleamql/internal/sendid"
)

// Response is the transport-level outcome of delivering one request:
// the HTTP status code and the raw response body.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport delivers a serialized request body to a GraphQL server.
// A transport returns an error only when no response was produced at
// all; HTTP-level failures are reported through the Response status
// code so Send can classify them.
type Transport func(ctx context.Context, body []byte) (*Response, error)

// requestBody is the wire shape of a GraphQL POST request.
type requestBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Send executes the operation against the transport and classifies the
// outcome.
//
// On success it returns the decoded data. A response whose data member
// is JSON null returns (nil, nil): the server answered, and the answer
// was empty. Failures are reported as one of *NetworkError,
// *HTTPError, GraphQLErrors, *InvalidJSONError or *DecodeError; a
// server-reported errors array takes precedence over everything else
// in the response.
func Send[T any](ctx context.Context, op *Operation[T], transport Transport, variables map[string]any) (*T, error) {
	ctx, _ = sendid.NewContext(ctx)
	eventbus.Publish(ctx, events.SendStart{
		Query:         op.text,
		OperationName: op.name,
		OperationKind: string(op.kind),
	})
	start := time.Now()
	result, err := send(ctx, op, transport, variables)
	eventbus.Publish(ctx, events.SendFinish{
		OperationName: op.name,
		OperationKind: string(op.kind),
		Err:           err,
		Duration:      time.Since(start),
	})
	return result, err
}

func send[T any](ctx context.Context, op *Operation[T], transport Transport, variables map[string]any) (*T, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(requestBody{Query: op.text, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("gleamql: marshal request body: %w", err)
	}

	eventbus.Publish(ctx, events.TransportStart{RequestBytes: len(body)})
	start := time.Now()
	resp, terr := transport(ctx, body)
	finish := events.TransportFinish{Err: terr, Duration: time.Since(start)}
	if resp != nil {
		finish.StatusCode = resp.StatusCode
		finish.ResponseBytes = len(resp.Body)
	}
	eventbus.Publish(ctx, finish)

	if terr != nil {
		return nil, &NetworkError{Err: terr}
	}
	return classify(op, resp)
}

// classify maps a transport response onto the error taxonomy. A
// well-formed errors array wins on any status; a non-2xx response
// without one becomes an HTTPError no matter what the body holds.
func classify[T any](op *Operation[T], resp *Response) (*T, error) {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	var raw any
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		if ok {
			return nil, &InvalidJSONError{Err: err, Body: resp.Body}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	if errs := serverErrors(resp.Body, raw); len(errs) > 0 {
		return nil, errs
	}
	if !ok {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: resp.Body}
	}

	obj, isObject := raw.(map[string]any)
	if !isObject {
		return nil, &DecodeError{
			Failures: []DecodeFailure{newFailure("Object", raw, nil)},
			Body:     resp.Body,
		}
	}
	data, present := obj["data"]
	if !present {
		return nil, &DecodeError{
			Failures: []DecodeFailure{{Expected: "Object", Found: "Nothing", Path: []string{"data"}}},
			Body:     resp.Body,
		}
	}
	if data == nil {
		return nil, nil
	}
	value, failures := op.decode(data)
	if len(failures) > 0 {
		return nil, &DecodeError{Failures: failures, Body: resp.Body}
	}
	return &value, nil
}

// serverErrors extracts the top-level errors array when it is present
// and well formed. A malformed errors value is treated as absent.
func serverErrors(body []byte, raw any) GraphQLErrors {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	if _, present := obj["errors"]; !present {
		return nil
	}
	var envelope struct {
		Errors GraphQLErrors `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	return envelope.Errors
}
