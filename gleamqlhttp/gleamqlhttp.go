// Package gleamqlhttp provides the standard net/http transport for
// gleamql operations.
package gleamqlhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cobbinma/gleamql"
)

// ErrBodyTooLarge is returned when a response body exceeds the
// configured limit.
var ErrBodyTooLarge = errors.New("gleamqlhttp: response body too large")

// Options configure the transport.
type Options struct {
	// Client is the HTTP client requests are sent with. Default is
	// http.DefaultClient.
	Client *http.Client

	// Header holds extra headers added to every request.
	Header http.Header

	// MaxBodyBytes limits the size of the response body. 0 means
	// unlimited.
	MaxBodyBytes int64
}

// Option configures the transport.
type Option func(*Options)

func WithHTTPClient(c *http.Client) Option { return func(o *Options) { o.Client = c } }
func WithMaxBodyBytes(n int64) Option      { return func(o *Options) { o.MaxBodyBytes = n } }

// WithHeader adds a header to every request, such as an Authorization
// token. Repeated calls accumulate.
func WithHeader(name, value string) Option {
	return func(o *Options) {
		if o.Header == nil {
			o.Header = http.Header{}
		}
		o.Header.Add(name, value)
	}
}

// New builds a gleamql.Transport that POSTs request bodies to the
// endpoint as application/json. The transport reports HTTP statuses
// through the response so Send can classify them; it only returns an
// error when no response was received.
func New(endpoint string, opts ...Option) gleamql.Transport {
	var op Options
	for _, opt := range opts {
		opt(&op)
	}
	client := op.Client
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context, body []byte) (*gleamql.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		for name, values := range op.Header {
			for _, value := range values {
				req.Header.Add(name, value)
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		reader := io.Reader(resp.Body)
		if op.MaxBodyBytes > 0 {
			reader = io.LimitReader(resp.Body, op.MaxBodyBytes+1)
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
		if op.MaxBodyBytes > 0 && int64(len(data)) > op.MaxBodyBytes {
			return nil, ErrBodyTooLarge
		}
		return &gleamql.Response{StatusCode: resp.StatusCode, Body: data}, nil
	}
}
