package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// JSON is a response whose body was decoded into T.
type JSON[T any] struct {
	*Response
	Data T
}

// RequestOption adjusts a single request.
type RequestOption func(*Request)

// WithHeader sets a header on one request.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// Post sends body as JSON and decodes the answer into T. An error status
// whose body still decodes, such as an error envelope, returns both the
// decoded value and the classified error.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*JSON[T], error) {
	req := Request{Method: http.MethodPost, Path: path, Body: body}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.Do(ctx, req)
	if resp == nil {
		return nil, err
	}

	out := &JSON[T]{Response: resp}
	if len(resp.Body) == 0 {
		return out, err
	}
	if decodeErr := json.Unmarshal(resp.Body, &out.Data); decodeErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("httpclient: decode %s: %w", path, decodeErr)
	}
	return out, err
}
