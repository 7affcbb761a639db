package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Transport is the core abstraction for talking to the platform. Decorators
// add retry and logging around a base transport.
type Transport interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string

	// Body is JSON-encoded when non-nil.
	Body any

	// Token is sent as a bearer token when non-empty.
	Token string
}

// Response is a successful (2xx) reply.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// HTTPTransport sends requests to the platform over HTTP.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport returns a transport rooted at baseURL. A nil client uses
// a default client with the given timeout.
func NewHTTPTransport(baseURL string, client *http.Client, timeout time.Duration) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPTransport{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (t *HTTPTransport) Do(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, t.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrUnavailable{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{StatusCode: resp.StatusCode, Body: data}, nil
	}
	return nil, classify(req, resp.StatusCode, data)
}

// classify maps a non-2xx reply to a typed error.
func classify(req Request, status int, body []byte) error {
	statusErr := &ErrHTTPStatus{
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: status,
		Detail:     errorDetail(body),
	}
	switch {
	case status == http.StatusUnauthorized:
		return &ErrUnauthorized{Err: statusErr}
	case status == http.StatusTooManyRequests, status >= 500:
		return &ErrUnavailable{Err: statusErr}
	}
	return statusErr
}

// errorDetail extracts the "detail" field, which is a string for handled
// errors and a list of objects for validation errors.
func errorDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}
	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	return string(envelope.Detail)
}
