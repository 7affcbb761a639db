package api

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned reply for the MockTransport.
type MockResponse struct {
	StatusCode int
	Body       any
	Err        error
}

// MockTransport is a deterministic Transport for testing.
// It returns canned replies in FIFO order and records all requests.
type MockTransport struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockTransport creates a MockTransport with the given canned replies.
func NewMockTransport(responses ...MockResponse) *MockTransport {
	return &MockTransport{responses: responses}
}

// Do returns the next canned reply or ErrUnavailable if the queue is empty.
func (m *MockTransport) Do(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	body, err := json.Marshal(resp.Body)
	if err != nil {
		return nil, err
	}
	status := resp.StatusCode
	if status == 0 {
		status = 200
	}
	return &Response{StatusCode: status, Body: body}, nil
}

// AddResponse appends a canned reply to the queue.
func (m *MockTransport) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Do calls made.
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
