package api

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/cogniq/internal/store"
)

// LoggingTransport is a decorator that records every API call as an event.
type LoggingTransport struct {
	inner     Transport
	eventRepo store.EventRepo
}

// WithLogging wraps a Transport with event logging.
func WithLogging(t Transport, repo store.EventRepo) Transport {
	return &LoggingTransport{inner: t, eventRepo: repo}
}

func (l *LoggingTransport) Do(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Do(ctx, req)

	data := store.APIRequestEventData{
		Method:    req.Method,
		Path:      req.Path,
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.StatusCode = resp.StatusCode
	}
	if err != nil {
		data.StatusCode = StatusCode(err)
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails. The
	// request context may already be done.
	if logErr := l.eventRepo.AppendAPIRequest(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log API request event: %v\n", logErr)
	}

	return resp, err
}
