package api

import (
	"github.com/abhisek/cogniq/internal/config"
	"github.com/abhisek/cogniq/internal/store"
)

// NewClientFromConfig builds a Client wrapped with retry and logging
// middleware: caller → retry → logging → HTTP. A nil repo disables logging.
func NewClientFromConfig(cfg config.Config, eventRepo store.EventRepo) *Client {
	var t Transport = NewHTTPTransport(cfg.APIURL, nil, cfg.Timeout)
	if eventRepo != nil {
		t = WithLogging(t, eventRepo)
	}
	return NewClient(WithRetry(t, cfg.Retry))
}
