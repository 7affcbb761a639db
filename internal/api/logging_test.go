package api

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abhisek/cogniq/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "cogniq.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLogging_RecordsOutcomes(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockTransport(
		MockResponse{StatusCode: 200, Body: []int{}},
		MockResponse{Err: &ErrHTTPStatus{Method: "GET", Path: "/courses/9", StatusCode: 404, Detail: "Course not found"}},
	)
	tr := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), "courses")
	if _, err := tr.Do(ctx, Request{Method: "GET", Path: "/courses/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tr.Do(ctx, Request{Method: "GET", Path: "/courses/9"}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryAPIRequests(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	// Newest first.
	failed, ok := events[0], events[1]
	if failed.Success || failed.StatusCode != 404 || failed.Path != "/courses/9" {
		t.Fatalf("unexpected failure event: %+v", failed.APIRequestEventData)
	}
	if failed.ErrorMessage == "" {
		t.Fatal("expected error message on failure event")
	}
	if !ok.Success || ok.StatusCode != 200 || ok.Purpose != "courses" {
		t.Fatalf("unexpected success event: %+v", ok.APIRequestEventData)
	}
}

func TestLogging_CancelledContextStillLogged(t *testing.T) {
	repo := openEventRepo(t)
	tr := WithLogging(NewMockTransport(MockResponse{Err: context.Canceled}), repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tr.Do(ctx, Request{Method: "GET", Path: "/auth/me"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	events, err := repo.QueryAPIRequests(context.Background(), store.QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Success {
		t.Fatalf("expected one failed event, got %+v", events)
	}
}

func TestPurposeDefaultsUnknown(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("expected unknown purpose, got %q", got)
	}
	if got := PurposeFrom(WithPurpose(context.Background(), "login")); got != "login" {
		t.Fatalf("expected login, got %q", got)
	}
}
