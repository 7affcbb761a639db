package screen

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/cogniq/internal/store"
)

// brokenRepo fails every session event append.
type brokenRepo struct {
	store.EventRepo
	calls int
}

func (r *brokenRepo) AppendSessionEvent(context.Context, store.SessionEventData) error {
	r.calls++
	return errors.New("disk full")
}

func TestLogSessionEvent_WarnsOnFailure(t *testing.T) {
	var stderr bytes.Buffer
	repo := &brokenRepo{}
	d := Deps{EventRepo: repo, Stderr: &stderr}

	d.LogSessionEvent(context.Background(), store.SessionEventData{SessionID: "s1", Action: store.ActionStart})

	if repo.calls != 1 {
		t.Fatalf("append calls = %d, want 1", repo.calls)
	}
	want := "warning: failed to log session event: disk full"
	if !strings.Contains(stderr.String(), want) {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestLogSessionEvent_NoRepo(t *testing.T) {
	var stderr bytes.Buffer
	Deps{Stderr: &stderr}.LogSessionEvent(context.Background(), store.SessionEventData{SessionID: "s1"})
	if stderr.Len() != 0 {
		t.Errorf("unexpected output %q", stderr.String())
	}
}
