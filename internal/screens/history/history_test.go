package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cogniq/internal/store"
)

func newRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "cogniq.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	s.Update(s.Init()())
	if !s.loaded {
		t.Fatal("history did not load")
	}
}

func TestHistory_Empty(t *testing.T) {
	s := New(newRepo(t))
	load(t, s)
	if !strings.Contains(s.View(120, 30), "No sessions yet") {
		t.Error("expected empty state")
	}
}

func TestHistory_ListsSessionsAndExpandsSubmissions(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	events := []store.SessionEventData{
		{SessionID: "s-1", Kind: "technical", Action: store.ActionStart, Questions: 2, Detail: "Technical assessment"},
		{SessionID: "s-1", Kind: "technical", Action: store.ActionComplete, Questions: 2, Attempts: 3, Correct: 2},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	subs := []store.SubmissionEventData{
		{SessionID: "s-1", Kind: "technical", QuestionID: "1", AttemptNumber: 1, Success: true, Reference: "41"},
		{SessionID: "s-1", Kind: "technical", QuestionID: "2", AttemptNumber: 1, ErrorMessage: "platform unavailable"},
	}
	for _, sub := range subs {
		if err := repo.AppendSubmission(ctx, sub); err != nil {
			t.Fatalf("append submission: %v", err)
		}
	}

	s := New(repo)
	load(t, s)
	if len(s.sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(s.sessions))
	}
	if !strings.Contains(s.View(160, 30), "2/2 correct, 3 attempts") {
		t.Errorf("unexpected view %q", s.View(160, 30))
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expanding should load submissions")
	}
	s.Update(cmd())

	view := s.View(160, 30)
	for _, want := range []string{"1 saved, 1 failed", "platform unavailable", "cogniq resubmit s-1"} {
		if !strings.Contains(view, want) {
			t.Errorf("expanded view missing %q", want)
		}
	}

	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("collapsing should not reload")
	}
}

func TestSummaryLine(t *testing.T) {
	started := time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
	tests := []struct {
		name string
		sess store.SessionSummary
		want string
	}{
		{
			name: "abandoned",
			sess: store.SessionSummary{Kind: "technical", LastAction: store.ActionAbandon, StartedAt: started},
			want: "abandon",
		},
		{
			name: "behavioral",
			sess: store.SessionSummary{Kind: "behavioral", LastAction: store.ActionComplete, Questions: 5, ScoreTotal: 17, StartedAt: started},
			want: "5 answered, score 17",
		},
		{
			name: "long detail",
			sess: store.SessionSummary{Kind: "quiz", LastAction: store.ActionComplete, Detail: strings.Repeat("x", 40), StartedAt: started},
			want: strings.Repeat("x", 27) + "…",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummaryLine(tt.sess)
			if !strings.Contains(got, tt.want) {
				t.Errorf("SummaryLine() = %q, want it to contain %q", got, tt.want)
			}
			if !strings.HasPrefix(got, "Mar 02, 2026 10:00") {
				t.Errorf("SummaryLine() = %q, want date prefix", got)
			}
		})
	}
}
