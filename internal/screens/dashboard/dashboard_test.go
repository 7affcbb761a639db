package dashboard

import (
	"context"
	"net/http"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/router"
	"github.com/abhisek/cogniq/internal/screen/screentest"
	"github.com/abhisek/cogniq/internal/screens/courses"
)

func TestLoad_FetchesEverything(t *testing.T) {
	env := screentest.New(t)
	env.Login(t, "ada@example.com")
	ctx := context.Background()

	for i, correct := range []bool{false, true} {
		_, err := env.Deps.Client.PostTechnical(ctx, api.TechnicalAttempt{
			QuestionID: 1, SelectedAnswer: "B", CorrectAnswer: "A",
			ResponseTime: 1.5, IsCorrect: correct, AttemptNumber: i + 1,
		})
		if err != nil {
			t.Fatalf("post attempt: %v", err)
		}
	}

	d, err := Load(ctx, env.Deps.Client)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Profile.CognitiveLevel != "Basic Learner" {
		t.Errorf("unexpected profile %+v", d.Profile)
	}
	if len(d.Recommended) != 3 {
		t.Errorf("expected 3 recommendations, got %d", len(d.Recommended))
	}
	if d.Performance.TotalAttempts != 2 || len(d.Performance.AccuracyTrend) != 2 {
		t.Errorf("unexpected performance %+v", d.Performance)
	}
}

func TestDashboard_RendersAndOpensRecommendation(t *testing.T) {
	env := screentest.New(t)
	env.Login(t, "ada@example.com")

	s := New(env.Deps)
	screentest.Feed(s, s.Init())
	if s.err != nil {
		t.Fatalf("load error: %v", s.err)
	}

	view := s.View(100, 60)
	for _, want := range []string{"Basic Learner", "Visual", "No attempts yet", "Recommended for you"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*courses.DetailScreen); !ok {
		t.Errorf("expected a course detail, got %T", push.Screen)
	}
}

func TestDashboard_NotLoggedIn(t *testing.T) {
	env := screentest.New(t)

	s := New(env.Deps)
	screentest.Feed(s, s.Init())
	if !api.IsUnauthorized(s.err) {
		t.Fatalf("expected unauthorized, got %v", s.err)
	}
	if !strings.Contains(s.View(100, 40), "Log in to continue.") {
		t.Errorf("expected login prompt, got %q", s.View(100, 40))
	}
}

func TestDashboard_RefreshReloads(t *testing.T) {
	env := screentest.New(t)
	env.Login(t, "ada@example.com")

	s := New(env.Deps)
	screentest.Feed(s, s.Init())

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil || s.loaded {
		t.Fatal("expected a reload")
	}
	screentest.Feed(s, cmd)
	if !s.loaded || s.err != nil {
		t.Errorf("reload failed: %v", s.err)
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"flat", []float64{5, 5, 5}, "███"},
		{"rising", []float64{0, 50, 100}, "▁▄█"},
		{"falling", []float64{3, 1}, "█▁"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.values); got != tt.want {
				t.Errorf("Sparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

// failPerformance answers the analytics endpoint with a server error.
func failPerformance(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/analytics/performance" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"analytics offline"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func TestLoad_PartialFailureKeepsOtherSections(t *testing.T) {
	env := screentest.New(t, screentest.WithHandler(failPerformance))
	env.Login(t, "ada@example.com")

	d, err := Load(context.Background(), env.Deps.Client)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.PerformanceErr == nil {
		t.Fatal("expected a performance error")
	}
	if d.ProfileErr != nil || d.RecommendedErr != nil {
		t.Fatalf("unexpected errors: profile %v, recommended %v", d.ProfileErr, d.RecommendedErr)
	}
	if d.Profile.CognitiveLevel != "Basic Learner" || len(d.Recommended) != 3 {
		t.Errorf("unexpected data %+v", d)
	}

	s := New(env.Deps)
	screentest.Feed(s, s.Init())
	if s.err != nil {
		t.Fatalf("screen error: %v", s.err)
	}
	view := s.View(100, 60)
	for _, want := range []string{"Basic Learner", "Recommended for you", "Press R to retry"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "No attempts yet") {
		t.Error("failed performance section rendered as empty")
	}
}

func TestLoad_AllFailing(t *testing.T) {
	env := screentest.New(t)

	d, err := Load(context.Background(), env.Deps.Client)
	if !api.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if d.Profile.CognitiveLevel != "" || d.Recommended != nil {
		t.Errorf("expected empty data, got %+v", d)
	}
}
