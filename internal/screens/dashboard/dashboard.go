// Package dashboard shows the learner's cognitive profile, recommended
// courses and performance trends.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/router"
	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/screens/courses"
	"github.com/abhisek/cogniq/internal/ui/components"
	"github.com/abhisek/cogniq/internal/ui/layout"
	"github.com/abhisek/cogniq/internal/ui/theme"
)

const loadTimeout = 30 * time.Second

// sparkBlocks render trend values from low to high.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Data is everything the dashboard shows. Each resource carries its own
// error so one failed request leaves the other sections intact.
type Data struct {
	Profile     api.Profile
	Recommended []api.Course
	Performance api.Performance

	ProfileErr     error
	RecommendedErr error
	PerformanceErr error
}

type dashboardLoadedMsg struct {
	Data Data
	Err  error
}

// Load fetches the three dashboard resources concurrently. A failed
// resource is recorded in Data; Load returns an error only when all three
// fail.
func Load(ctx context.Context, client *api.Client) (Data, error) {
	var d Data
	var g errgroup.Group
	g.Go(func() error {
		d.Profile, d.ProfileErr = client.Profile(ctx)
		return nil
	})
	g.Go(func() error {
		d.Recommended, d.RecommendedErr = client.RecommendedCourses(ctx)
		return nil
	})
	g.Go(func() error {
		d.Performance, d.PerformanceErr = client.Performance(ctx)
		return nil
	})
	_ = g.Wait()

	if d.ProfileErr != nil && d.RecommendedErr != nil && d.PerformanceErr != nil {
		return Data{}, d.ProfileErr
	}
	return d, nil
}

// DashboardScreen renders Data.
type DashboardScreen struct {
	deps     screen.Deps
	data     Data
	selected int
	loading  components.Loading
	loaded   bool
	err      error
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen.
func New(deps screen.Deps) *DashboardScreen {
	return &DashboardScreen{deps: deps, loading: components.NewLoading("Loading your dashboard...")}
}

func (s *DashboardScreen) Init() tea.Cmd {
	s.loaded = false
	client := s.deps.Client
	return tea.Batch(s.loading.Tick(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		d, err := Load(ctx, client)
		return dashboardLoadedMsg{Data: d, Err: err}
	})
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Courses"},
		{Key: "Enter", Description: "Open"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		s.loaded = true
		s.err = msg.Err
		s.data = msg.Data
		s.selected = 0
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r", "R":
			if s.loaded {
				return s, s.Init()
			}
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.data.Recommended)-1 {
				s.selected++
			}
		case "enter":
			if s.loaded && s.selected < len(s.data.Recommended) {
				detail := courses.NewDetail(s.deps, s.data.Recommended[s.selected].ID)
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
			}
		}
		return s, nil
	}

	if !s.loaded {
		var cmd tea.Cmd
		s.loading, cmd = s.loading.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch {
	case !s.loaded:
		return s.loading.View(width)
	case api.IsUnauthorized(s.err):
		return theme.Centered(theme.Hint, width,
			"\n\n"+screen.Describe(s.err)+"\nYour dashboard is built from your assessments once you log in.")
	case s.err != nil:
		return theme.Centered(theme.ErrorText, width, "\n\n"+screen.Describe(s.err))
	}

	sections := []string{
		components.TitledCard("Cognitive profile", orError(s.data.ProfileErr, func() string { return renderProfile(s.data.Profile) }), cw),
		components.TitledCard("Performance", orError(s.data.PerformanceErr, func() string { return renderPerformance(s.data.Performance) }), cw),
		components.TitledCard("Recommended for you", orError(s.data.RecommendedErr, s.renderRecommended), cw),
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n"))
}

// orError renders err in place of a section that failed to load.
func orError(err error, render func() string) string {
	if err != nil {
		return theme.ErrorText.Render(screen.Describe(err)) + "\n" + theme.Hint.Render("Press R to retry.")
	}
	return render()
}

func row(label, value string) string {
	return theme.Muted.Width(22).Render(label) + theme.Body.Bold(true).Render(value)
}

func renderProfile(p api.Profile) string {
	rows := []string{
		row("Cognitive level", p.CognitiveLevel),
		row("Learning style", p.LearningStyle),
		row("Technical score", fmt.Sprintf("%.1f", p.TechnicalScore)),
		row("Behavioral score", fmt.Sprintf("%.1f", p.BehavioralScore)),
	}
	if p.RecommendedStrategy != "" {
		rows = append(rows, "", theme.Hint.Render(p.RecommendedStrategy))
	}
	return strings.Join(rows, "\n")
}

func renderPerformance(p api.Performance) string {
	if p.TotalAttempts == 0 && p.TotalBehavioralResponses == 0 {
		return theme.Muted.Render("No attempts yet. Take an assessment to see your trends.")
	}

	acc := make([]float64, len(p.AccuracyTrend))
	for i, pt := range p.AccuracyTrend {
		acc[i] = pt.Accuracy
	}
	rt := make([]float64, len(p.ResponseTimeTrend))
	for i, pt := range p.ResponseTimeTrend {
		rt[i] = pt.Time
	}

	spark := lipgloss.NewStyle().Foreground(theme.Secondary)
	rows := []string{
		row("Technical attempts", fmt.Sprintf("%d", p.TotalAttempts)),
		row("Behavioral responses", fmt.Sprintf("%d", p.TotalBehavioralResponses)),
	}
	if len(acc) > 0 {
		rows = append(rows,
			row("Accuracy trend", spark.Render(Sparkline(acc))+fmt.Sprintf("  %.0f%%", acc[len(acc)-1])),
			row("Response time trend", spark.Render(Sparkline(rt))+fmt.Sprintf("  %.1fs", rt[len(rt)-1])),
		)
	}
	return strings.Join(rows, "\n")
}

func (s *DashboardScreen) renderRecommended() string {
	if len(s.data.Recommended) == 0 {
		return theme.Muted.Render("No recommendations yet.")
	}
	var b strings.Builder
	for i, c := range s.data.Recommended {
		label := fmt.Sprintf("%s (%s)", c.Title, c.Difficulty)
		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ " + label))
		} else {
			b.WriteString(theme.Unselected.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Sparkline renders values as block characters scaled between their
// minimum and maximum.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		idx := len(sparkBlocks) - 1
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkBlocks)-1))
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}
