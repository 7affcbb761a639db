// Package history lists past assessment sessions from the local event log.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/store"
	"github.com/abhisek/cogniq/internal/ui/layout"
	"github.com/abhisek/cogniq/internal/ui/theme"
)

const pageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

type submissionsLoadedMsg struct {
	SessionID   string
	Submissions []store.SubmissionEvent
}

// HistoryScreen displays past sessions and, on demand, their submissions.
type HistoryScreen struct {
	eventRepo   store.EventRepo
	sessions    []store.SessionSummary
	submissions map[string][]store.SubmissionEvent
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo:   eventRepo,
		submissions: make(map[string][]store.SubmissionEvent),
		expanded:    make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.QuerySessionSummaries(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case submissionsLoadedMsg:
		s.submissions[msg.SessionID] = msg.Submissions
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.submissions[id]; s.expanded[s.selected] && !ok {
				return s, s.loadSubmissions(id)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadSubmissions(sessionID string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		subs, _ := repo.Submissions(context.Background(), sessionID)
		return submissionsLoadedMsg{SessionID: sessionID, Submissions: subs}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Take an assessment to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := prefix + SummaryLine(sess)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, detail := range s.detailLines(sess) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, detail))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// SummaryLine is the one-line description of a session.
func SummaryLine(sess store.SessionSummary) string {
	date := sess.StartedAt.Local().Format("Jan 02, 2006 15:04")
	var result string
	switch {
	case sess.LastAction != store.ActionComplete:
		result = sess.LastAction
	case sess.Kind == "behavioral":
		result = fmt.Sprintf("%d answered, score %.0f", sess.Questions, sess.ScoreTotal)
	default:
		result = fmt.Sprintf("%d/%d correct, %d attempts", sess.Correct, sess.Questions, sess.Attempts)
	}
	return fmt.Sprintf("%s  %-10s  %-28s  %s", date, sess.Kind, truncate(sess.Detail, 28), result)
}

func (s *HistoryScreen) detailLines(sess store.SessionSummary) []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	lines := []string{dim.Render("    Session " + sess.SessionID)}
	switch {
	case sess.Kind == "quiz":
		lines = append(lines, dim.Render("    Quiz results stay on this device"))
		return lines
	case sess.Submitted == 0 && sess.Failed == 0:
		lines = append(lines, dim.Render("    Nothing submitted"))
		return lines
	}

	lines = append(lines, dim.Render(fmt.Sprintf("    %d saved, %d failed", sess.Submitted, sess.Failed)))
	for _, sub := range s.submissions[sess.SessionID] {
		status := theme.Correct.Render("✓")
		note := sub.Reference
		if !sub.Success {
			status = theme.Incorrect.Render("✗")
			note = sub.ErrorMessage
		}
		lines = append(lines, fmt.Sprintf("    %s Q%s attempt %d  %s", status, sub.QuestionID, sub.AttemptNumber, dim.Render(truncate(note, 40))))
	}
	if sess.Failed > 0 {
		lines = append(lines, theme.Hint.Render("    Run: cogniq resubmit "+sess.SessionID))
	}
	return lines
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
