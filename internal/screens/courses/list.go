// Package courses browses the course catalog and starts course quizzes.
package courses

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/router"
	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/ui/components"
	"github.com/abhisek/cogniq/internal/ui/layout"
	"github.com/abhisek/cogniq/internal/ui/theme"
)

const loadTimeout = 30 * time.Second

type coursesLoadedMsg struct {
	Courses []api.Course
	Err     error
}

// ListScreen shows every course.
type ListScreen struct {
	deps     screen.Deps
	courses  []api.Course
	selected int
	loading  components.Loading
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// NewList creates a ListScreen.
func NewList(deps screen.Deps) *ListScreen {
	return &ListScreen{deps: deps, loading: components.NewLoading("Loading courses...")}
}

func (s *ListScreen) Init() tea.Cmd {
	client := s.deps.Client
	return tea.Batch(s.loading.Tick(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		courses, err := client.Courses(ctx)
		return coursesLoadedMsg{Courses: courses, Err: err}
	})
}

func (s *ListScreen) Title() string {
	return "Courses"
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = screen.Describe(msg.Err)
			return s, nil
		}
		s.courses = msg.Courses
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.courses)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.courses) {
				detail := NewDetail(s.deps, s.courses[s.selected].ID)
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

func (s *ListScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch {
	case !s.loaded:
		return s.loading.View(width)
	case s.errMsg != "":
		return theme.Centered(theme.ErrorText, width, "\n\n"+s.errMsg)
	case len(s.courses) == 0:
		return theme.Centered(theme.Hint, width, "\n\nNo courses published yet.")
	}

	var b strings.Builder
	for i, c := range s.courses {
		title := theme.Unselected.Render("  " + c.Title)
		if i == s.selected {
			title = theme.Selected.Render("▸ " + c.Title)
		}
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(theme.Muted.Render(fmt.Sprintf("    %s · %s · %d modules", c.Difficulty, c.Instructor, len(c.Modules))))
		b.WriteString("\n\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.Card(strings.TrimRight(b.String(), "\n"), cw))
}
