package courses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/catalog"
	"github.com/abhisek/cogniq/internal/router"
	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/screens/assessment"
	"github.com/abhisek/cogniq/internal/ui/components"
	"github.com/abhisek/cogniq/internal/ui/layout"
	"github.com/abhisek/cogniq/internal/ui/theme"
)

type courseLoadedMsg struct {
	Course api.Course
	Err    error
}

// DetailScreen shows one course with its modules and starts its quiz.
type DetailScreen struct {
	deps     screen.Deps
	id       int
	course   api.Course
	selected int
	expanded map[int]bool
	loading  components.Loading
	loaded   bool
	errMsg   string
	notice   string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail creates a DetailScreen for course id.
func NewDetail(deps screen.Deps, id int) *DetailScreen {
	return &DetailScreen{
		deps:     deps,
		id:       id,
		expanded: make(map[int]bool),
		loading:  components.NewLoading("Loading course..."),
	}
}

func (s *DetailScreen) Init() tea.Cmd {
	client, id := s.deps.Client, s.id
	return tea.Batch(s.loading.Tick(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		course, err := client.Course(ctx, id)
		return courseLoadedMsg{Course: course, Err: err}
	})
}

func (s *DetailScreen) Title() string {
	if s.course.Title != "" {
		return s.course.Title
	}
	return "Course"
}

func (s *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Expand module"},
		{Key: "Q", Description: "Take quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case courseLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = screen.Describe(msg.Err)
			return s, nil
		}
		s.course = msg.Course
		return s, nil

	case tea.KeyMsg:
		if !s.loaded || s.errMsg != "" {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.course.Modules)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.course.Modules) {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		case "q", "Q":
			return s, s.startQuiz()
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

func (s *DetailScreen) startQuiz() tea.Cmd {
	cat, err := catalog.FromQuiz(s.course.Quiz)
	if errors.Is(err, catalog.ErrNoQuiz) {
		s.notice = catalog.NoQuizMessage
		return nil
	}
	if err != nil {
		s.notice = "This quiz cannot be played: " + err.Error()
		return nil
	}
	s.notice = ""
	next := assessment.New(s.deps, cat, s.course.Title)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *DetailScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	switch {
	case !s.loaded:
		return s.loading.View(width)
	case s.errMsg != "":
		return theme.Centered(theme.ErrorText, width, "\n\n"+s.errMsg)
	}

	c := s.course
	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render(c.Title))
	sections = append(sections, theme.Subtitle.Width(cw).Render(fmt.Sprintf("%s · %s", c.Difficulty, c.Instructor)))
	if c.Description != "" {
		sections = append(sections, theme.Body.Width(cw).Render(c.Description))
	}
	sections = append(sections, components.TitledCard("Modules", s.renderModules(cw), cw))

	quiz := "No quiz"
	if c.Quiz != nil && len(c.Quiz.Questions) > 0 {
		quiz = fmt.Sprintf("%s · %d questions · press Q to start", c.Quiz.Title, len(c.Quiz.Questions))
	}
	sections = append(sections, theme.Centered(theme.Hint, cw, quiz))
	if s.notice != "" {
		sections = append(sections, theme.Centered(lipgloss.NewStyle().Foreground(theme.Accent), cw, s.notice))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (s *DetailScreen) renderModules(cw int) string {
	if len(s.course.Modules) == 0 {
		return theme.Muted.Render("This course has no modules yet.")
	}

	var b strings.Builder
	for i, m := range s.course.Modules {
		line := theme.Unselected.Render(fmt.Sprintf("  %d. %s", i+1, m.Title))
		if i == s.selected {
			line = theme.Selected.Render(fmt.Sprintf("▸ %d. %s", i+1, m.Title))
		}
		b.WriteString(line)
		b.WriteString("\n")
		if s.expanded[i] {
			b.WriteString(renderModuleContent(m, cw-8))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderModuleContent(m api.Module, width int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width).PaddingLeft(4)
	code := lipgloss.NewStyle().Foreground(theme.Secondary).PaddingLeft(4)

	var parts []string
	if m.ContentTheoretical != "" {
		parts = append(parts, body.Render(m.ContentTheoretical))
	}
	if m.ContentPractical != "" {
		parts = append(parts, code.Render(strings.TrimRight(m.ContentPractical, "\n")))
	}
	if m.ContentVisual != "" {
		parts = append(parts, body.Render(strings.TrimRight(m.ContentVisual, "\n")))
	}
	if m.VideoURL != "" {
		parts = append(parts, theme.Hint.PaddingLeft(4).Render("Video: "+m.VideoURL))
	}
	if len(parts) == 0 {
		return theme.Muted.PaddingLeft(4).Render("No content.") + "\n"
	}
	return strings.Join(parts, "\n\n") + "\n"
}
