// Package home is the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cogniq/internal/auth"
	"github.com/abhisek/cogniq/internal/catalog"
	"github.com/abhisek/cogniq/internal/router"
	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/screens/assessment"
	"github.com/abhisek/cogniq/internal/screens/courses"
	"github.com/abhisek/cogniq/internal/screens/dashboard"
	"github.com/abhisek/cogniq/internal/screens/history"
	"github.com/abhisek/cogniq/internal/screens/login"
	"github.com/abhisek/cogniq/internal/store"
	"github.com/abhisek/cogniq/internal/ui/components"
)

// Stats are local counts shown in the status bar.
type Stats struct {
	Completed       int
	PendingSessions int // sessions with submissions still to resubmit
}

type statsLoadedMsg struct {
	Stats Stats
	User  string
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps   screen.Deps
	menu   components.Menu
	user   string
	stats  Stats
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.buildMenu()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume rebuilds the menu for the current login state and reloads stats.
func (h *HomeScreen) Resume() tea.Cmd {
	h.buildMenu()
	return h.loadStats()
}

func (h *HomeScreen) buildMenu() {
	push := func(build func() (screen.Screen, error)) func() tea.Cmd {
		return func() tea.Cmd {
			s, err := build()
			if err != nil {
				h.notice = err.Error()
				return nil
			}
			h.notice = ""
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}
	assess := func(load func() (*catalog.Catalog, error)) func() (screen.Screen, error) {
		return func() (screen.Screen, error) {
			cat, err := load()
			if err != nil {
				return nil, err
			}
			return assessment.New(h.deps, cat, ""), nil
		}
	}
	static := func(s func() screen.Screen) func() (screen.Screen, error) {
		return func() (screen.Screen, error) { return s(), nil }
	}

	items := []components.MenuItem{
		{Label: "TECHNICAL ASSESSMENT", Key: "t", Hint: "Timed reasoning questions, retry until correct",
			Action: push(assess(catalog.Technical))},
		{Label: "BEHAVIORAL ASSESSMENT", Key: "b", Hint: "How you study: one answer per question",
			Action: push(assess(catalog.Behavioral))},
		{Label: "COURSES", Key: "c", Hint: "Browse modules and take course quizzes",
			Action: push(static(func() screen.Screen { return courses.NewList(h.deps) }))},
		{Label: "DASHBOARD", Key: "d", Hint: "Your cognitive profile and recommendations",
			Action: push(static(func() screen.Screen { return dashboard.New(h.deps) }))},
		{Label: "HISTORY", Key: "h", Hint: "Past sessions and unsent results",
			Action: push(static(func() screen.Screen { return history.New(h.deps.EventRepo) }))},
	}
	if h.deps.LoggedIn() {
		items = append(items, components.MenuItem{Label: "LOG OUT", Key: "o", Action: h.logout})
	} else {
		items = append(items,
			components.MenuItem{Label: "LOG IN", Key: "l", Hint: "Results are saved to your account",
				Action: push(static(func() screen.Screen { return login.New(h.deps, login.ModeLogin) }))},
			components.MenuItem{Label: "REGISTER", Key: "r",
				Action: push(static(func() screen.Screen { return login.New(h.deps, login.ModeRegister) }))},
		)
	}
	items = append(items, components.MenuItem{Label: "QUIT", Key: "q", Action: func() tea.Cmd { return tea.Quit }})

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected < len(items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) logout() tea.Cmd {
	if h.deps.Credentials != nil {
		if err := h.deps.Credentials.Clear(context.Background()); err != nil {
			h.notice = "Could not sign out: " + err.Error()
			return nil
		}
	}
	h.deps.Client.SetToken("")
	h.user = ""
	h.notice = "Signed out."
	h.buildMenu()
	return nil
}

func (h *HomeScreen) loadStats() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		var msg statsLoadedMsg
		if deps.LoggedIn() {
			msg.User = auth.Subject(deps.Client.Token())
			if deps.Credentials != nil {
				if creds, err := deps.Credentials.Load(ctx); err == nil && creds.Email != "" {
					msg.User = creds.Email
				}
			}
		}
		if deps.EventRepo == nil {
			return msg
		}
		sessions, err := deps.EventRepo.QuerySessionSummaries(ctx, store.QueryOpts{})
		if err != nil {
			return msg
		}
		for _, s := range sessions {
			if s.LastAction == store.ActionComplete {
				msg.Stats.Completed++
			}
			if s.Failed > 0 {
				msg.Stats.PendingSessions++
			}
		}
		return msg
	}
}

// User is the signed-in email, or empty.
func (h *HomeScreen) User() string {
	return h.user
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = msg.Stats
		h.user = msg.User
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header and footer bars and
	// the blank lines around the content.
	termHeight := height + 4
	compact := termHeight < 34 || width < 90

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatusBar(h.user, h.stats, cw, compact))
	if compact {
		sections = append(sections, renderCompactMenu(h.menu, cw))
	} else {
		sections = append(sections, renderButtonMenu(h.menu, cw))
	}
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
