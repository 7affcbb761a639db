// Package login signs a learner in or registers a new account.
package login

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/router"
	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/store"
	"github.com/abhisek/cogniq/internal/ui/components"
	"github.com/abhisek/cogniq/internal/ui/layout"
	"github.com/abhisek/cogniq/internal/ui/theme"
)

// Mode selects between signing in and creating an account.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

const requestTimeout = 30 * time.Second

type authDoneMsg struct {
	Email string
	Err   error
}

// LoginScreen is a small form over the platform's auth endpoints.
type LoginScreen struct {
	deps   screen.Deps
	mode   Mode
	fields []components.TextInput
	focus  int

	loading components.Loading
	busy    bool
	errMsg  string
	done    bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen in the given mode.
func New(deps screen.Deps, mode Mode) *LoginScreen {
	s := &LoginScreen{deps: deps, mode: mode}
	if mode == ModeRegister {
		s.fields = append(s.fields, components.NewTextInput("Name", "Ada Lovelace", false))
		s.loading = components.NewLoading("Creating your account...")
	} else {
		s.loading = components.NewLoading("Signing in...")
	}
	s.fields = append(s.fields,
		components.NewTextInput("Email", "you@example.com", false),
		components.NewTextInput("Password", "", true),
	)
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.fields[s.focus].Focus()
}

func (s *LoginScreen) Title() string {
	if s.mode == ModeRegister {
		return "Register"
	}
	return "Log in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = screen.Describe(msg.Err)
			return s, s.fields[s.focus].Focus()
		}
		s.done = true
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if s.busy || s.done {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.moveFocus(1)
		case "shift+tab", "up":
			return s, s.moveFocus(-1)
		case "enter":
			if s.focus < len(s.fields)-1 {
				return s, s.moveFocus(1)
			}
			return s, s.submit()
		}
	}

	if s.busy {
		var cmd tea.Cmd
		s.loading, cmd = s.loading.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) moveFocus(delta int) tea.Cmd {
	s.fields[s.focus].Blur()
	s.focus = (s.focus + delta + len(s.fields)) % len(s.fields)
	return s.fields[s.focus].Focus()
}

func (s *LoginScreen) value(label string) string {
	for _, f := range s.fields {
		if f.Label == label {
			return strings.TrimSpace(f.Value())
		}
	}
	return ""
}

func (s *LoginScreen) submit() tea.Cmd {
	name, email, password := s.value("Name"), s.value("Email"), s.value("Password")
	switch {
	case email == "" || password == "":
		s.errMsg = "Email and password are required."
		return nil
	case s.mode == ModeRegister && name == "":
		s.errMsg = "Name is required."
		return nil
	}

	s.errMsg = ""
	s.busy = true
	s.fields[s.focus].Blur()

	deps, mode := s.deps, s.mode
	return tea.Batch(s.loading.Tick(), func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return authDoneMsg{Email: email, Err: authenticate(ctx, deps, mode, name, email, password)}
	})
}

// authenticate registers when asked, logs in and saves the credentials.
func authenticate(ctx context.Context, deps screen.Deps, mode Mode, name, email, password string) error {
	if mode == ModeRegister {
		if _, err := deps.Client.Register(ctx, api.RegisterRequest{Name: name, Email: email, Password: password}); err != nil {
			return err
		}
	}
	tok, err := deps.Client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if deps.Credentials == nil {
		return nil
	}
	return deps.Credentials.Save(ctx, store.Credentials{
		Email:   email,
		Token:   tok.AccessToken,
		SavedAt: time.Now(),
	})
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var rows []string
	for _, f := range s.fields {
		rows = append(rows, f.View())
	}
	form := strings.Join(rows, "\n\n")

	sections := []string{
		theme.Title.Width(cw).Render(s.Title()),
		components.Card(form, cw),
	}
	switch {
	case s.busy:
		sections = append(sections, s.loading.View(cw))
	case s.errMsg != "":
		sections = append(sections, theme.Centered(theme.ErrorText, cw, s.errMsg))
	case s.mode == ModeLogin:
		sections = append(sections, theme.Centered(theme.Hint, cw, "No account yet? Choose Register on the home screen."))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(sections, "\n\n"))
}
