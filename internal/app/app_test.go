package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cogniq/internal/router"
	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/screen/screentest"
)

type backScreen struct {
	handles bool
	gotEsc  bool
}

func (s *backScreen) Init() tea.Cmd { return nil }
func (s *backScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		s.gotEsc = true
	}
	return s, nil
}
func (s *backScreen) View(int, int) string { return "back" }
func (s *backScreen) Title() string        { return "Back" }
func (s *backScreen) HandlesBack() bool    { return s.handles }

func newModel(t *testing.T) AppModel {
	t.Helper()
	env := screentest.New(t)
	return newAppModel(Options{Deps: env.Deps, SkipSplash: true})
}

func TestEscPopsPlainScreens(t *testing.T) {
	m := newModel(t)
	top := &backScreen{}
	m.router.Push(top)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if top.gotEsc {
		t.Error("esc should not reach a screen that does not handle back")
	}
}

func TestEscForwardedToBackHandler(t *testing.T) {
	m := newModel(t)
	top := &backScreen{handles: true}
	m.router.Push(top)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !top.gotEsc {
		t.Error("expected the screen to receive esc")
	}
	if m.router.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", m.router.Depth())
	}
}

func TestEscAtRootIsNoop(t *testing.T) {
	m := newModel(t)
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc on the home screen should do nothing")
	}
}

func TestHeaderUser(t *testing.T) {
	env := screentest.New(t)
	m := newAppModel(Options{Deps: env.Deps, SkipSplash: true})
	if m.user() != "" {
		t.Errorf("expected no user before login, got %q", m.user())
	}

	env.Login(t, "ada@example.com")
	if m.user() != "ada@example.com" {
		t.Errorf("expected the signed-in email, got %q", m.user())
	}
}

func TestSplashFirst(t *testing.T) {
	env := screentest.New(t)
	m := newAppModel(Options{Deps: env.Deps})
	if m.router.Active().Title() != "" {
		t.Errorf("expected the splash screen first, got %q", m.router.Active().Title())
	}
	if newModel(t).router.Active().Title() != "Home" {
		t.Error("SkipSplash should start on the home screen")
	}
}
