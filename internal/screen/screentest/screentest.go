// Package screentest wires screen dependencies to an in-process platform
// server for screen tests.
package screentest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/config"
	"github.com/abhisek/cogniq/internal/devserver"
	"github.com/abhisek/cogniq/internal/screen"
	"github.com/abhisek/cogniq/internal/store"
)

// Password is the password of users created by Register.
const Password = "secret-pass"

// Env is a platform server plus a local store.
type Env struct {
	Deps   screen.Deps
	Store  *store.Store
	Server *httptest.Server
}

// Option customizes the Env built by New.
type Option func(*options)

type options struct {
	wrap func(http.Handler) http.Handler
}

// WithHandler wraps the platform server's handler, for tests that need an
// endpoint to misbehave.
func WithHandler(wrap func(http.Handler) http.Handler) Option {
	return func(o *options) { o.wrap = wrap }
}

// New starts a platform server and opens a temporary store. Both are
// closed when the test ends.
func New(t testing.TB, opts ...Option) *Env {
	t.Helper()
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cfg := config.DefaultConfig()

	srv, err := devserver.New(cfg.Server, devserver.WithBcryptCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("devserver: %v", err)
	}
	var h http.Handler = srv.Handler()
	if o.wrap != nil {
		h = o.wrap(h)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	st, err := store.Open(filepath.Join(t.TempDir(), "cogniq.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg.APIURL = ts.URL
	cfg.Retry.MaxAttempts = 1
	cfg.Retry.InitialWait = time.Millisecond
	cfg.Retry.MaxWait = time.Millisecond

	return &Env{
		Deps: screen.Deps{
			Client:      api.NewClientFromConfig(cfg, st.EventRepo()),
			EventRepo:   st.EventRepo(),
			Credentials: st.CredentialRepo(),
			Config:      cfg,
		},
		Store:  st,
		Server: ts,
	}
}

// Register creates a user on the server without logging in.
func (e *Env) Register(t testing.TB, name, email string) {
	t.Helper()
	_, err := e.Deps.Client.Register(context.Background(), api.RegisterRequest{
		Name: name, Email: email, Password: Password,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
}

// Login registers email and logs the client in.
func (e *Env) Login(t testing.TB, email string) {
	t.Helper()
	e.Register(t, "Ada", email)
	if _, err := e.Deps.Client.Login(context.Background(), email, Password); err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
}

// Exec runs cmd and returns the messages it produces, expanding batches.
// Nested commands are not run.
func Exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

// Feed runs cmd, sends every message it produces to s and returns the
// commands s answered with, unrun.
func Feed(s screen.Screen, cmd tea.Cmd) []tea.Cmd {
	var out []tea.Cmd
	for _, msg := range Exec(cmd) {
		var next tea.Cmd
		s, next = s.Update(msg)
		if next != nil {
			out = append(out, next)
		}
	}
	return out
}
