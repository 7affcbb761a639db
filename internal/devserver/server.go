// Package devserver emulates the learning platform API in memory for
// offline practice and as the client's test double. It stores what it is
// given and computes no profile scores.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/auth"
	"github.com/abhisek/cogniq/internal/config"
)

// bcryptCost is the password hashing cost.
const bcryptCost = 12

type user struct {
	api.User
	passwordHash []byte
}

// Server is the in-memory platform.
type Server struct {
	cfg    config.ServerConfig
	issuer *auth.Issuer
	cost   int
	logReq bool

	mu         sync.RWMutex
	users      map[string]*user // by email
	nextUserID int
	nextRecID  int
	courses    []api.Course
	technical  map[int][]api.TechnicalAttempt
	behavioral map[int][]api.BehavioralResponse
}

// Option configures a Server.
type Option func(*Server)

// WithBcryptCost overrides the password hashing cost. Tests use
// bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.cost = cost }
}

// WithRequestLog enables chi's request logger.
func WithRequestLog() Option {
	return func(s *Server) { s.logReq = true }
}

// WithCourses replaces the seeded course catalog.
func WithCourses(courses []api.Course) Option {
	return func(s *Server) { s.courses = courses }
}

// New returns a Server seeded with the embedded course catalog.
func New(cfg config.ServerConfig, opts ...Option) (*Server, error) {
	courses, err := loadCourses(coursesYAML)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:        cfg,
		issuer:     auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		cost:       bcryptCost,
		users:      make(map[string]*user),
		courses:    courses,
		technical:  make(map[int][]api.TechnicalAttempt),
		behavioral: make(map[int][]api.BehavioralResponse),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if s.logReq {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.With(s.requireUser).Get("/me", s.handleMe)
	})

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", s.handleCourses)
		r.Get("/{courseID}", s.handleCourse)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(s.requireUser)
		pr.Post("/tests/technical", s.handleTechnical)
		pr.Post("/tests/behavioral", s.handleBehavioral)
		pr.Get("/recommendations/profile", s.handleProfile)
		pr.Get("/recommendations/courses", s.handleRecommendedCourses)
		pr.Get("/analytics/performance", s.handlePerformance)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// addUser registers a user. It returns false when the email is taken.
func (s *Server) addUser(name, email, password string) (api.User, bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return api.User{}, false, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return api.User{}, false, nil
	}
	s.nextUserID++
	u := &user{
		User: api.User{
			ID:        s.nextUserID,
			Name:      name,
			Email:     email,
			CreatedAt: time.Now().UTC().Format("2006-01-02T15:04:05.000000"),
		},
		passwordHash: hash,
	}
	s.users[email] = u
	return u.User, true, nil
}

// authenticate checks credentials and returns a signed token.
func (s *Server) authenticate(email, password string) (string, bool) {
	s.mu.RLock()
	u, ok := s.users[email]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
		return "", false
	}
	token, err := s.issuer.Issue(email)
	if err != nil {
		return "", false
	}
	return token, true
}

func (s *Server) lookup(email string) (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return api.User{}, false
	}
	return u.User, true
}
