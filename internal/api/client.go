package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/abhisek/cogniq/internal/auth"
)

// Client is a typed client for the learning platform API. It holds the
// bearer token; callers never pass it per request.
type Client struct {
	transport Transport

	mu    sync.RWMutex
	token string

	// now is the clock for local token-expiry checks.
	now func() time.Time
}

// NewClient returns a Client over t.
func NewClient(t Transport) *Client {
	return &Client{transport: t, now: time.Now}
}

// SetToken sets the bearer token used for authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// authToken returns a usable token or an *ErrUnauthorized without touching
// the network.
func (c *Client) authToken() (string, error) {
	token := c.Token()
	if token == "" {
		return "", &ErrUnauthorized{Err: ErrNotLoggedIn}
	}
	if err := auth.Check(token, c.now()); err != nil {
		return "", &ErrUnauthorized{Err: err}
	}
	return token, nil
}

func (c *Client) call(ctx context.Context, req Request, out any) error {
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

func (c *Client) authed(ctx context.Context, method, path string, body, out any) error {
	token, err := c.authToken()
	if err != nil {
		return err
	}
	return c.call(ctx, Request{Method: method, Path: path, Body: body, Token: token}, out)
}

// Login exchanges credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	var tok Token
	err := c.call(WithPurpose(ctx, "login"), Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   LoginRequest{Email: email, Password: password},
	}, &tok)
	if err != nil {
		return Token{}, fmt.Errorf("login: %w", err)
	}
	if tok.AccessToken == "" {
		return Token{}, fmt.Errorf("login: empty access token")
	}
	c.SetToken(tok.AccessToken)
	return tok, nil
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var u User
	err := c.call(WithPurpose(ctx, "register"), Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   req,
	}, &u)
	if err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}
	return u, nil
}

// Me returns the logged-in user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.authed(WithPurpose(ctx, "me"), http.MethodGet, "/auth/me", nil, &u); err != nil {
		return User{}, fmt.Errorf("current user: %w", err)
	}
	return u, nil
}

// Courses lists the course catalog.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := c.call(WithPurpose(ctx, "courses"), Request{
		Method: http.MethodGet,
		Path:   "/courses/",
		Token:  c.Token(),
	}, &courses)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Course returns one course with its modules and quiz.
func (c *Client) Course(ctx context.Context, id int) (Course, error) {
	var course Course
	err := c.call(WithPurpose(ctx, "course"), Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/courses/%d", id),
		Token:  c.Token(),
	}, &course)
	if err != nil {
		return Course{}, fmt.Errorf("get course %d: %w", id, err)
	}
	return course, nil
}

// Profile returns the learner's cognitive profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var p Profile
	if err := c.authed(WithPurpose(ctx, "profile"), http.MethodGet, "/recommendations/profile", nil, &p); err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// RecommendedCourses returns the courses recommended for the learner.
func (c *Client) RecommendedCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.authed(WithPurpose(ctx, "recommendations"), http.MethodGet, "/recommendations/courses", nil, &courses); err != nil {
		return nil, fmt.Errorf("get recommendations: %w", err)
	}
	return courses, nil
}

// Performance returns the learner's analytics.
func (c *Client) Performance(ctx context.Context) (Performance, error) {
	var p Performance
	if err := c.authed(WithPurpose(ctx, "analytics"), http.MethodGet, "/analytics/performance", nil, &p); err != nil {
		return Performance{}, fmt.Errorf("get performance: %w", err)
	}
	return p, nil
}

// PostTechnical stores one technical attempt.
func (c *Client) PostTechnical(ctx context.Context, a TechnicalAttempt) (TechnicalAttempt, error) {
	var out TechnicalAttempt
	if err := c.authed(WithPurpose(ctx, "submit-technical"), http.MethodPost, "/tests/technical", a, &out); err != nil {
		return TechnicalAttempt{}, err
	}
	return out, nil
}

// PostBehavioral stores one behavioral response.
func (c *Client) PostBehavioral(ctx context.Context, r BehavioralResponse) (BehavioralResponse, error) {
	var out BehavioralResponse
	if err := c.authed(WithPurpose(ctx, "submit-behavioral"), http.MethodPost, "/tests/behavioral", r, &out); err != nil {
		return BehavioralResponse{}, err
	}
	return out, nil
}
