package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/assessment"
	"github.com/abhisek/cogniq/internal/auth"
	"github.com/abhisek/cogniq/internal/config"
	"github.com/abhisek/cogniq/internal/devserver"
	"github.com/abhisek/cogniq/internal/store"
)

type env struct {
	cfg    config.Config
	client *api.Client
	repo   store.EventRepo
}

func newEnv(t *testing.T, mutate ...func(*config.ServerConfig)) env {
	t.Helper()
	cfg := config.DefaultConfig()
	for _, m := range mutate {
		m(&cfg.Server)
	}
	srv, err := devserver.New(cfg.Server, devserver.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	s, err := store.Open(filepath.Join(t.TempDir(), "cogniq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cfg.APIURL = ts.URL
	cfg.Retry.InitialWait = time.Millisecond
	cfg.Retry.MaxWait = 5 * time.Millisecond
	return env{cfg: cfg, client: api.NewClientFromConfig(cfg, s.EventRepo()), repo: s.EventRepo()}
}

func (e env) login(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := e.client.Register(ctx, api.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	tok, err := e.client.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, tok.AccessToken, e.client.Token())
}

func TestClient_LoginAndMe(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	me, err := e.client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)
	assert.Equal(t, "ada@example.com", auth.Subject(e.client.Token()))
}

func TestClient_LoginInvalidCredentials(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	e.client.SetToken("")

	_, err := e.client.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, api.StatusCode(err))
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.Empty(t, e.client.Token())
}

func TestClient_RegisterDuplicate(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	_, err := e.client.Register(context.Background(), api.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "x"})
	var se *api.ErrHTTPStatus
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Email already registered", se.Detail)
}

func TestClient_NotLoggedInMakesNoRequest(t *testing.T) {
	mock := api.NewMockTransport()
	c := api.NewClient(mock)

	_, err := c.Profile(context.Background())
	assert.True(t, api.IsUnauthorized(err))
	assert.ErrorIs(t, err, api.ErrNotLoggedIn)
	assert.Zero(t, mock.CallCount())
}

func TestClient_ExpiredTokenIsUnauthorized(t *testing.T) {
	e := newEnv(t, func(s *config.ServerConfig) { s.TokenTTL = -time.Minute })
	e.login(t)

	_, err := e.client.Me(context.Background())
	assert.True(t, api.IsUnauthorized(err))
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestClient_ForeignTokenRejectedByServer(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	forged, err := auth.NewIssuer("some-other-secret", time.Hour).Issue("ada@example.com")
	require.NoError(t, err)
	e.client.SetToken(forged)

	_, err = e.client.Me(context.Background())
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
}

func TestClient_CoursesAndQuiz(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	courses, err := e.client.Courses(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, courses)

	course, err := e.client.Course(ctx, courses[0].ID)
	require.NoError(t, err)
	require.NotNil(t, course.Quiz)

	_, err = e.client.Course(ctx, 999)
	assert.Equal(t, http.StatusNotFound, api.StatusCode(err))
}

func TestClient_DashboardCalls(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	ctx := context.Background()

	p, err := e.client.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Basic Learner", p.CognitiveLevel)

	recs, err := e.client.RecommendedCourses(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, recs)

	perf, err := e.client.Performance(ctx)
	require.NoError(t, err)
	assert.Zero(t, perf.TotalAttempts)
	assert.Empty(t, perf.AccuracyTrend)
}

func TestClient_RequestsAreLogged(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	events, err := e.repo.QueryAPIRequests(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "login", events[0].Purpose)
	assert.Equal(t, "register", events[1].Purpose)
}

func TestClient_UnreachableServerRetriedThenUnavailable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIURL = "http://127.0.0.1:1"
	cfg.Retry.InitialWait = time.Millisecond
	cfg.Retry.MaxWait = time.Millisecond
	c := api.NewClientFromConfig(cfg, nil)

	_, err := c.Courses(context.Background())
	var ue *api.ErrUnavailable
	assert.True(t, errors.As(err, &ue))
}

func TestSubmitters_PartialFailureLogged(t *testing.T) {
	e := newEnv(t)
	e.login(t)
	ctx := context.Background()

	recs := []assessment.AttemptRecord{
		{QuestionID: "1", SelectedAnswer: "3", CorrectAnswer: "4", AttemptNumber: 1, ResponseTime: 1200 * time.Millisecond},
		{QuestionID: "1", SelectedAnswer: "4", CorrectAnswer: "4", AttemptNumber: 2, ResponseTime: 800 * time.Millisecond, IsCorrect: true},
		{QuestionID: "q-x", SelectedAnswer: "4", CorrectAnswer: "4", AttemptNumber: 1, IsCorrect: true},
	}
	submit, err := e.client.SubmitterFor("technical")
	require.NoError(t, err)
	submit = api.WithSubmissionLog(submit, e.repo, "sess-1", "technical")

	report := assessment.NewCoordinator(2).Submit(ctx, recs, submit)
	assert.Equal(t, 3, report.Total())
	require.Len(t, report.Succeeded, 2)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "q-x", report.Failed[0].Record.QuestionID)

	failed, err := e.repo.FailedSubmissions(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, recs[2], api.RecordFromEvent(failed[0]))

	perf, err := e.client.Performance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, perf.TotalAttempts)
	// Records are dispatched concurrently, so the server may see them in
	// either order. The running accuracy after both is the same.
	require.Len(t, perf.AccuracyTrend, 2)
	assert.Equal(t, 50.0, perf.AccuracyTrend[1].Accuracy)
	require.Len(t, perf.ResponseTimeTrend, 2)
	assert.ElementsMatch(t, []float64{1.2, 0.8},
		[]float64{perf.ResponseTimeTrend[0].Time, perf.ResponseTimeTrend[1].Time})
}

func TestSubmitters_Behavioral(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	submit, err := e.client.SubmitterFor("behavioral")
	require.NoError(t, err)

	ack, err := submit(context.Background(), assessment.AttemptRecord{
		QuestionID: "3", SelectedAnswer: "b", AttemptNumber: 1, IsCorrect: true, Weighted: true, ScoreWeight: 7.5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ack.Reference)

	perf, err := e.client.Performance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, perf.TotalBehavioralResponses)
}

func TestSubmitterFor_QuizNotSubmitted(t *testing.T) {
	c := api.NewClient(api.NewMockTransport())
	_, err := c.SubmitterFor("quiz")
	assert.Error(t, err)
}
