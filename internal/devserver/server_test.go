package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.DefaultConfig().Server
	cfg.TokenTTL = time.Hour
	s, err := New(cfg, WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, token string, body, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	status := do(t, ts, "POST", "/auth/register", "",
		api.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "pw"}, nil)
	require.Equal(t, http.StatusOK, status)

	var tok api.Token
	status = do(t, ts, "POST", "/auth/login", "",
		api.LoginRequest{Email: "ada@example.com", Password: "pw"}, &tok)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)
	token := login(t, ts)

	var me api.User
	assert.Equal(t, http.StatusOK, do(t, ts, "GET", "/auth/me", token, nil, &me))
	assert.Equal(t, "ada@example.com", me.Email)
	assert.Equal(t, 1, me.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	login(t, ts)

	var body api.ErrorBody
	status := do(t, ts, "POST", "/auth/register", "",
		api.RegisterRequest{Name: "Other", Email: "ada@example.com", Password: "x"}, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", body.Detail)
}

func TestRegisterInvalidEmail(t *testing.T) {
	ts := newTestServer(t)
	status := do(t, ts, "POST", "/auth/register", "",
		api.RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "x"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	login(t, ts)

	var body api.ErrorBody
	status := do(t, ts, "POST", "/auth/login", "",
		api.LoginRequest{Email: "ada@example.com", Password: "nope"}, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid credentials", body.Detail)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/auth/me", "/recommendations/profile", "/analytics/performance"} {
		assert.Equal(t, http.StatusUnauthorized, do(t, ts, "GET", path, "", nil, nil), path)
	}

	var body api.ErrorBody
	assert.Equal(t, http.StatusUnauthorized, do(t, ts, "GET", "/auth/me", "garbage", nil, &body))
	assert.Equal(t, "Could not validate credentials", body.Detail)
}

func TestCourses(t *testing.T) {
	ts := newTestServer(t)

	var list []api.Course
	require.Equal(t, http.StatusOK, do(t, ts, "GET", "/courses/", "", nil, &list))
	require.Len(t, list, 4)
	for _, c := range list {
		assert.Nil(t, c.Quiz, "list omits quizzes")
	}

	var c api.Course
	require.Equal(t, http.StatusOK, do(t, ts, "GET", "/courses/1", "", nil, &c))
	require.NotNil(t, c.Quiz)
	assert.NotEmpty(t, c.Quiz.Questions)
	assert.NotEmpty(t, c.Modules)

	var body api.ErrorBody
	assert.Equal(t, http.StatusNotFound, do(t, ts, "GET", "/courses/99", "", nil, &body))
	assert.Equal(t, "Course not found", body.Detail)
}

func TestDefaultProfile(t *testing.T) {
	ts := newTestServer(t)
	token := login(t, ts)

	var p api.Profile
	require.Equal(t, http.StatusOK, do(t, ts, "GET", "/recommendations/profile", token, nil, &p))
	assert.Equal(t, "Basic Learner", p.CognitiveLevel)
	assert.Equal(t, "Visual", p.LearningStyle)
	assert.Zero(t, p.TechnicalScore)
}

func TestRecommendedCoursesTopsUp(t *testing.T) {
	ts := newTestServer(t)
	token := login(t, ts)

	var list []api.Course
	require.Equal(t, http.StatusOK, do(t, ts, "GET", "/recommendations/courses", token, nil, &list))
	assert.Len(t, list, 3)
	assert.Equal(t, "Beginner", list[0].Difficulty)
}

func TestPerformanceTrends(t *testing.T) {
	ts := newTestServer(t)
	token := login(t, ts)

	attempts := []api.TechnicalAttempt{
		{QuestionID: 1, SelectedAnswer: "3", CorrectAnswer: "4", ResponseTime: 1.2, AttemptNumber: 1},
		{QuestionID: 1, SelectedAnswer: "4", CorrectAnswer: "4", ResponseTime: 0.8, IsCorrect: true, AttemptNumber: 2},
		{QuestionID: 2, SelectedAnswer: "B", CorrectAnswer: "B", ResponseTime: 2.5, IsCorrect: true, AttemptNumber: 1},
	}
	for _, a := range attempts {
		var stored api.TechnicalAttempt
		require.Equal(t, http.StatusOK, do(t, ts, "POST", "/tests/technical", token, a, &stored))
		assert.NotZero(t, stored.ID)
		assert.Equal(t, 1, stored.UserID)
	}
	var br api.BehavioralResponse
	require.Equal(t, http.StatusOK, do(t, ts, "POST", "/tests/behavioral", token,
		api.BehavioralResponse{QuestionID: 1, SelectedOption: "a", ScoreWeight: 10}, &br))

	var perf api.Performance
	require.Equal(t, http.StatusOK, do(t, ts, "GET", "/analytics/performance", token, nil, &perf))
	assert.Equal(t, 3, perf.TotalAttempts)
	assert.Equal(t, 1, perf.TotalBehavioralResponses)
	require.Len(t, perf.AccuracyTrend, 3)
	assert.Equal(t, 0.0, perf.AccuracyTrend[0].Accuracy)
	assert.Equal(t, 50.0, perf.AccuracyTrend[1].Accuracy)
	assert.Equal(t, 66.67, perf.AccuracyTrend[2].Accuracy)
	assert.Equal(t, 2.5, perf.ResponseTimeTrend[2].Time)
}

func TestTechnicalRejectsMissingAttemptNumber(t *testing.T) {
	ts := newTestServer(t)
	token := login(t, ts)

	status := do(t, ts, "POST", "/tests/technical", token,
		api.TechnicalAttempt{QuestionID: 1, SelectedAnswer: "4"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestLoadCoursesAssignsIDs(t *testing.T) {
	courses, err := loadCourses(coursesYAML)
	require.NoError(t, err)
	require.NotEmpty(t, courses)

	seen := map[int]bool{}
	for i, c := range courses {
		assert.Equal(t, i+1, c.ID)
		for j, m := range c.Modules {
			assert.Equal(t, c.ID, m.CourseID)
			assert.Equal(t, j+1, m.Order)
			assert.False(t, seen[m.ID], "module ids are unique")
			seen[m.ID] = true
		}
	}
}
