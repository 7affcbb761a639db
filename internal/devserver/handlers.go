package devserver

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/cogniq/internal/api"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

func userFrom(ctx context.Context) api.User {
	u, _ := ctx.Value(ctxKeyUser).(api.User)
	return u
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, api.ErrorBody{Detail: detail})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid JSON body")
		return false
	}
	return true
}

// requireUser resolves the bearer token to a registered user.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		email, err := s.issuer.Verify(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		u, ok := s.lookup(email)
		if !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyUser, u)))
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Password == "" {
		respondError(w, http.StatusUnprocessableEntity, "name and password are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "value is not a valid email address")
		return
	}

	u, created, err := s.addUser(req.Name, req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !created {
		respondError(w, http.StatusBadRequest, "Email already registered")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	token, ok := s.authenticate(req.Email, req.Password)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	respondJSON(w, http.StatusOK, api.Token{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, userFrom(r.Context()))
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]api.Course, len(s.courses))
	for i, c := range s.courses {
		c.Quiz = nil
		list[i] = c
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "courseID"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "course id must be an integer")
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.courses {
		if c.ID == id {
			respondJSON(w, http.StatusOK, c)
			return
		}
	}
	respondError(w, http.StatusNotFound, "Course not found")
}

func (s *Server) handleTechnical(w http.ResponseWriter, r *http.Request) {
	var a api.TechnicalAttempt
	if !decode(w, r, &a) {
		return
	}
	if a.AttemptNumber < 1 || a.SelectedAnswer == "" {
		respondError(w, http.StatusUnprocessableEntity, "selected_answer and attempt_number are required")
		return
	}
	u := userFrom(r.Context())

	s.mu.Lock()
	s.nextRecID++
	a.ID, a.UserID = s.nextRecID, u.ID
	s.technical[u.ID] = append(s.technical[u.ID], a)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, a)
}

func (s *Server) handleBehavioral(w http.ResponseWriter, r *http.Request) {
	var b api.BehavioralResponse
	if !decode(w, r, &b) {
		return
	}
	if b.SelectedOption == "" {
		respondError(w, http.StatusUnprocessableEntity, "selected_option is required")
		return
	}
	u := userFrom(r.Context())

	s.mu.Lock()
	s.nextRecID++
	b.ID, b.UserID = s.nextRecID, u.ID
	s.behavioral[u.ID] = append(s.behavioral[u.ID], b)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, b)
}

// defaultProfile is the platform's profile for a learner with no scores.
func defaultProfile(userID int) api.Profile {
	return api.Profile{
		UserID:              userID,
		CognitiveLevel:      "Basic Learner",
		LearningStyle:       "Visual",
		RecommendedStrategy: "Recommend structured learning, Daily 1 hour focused study, Video-based learning.",
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, defaultProfile(userFrom(r.Context()).ID))
}

// handleRecommendedCourses serves the courses the default profile maps to:
// Beginner courses, topped up with others when fewer than three.
func (s *Server) handleRecommendedCourses(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var picked, others []api.Course
	for _, c := range s.courses {
		c.Quiz = nil
		if c.Difficulty == "Beginner" {
			if len(picked) < 5 {
				picked = append(picked, c)
			}
		} else {
			others = append(others, c)
		}
	}
	for _, c := range others {
		if len(picked) >= 3 {
			break
		}
		picked = append(picked, c)
	}
	if picked == nil {
		picked = []api.Course{}
	}
	respondJSON(w, http.StatusOK, picked)
}

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	u := userFrom(r.Context())
	profile := defaultProfile(u.ID)

	s.mu.RLock()
	attempts := s.technical[u.ID]
	behavioral := len(s.behavioral[u.ID])
	s.mu.RUnlock()

	perf := api.Performance{
		Profile:                  &profile,
		AccuracyTrend:            []api.AccuracyPoint{},
		ResponseTimeTrend:        []api.ResponseTimePoint{},
		TotalAttempts:            len(attempts),
		TotalBehavioralResponses: behavioral,
	}
	correct := 0
	for i, a := range attempts {
		if a.IsCorrect {
			correct++
		}
		perf.AccuracyTrend = append(perf.AccuracyTrend, api.AccuracyPoint{
			Attempt:  i + 1,
			Accuracy: math.Round(float64(correct)/float64(i+1)*10000) / 100,
		})
		perf.ResponseTimeTrend = append(perf.ResponseTimeTrend, api.ResponseTimePoint{Attempt: i + 1, Time: a.ResponseTime})
	}
	// Only the last ten points are reported.
	if n := len(perf.AccuracyTrend); n > 10 {
		perf.AccuracyTrend = perf.AccuracyTrend[n-10:]
		perf.ResponseTimeTrend = perf.ResponseTimeTrend[n-10:]
	}
	respondJSON(w, http.StatusOK, perf)
}
