package screen

import (
	"errors"
	"testing"

	"github.com/abhisek/cogniq/internal/api"
	"github.com/abhisek/cogniq/internal/auth"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not logged in", &api.ErrUnauthorized{Err: api.ErrNotLoggedIn}, "Log in to continue."},
		{"expired", &api.ErrUnauthorized{Err: auth.ErrTokenExpired}, "Your session has expired. Log in again."},
		{"detail", &api.ErrHTTPStatus{StatusCode: 400, Detail: "Invalid credentials"}, "Invalid credentials"},
		{"unavailable", &api.ErrUnavailable{Err: errors.New("dial tcp")}, "Cannot reach the platform. Try again later."},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.err); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
