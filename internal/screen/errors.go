package screen

import (
	"errors"

	"github.com/abhisek/cogniq/internal/api"
)

// Describe turns a platform error into a message fit for the learner.
func Describe(err error) string {
	var se *api.ErrHTTPStatus
	var ue *api.ErrUnavailable
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrNotLoggedIn):
		return "Log in to continue."
	case api.IsUnauthorized(err):
		return "Your session has expired. Log in again."
	case errors.As(err, &se) && se.Detail != "":
		return se.Detail
	case errors.As(err, &ue):
		return "Cannot reach the platform. Try again later."
	}
	return err.Error()
}
