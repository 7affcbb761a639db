package assessment

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	ErrEmptySet         = errors.New("question set is empty")
	ErrDuplicateID      = errors.New("duplicate question id")
	ErrInvalidQuestion  = errors.New("invalid question")
	ErrQuestionNotFound = errors.New("question not found")
)

// Session protocol errors.
var (
	// ErrInvalidAnswer is returned when the answer is not one of the
	// question's options. No record is appended and no attempt is consumed.
	ErrInvalidAnswer = errors.New("answer is not one of the question's options")

	ErrAlreadyStarted    = errors.New("session already started")
	ErrNotStarted        = errors.New("session not started")
	ErrSessionClosed     = errors.New("session is closed")
	ErrFeedbackHold      = errors.New("feedback hold in progress")
	ErrNotAwaitingAnswer = errors.New("session is not awaiting an answer")
	ErrNotAdvancing      = errors.New("session is not ready to advance")
	ErrNotCompleted      = errors.New("session is not completed")

	// ErrTimerUnavailable means the clock could not be read. It is fatal to
	// the session.
	ErrTimerUnavailable = errors.New("timer unavailable")
)

// TransportError wraps a per-record failure returned by the submit
// collaborator.
type TransportError struct {
	Key RecordKey
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("submit question %s attempt %d: %v", e.Key.QuestionID, e.Key.AttemptNumber, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
