package store

import (
	"context"
	"errors"
	"time"
)

// ErrNoCredentials is returned when no login has been saved.
var ErrNoCredentials = errors.New("not logged in")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session lifecycle actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
	ActionFail     = "fail"
	ActionSubmit   = "submit"
)

// SessionEventData captures one session lifecycle transition.
type SessionEventData struct {
	SessionID string
	Kind      string // technical, behavioral, quiz
	Action    string

	Questions      int
	Attempts       int
	Correct        int
	MeanResponseMs int64
	ScoreTotal     float64

	// Detail is free text, e.g. the course title or a failure message.
	Detail string
}

// SessionEvent is a stored SessionEventData.
type SessionEvent struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// SessionSummary is the latest known state of one session.
type SessionSummary struct {
	SessionID string
	Kind      string
	Detail    string
	StartedAt time.Time

	// LastAction is the most recent lifecycle action.
	LastAction string
	Questions  int
	Attempts   int
	Correct    int
	ScoreTotal float64

	Submitted int
	Failed    int
}

// SubmissionEventData captures the outcome of dispatching one attempt
// record to the platform.
type SubmissionEventData struct {
	SessionID      string
	Kind           string
	QuestionID     string
	SelectedAnswer string
	CorrectAnswer  string
	AttemptNumber  int
	ResponseMs     int64
	IsCorrect      bool
	Weighted       bool
	ScoreWeight    float64

	Success      bool
	Reference    string
	ErrorMessage string
}

// SubmissionEvent is a stored SubmissionEventData.
type SubmissionEvent struct {
	SubmissionEventData
	Sequence  int64
	Timestamp time.Time
}

// APIRequestEventData captures a single platform API call.
type APIRequestEventData struct {
	Method       string
	Path         string
	Purpose      string
	StatusCode   int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// APIRequestEvent is a stored APIRequestEventData.
type APIRequestEvent struct {
	APIRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to the local event log.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendSubmission(ctx context.Context, data SubmissionEventData) error
	AppendAPIRequest(ctx context.Context, data APIRequestEventData) error

	// SessionEvents returns a session's lifecycle events in order.
	SessionEvents(ctx context.Context, sessionID string) ([]SessionEvent, error)

	// Submissions returns every submission outcome of a session in order.
	Submissions(ctx context.Context, sessionID string) ([]SubmissionEvent, error)

	// FailedSubmissions returns the records of a session whose most
	// recent submission outcome is a failure.
	FailedSubmissions(ctx context.Context, sessionID string) ([]SubmissionEvent, error)

	// QuerySessionSummaries lists sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error)

	// QueryAPIRequests lists API calls, newest first.
	QueryAPIRequests(ctx context.Context, opts QueryOpts) ([]APIRequestEvent, error)
}

// Credentials is the saved login.
type Credentials struct {
	Email   string
	Token   string
	SavedAt time.Time
}

// CredentialRepo stores the single active login.
type CredentialRepo interface {
	Save(ctx context.Context, c Credentials) error

	// Load returns ErrNoCredentials when nobody is logged in.
	Load(ctx context.Context) (Credentials, error)

	Clear(ctx context.Context) error
}
