package assessment

import (
	"math"
	"time"
)

// AttemptRecord is one committed answer. Records are values and never
// change once appended.
type AttemptRecord struct {
	QuestionID     string
	SelectedAnswer string

	// CorrectAnswer snapshots the correct option for audit. Empty for
	// weighted questions.
	CorrectAnswer string

	// AttemptNumber is 1-based and restarts for every question.
	AttemptNumber int

	// ResponseTime covers this attempt only.
	ResponseTime time.Duration

	IsCorrect bool

	Weighted    bool
	ScoreWeight float64
}

// RecordKey identifies a record within a session.
type RecordKey struct {
	QuestionID    string
	AttemptNumber int
}

// Key returns the record's identity.
func (r AttemptRecord) Key() RecordKey {
	return RecordKey{QuestionID: r.QuestionID, AttemptNumber: r.AttemptNumber}
}

// ResponseTimeSeconds returns the response time in seconds rounded to two
// decimals, the precision the platform stores.
func (r AttemptRecord) ResponseTimeSeconds() float64 {
	return math.Round(r.ResponseTime.Seconds()*100) / 100
}
