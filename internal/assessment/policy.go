package assessment

import (
	"fmt"
	"time"
)

type policyKind int

const (
	kindSingleAttempt policyKind = iota
	kindRetryUntilCorrect
)

// RetryPolicy selects how a session treats incorrect answers. The zero
// value is SingleAttempt.
type RetryPolicy struct {
	kind          policyKind
	feedbackDelay time.Duration
}

// SingleAttempt accepts exactly one answer per question regardless of
// correctness.
func SingleAttempt() RetryPolicy {
	return RetryPolicy{kind: kindSingleAttempt}
}

// RetryUntilCorrect re-presents a question after an incorrect answer once
// feedbackDelay has elapsed. Only a correct answer unlocks advancement.
func RetryUntilCorrect(feedbackDelay time.Duration) RetryPolicy {
	if feedbackDelay < 0 {
		feedbackDelay = 0
	}
	return RetryPolicy{kind: kindRetryUntilCorrect, feedbackDelay: feedbackDelay}
}

// Retries reports whether incorrect answers are retried.
func (p RetryPolicy) Retries() bool {
	return p.kind == kindRetryUntilCorrect
}

// FeedbackDelay is the mandatory hold after an incorrect answer. Zero for
// SingleAttempt.
func (p RetryPolicy) FeedbackDelay() time.Duration {
	return p.feedbackDelay
}

func (p RetryPolicy) String() string {
	if p.Retries() {
		return fmt.Sprintf("retry-until-correct(%s)", p.feedbackDelay)
	}
	return "single-attempt"
}
