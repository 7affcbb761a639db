package assessment

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func choice(id string) Option { return Option{ID: id, Text: id} }

func mcq(id, correct string, options ...string) Question {
	q := Question{ID: id, Prompt: "Question " + id, CorrectAnswer: correct}
	for _, o := range options {
		q.Options = append(q.Options, choice(o))
	}
	return q
}

func numberedSet(t *testing.T, n int) *QuestionSet {
	t.Helper()
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = mcq(fmt.Sprintf("q%d", i+1), "right", "right", "wrong")
	}
	set, err := NewQuestionSet(qs)
	require.NoError(t, err)
	return set
}

func startedSession(t *testing.T, set *QuestionSet, policy RetryPolicy) (*Session, *FakeClock) {
	t.Helper()
	clock := NewFakeClock(epoch)
	s, err := NewSession(set, policy, WithClock(clock), WithID("test-session"))
	require.NoError(t, err)
	require.NoError(t, s.Start())
	return s, clock
}
