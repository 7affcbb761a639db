package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submission(session, question string, attempt int, ok bool) SubmissionEventData {
	d := SubmissionEventData{
		SessionID:      session,
		Kind:           "technical",
		QuestionID:     question,
		SelectedAnswer: "42",
		CorrectAnswer:  "42",
		AttemptNumber:  attempt,
		ResponseMs:     1250,
		IsCorrect:      true,
		Success:        ok,
	}
	if !ok {
		d.ErrorMessage = "connection refused"
	}
	return d
}

func TestFailedSubmissionsUsesLatestOutcome(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSubmission(ctx, submission("s1", "1", 1, true)))
	require.NoError(t, repo.AppendSubmission(ctx, submission("s1", "2", 1, false)))
	require.NoError(t, repo.AppendSubmission(ctx, submission("s1", "3", 1, false)))
	require.NoError(t, repo.AppendSubmission(ctx, submission("other", "1", 1, false)))

	// A later resubmission of question 2 succeeds.
	require.NoError(t, repo.AppendSubmission(ctx, submission("s1", "2", 1, true)))

	failed, err := repo.FailedSubmissions(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "3", failed[0].QuestionID)
	assert.Equal(t, "connection refused", failed[0].ErrorMessage)
	assert.Equal(t, int64(1250), failed[0].ResponseMs)
	assert.True(t, failed[0].IsCorrect)

	all, err := repo.Submissions(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestQuerySessionSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Kind: "technical", Action: ActionStart, Questions: 10}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Kind: "technical", Action: ActionComplete, Questions: 10, Attempts: 13, Correct: 10}))
	require.NoError(t, repo.AppendSubmission(ctx, submission("s1", "1", 1, true)))
	require.NoError(t, repo.AppendSubmission(ctx, submission("s1", "2", 1, false)))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Kind: "technical", Action: ActionSubmit}))

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s2", Kind: "behavioral", Action: ActionStart, Questions: 10}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s2", Kind: "behavioral", Action: ActionAbandon}))

	sums, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 2)

	assert.Equal(t, "s2", sums[0].SessionID, "newest first")
	assert.Equal(t, ActionAbandon, sums[0].LastAction)

	assert.Equal(t, "s1", sums[1].SessionID)
	assert.Equal(t, ActionComplete, sums[1].LastAction)
	assert.Equal(t, 13, sums[1].Attempts)
	assert.Equal(t, 10, sums[1].Correct)
	assert.Equal(t, 1, sums[1].Submitted)
	assert.Equal(t, 1, sums[1].Failed)

	limited, err := repo.QuerySessionSummaries(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "s2", limited[0].SessionID)
}

func TestQueryAPIRequests(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, path := range []string{"/auth/login", "/courses/", "/tests/technical"} {
		require.NoError(t, repo.AppendAPIRequest(ctx, APIRequestEventData{
			Method: "GET", Path: path, Purpose: "test", StatusCode: 200, LatencyMs: 5, Success: true,
		}))
	}

	events, err := repo.QueryAPIRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "/tests/technical", events[0].Path)
	assert.True(t, events[0].Success)

	after, err := repo.QueryAPIRequests(ctx, QueryOpts{After: events[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "/tests/technical", after[0].Path)
}
