package api

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/abhisek/cogniq/internal/assessment"
	"github.com/abhisek/cogniq/internal/store"
)

// TechnicalAttemptFrom converts a record to the technical wire format.
func TechnicalAttemptFrom(rec assessment.AttemptRecord) (TechnicalAttempt, error) {
	qid, err := strconv.Atoi(rec.QuestionID)
	if err != nil {
		return TechnicalAttempt{}, fmt.Errorf("question id %q is not numeric", rec.QuestionID)
	}
	return TechnicalAttempt{
		QuestionID:     qid,
		SelectedAnswer: rec.SelectedAnswer,
		CorrectAnswer:  rec.CorrectAnswer,
		ResponseTime:   rec.ResponseTimeSeconds(),
		IsCorrect:      rec.IsCorrect,
		AttemptNumber:  rec.AttemptNumber,
	}, nil
}

// BehavioralResponseFrom converts a weighted record to the behavioral wire
// format.
func BehavioralResponseFrom(rec assessment.AttemptRecord) (BehavioralResponse, error) {
	qid, err := strconv.Atoi(rec.QuestionID)
	if err != nil {
		return BehavioralResponse{}, fmt.Errorf("question id %q is not numeric", rec.QuestionID)
	}
	return BehavioralResponse{
		QuestionID:     qid,
		SelectedOption: rec.SelectedAnswer,
		ScoreWeight:    rec.ScoreWeight,
	}, nil
}

// TechnicalSubmitter returns a SubmitFunc posting technical attempts.
func (c *Client) TechnicalSubmitter() assessment.SubmitFunc {
	return func(ctx context.Context, rec assessment.AttemptRecord) (assessment.Ack, error) {
		body, err := TechnicalAttemptFrom(rec)
		if err != nil {
			return assessment.Ack{}, err
		}
		out, err := c.PostTechnical(ctx, body)
		if err != nil {
			return assessment.Ack{}, err
		}
		return assessment.Ack{Reference: strconv.Itoa(out.ID), AcceptedAt: time.Now()}, nil
	}
}

// BehavioralSubmitter returns a SubmitFunc posting behavioral responses.
func (c *Client) BehavioralSubmitter() assessment.SubmitFunc {
	return func(ctx context.Context, rec assessment.AttemptRecord) (assessment.Ack, error) {
		body, err := BehavioralResponseFrom(rec)
		if err != nil {
			return assessment.Ack{}, err
		}
		out, err := c.PostBehavioral(ctx, body)
		if err != nil {
			return assessment.Ack{}, err
		}
		return assessment.Ack{Reference: strconv.Itoa(out.ID), AcceptedAt: time.Now()}, nil
	}
}

// WithSubmissionLog wraps a SubmitFunc so that every outcome is appended to
// the local event log under sessionID.
func WithSubmissionLog(submit assessment.SubmitFunc, repo store.EventRepo, sessionID, kind string) assessment.SubmitFunc {
	return func(ctx context.Context, rec assessment.AttemptRecord) (assessment.Ack, error) {
		ack, err := submit(ctx, rec)

		data := store.SubmissionEventData{
			SessionID:      sessionID,
			Kind:           kind,
			QuestionID:     rec.QuestionID,
			SelectedAnswer: rec.SelectedAnswer,
			CorrectAnswer:  rec.CorrectAnswer,
			AttemptNumber:  rec.AttemptNumber,
			ResponseMs:     rec.ResponseTime.Milliseconds(),
			IsCorrect:      rec.IsCorrect,
			Weighted:       rec.Weighted,
			ScoreWeight:    rec.ScoreWeight,
			Success:        err == nil,
			Reference:      ack.Reference,
		}
		if err != nil {
			data.ErrorMessage = err.Error()
		}
		if logErr := repo.AppendSubmission(context.WithoutCancel(ctx), data); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log submission event: %v\n", logErr)
		}

		return ack, err
	}
}

// RecordFromEvent rebuilds an attempt record from its logged submission.
func RecordFromEvent(e store.SubmissionEvent) assessment.AttemptRecord {
	return assessment.AttemptRecord{
		QuestionID:     e.QuestionID,
		SelectedAnswer: e.SelectedAnswer,
		CorrectAnswer:  e.CorrectAnswer,
		AttemptNumber:  e.AttemptNumber,
		ResponseTime:   time.Duration(e.ResponseMs) * time.Millisecond,
		IsCorrect:      e.IsCorrect,
		Weighted:       e.Weighted,
		ScoreWeight:    e.ScoreWeight,
	}
}

// SubmitterFor returns the SubmitFunc for an assessment kind.
func (c *Client) SubmitterFor(kind string) (assessment.SubmitFunc, error) {
	switch kind {
	case "technical":
		return c.TechnicalSubmitter(), nil
	case "behavioral":
		return c.BehavioralSubmitter(), nil
	}
	return nil, fmt.Errorf("%s results are not submitted", kind)
}
