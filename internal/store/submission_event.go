package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSubmission(ctx context.Context, data SubmissionEventData) error {
	_, err := r.insert(ctx, "submission_events",
		[]string{
			"session_id", "kind", "question_id", "selected_answer", "correct_answer",
			"attempt_number", "response_ms", "is_correct", "weighted", "score_weight",
			"success", "reference", "error_message",
		},
		[]any{
			data.SessionID, data.Kind, data.QuestionID, data.SelectedAnswer, data.CorrectAnswer,
			data.AttemptNumber, data.ResponseMs, boolInt(data.IsCorrect), boolInt(data.Weighted), data.ScoreWeight,
			boolInt(data.Success), data.Reference, data.ErrorMessage,
		},
	)
	if err != nil {
		return fmt.Errorf("save submission event: %w", err)
	}
	return nil
}

func (r *eventRepo) Submissions(ctx context.Context, sessionID string) ([]SubmissionEvent, error) {
	query, args := builder().
		Select(
			"sequence", "timestamp", "session_id", "kind", "question_id", "selected_answer",
			"correct_answer", "attempt_number", "response_ms", "is_correct", "weighted",
			"score_weight", "success", "reference", "error_message",
		).
		From(entsql.Table("submission_events")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var events []SubmissionEvent
	for rows.Next() {
		var e SubmissionEvent
		var ts int64
		var isCorrect, weighted, success int
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.Kind, &e.QuestionID, &e.SelectedAnswer,
			&e.CorrectAnswer, &e.AttemptNumber, &e.ResponseMs, &isCorrect, &weighted,
			&e.ScoreWeight, &success, &e.Reference, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		e.IsCorrect = isCorrect != 0
		e.Weighted = weighted != 0
		e.Success = success != 0
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) FailedSubmissions(ctx context.Context, sessionID string) ([]SubmissionEvent, error) {
	subs, err := r.Submissions(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	var failed []SubmissionEvent
	for _, s := range latestOutcomes(subs) {
		if !s.Success {
			failed = append(failed, s)
		}
	}
	return failed, nil
}

// latestOutcomes keeps the most recent outcome per (question, attempt),
// ordered by the sequence of the first outcome for that record.
func latestOutcomes(events []SubmissionEvent) []SubmissionEvent {
	type key struct {
		question string
		attempt  int
	}
	pos := make(map[key]int)
	var out []SubmissionEvent
	for _, e := range events {
		k := key{e.QuestionID, e.AttemptNumber}
		if i, ok := pos[k]; ok {
			out[i] = e
			continue
		}
		pos[k] = len(out)
		out = append(out, e)
	}
	return out
}
