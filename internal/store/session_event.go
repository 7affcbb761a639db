package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionEventColumns = []string{
	"sequence", "timestamp", "session_id", "kind", "action", "questions",
	"attempts", "correct", "mean_response_ms", "score_total", "detail",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	_, err := r.insert(ctx, "session_events",
		[]string{"session_id", "kind", "action", "questions", "attempts", "correct", "mean_response_ms", "score_total", "detail"},
		[]any{data.SessionID, data.Kind, data.Action, data.Questions, data.Attempts, data.Correct, data.MeanResponseMs, data.ScoreTotal, data.Detail},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionEvents(ctx context.Context, sessionID string) ([]SessionEvent, error) {
	query, args := builder().
		Select(sessionEventColumns...).
		From(entsql.Table("session_events")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()
	return r.scanSessionEvents(ctx, query, args)
}

func (r *eventRepo) scanSessionEvents(ctx context.Context, query string, args []any) ([]SessionEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var e SessionEvent
		var ts int64
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.Kind, &e.Action, &e.Questions,
			&e.Attempts, &e.Correct, &e.MeanResponseMs, &e.ScoreTotal, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummary, error) {
	// Sessions are keyed by their start event; the limit applies to those.
	starts := builder().
		Select(sessionEventColumns...).
		From(entsql.Table("session_events")).
		Where(entsql.EQ("action", ActionStart)).
		OrderBy(entsql.Desc("sequence"))
	query, args := applyOpts(starts, opts).Query()

	startEvents, err := r.scanSessionEvents(ctx, query, args)
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, len(startEvents))
	for i, start := range startEvents {
		sum := SessionSummary{
			SessionID:  start.SessionID,
			Kind:       start.Kind,
			Detail:     start.Detail,
			StartedAt:  start.Timestamp,
			LastAction: start.Action,
			Questions:  start.Questions,
		}

		events, err := r.SessionEvents(ctx, start.SessionID)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			if e.Action == ActionSubmit {
				continue
			}
			sum.LastAction = e.Action
			if e.Action == ActionComplete {
				sum.Attempts = e.Attempts
				sum.Correct = e.Correct
				sum.ScoreTotal = e.ScoreTotal
			}
		}

		subs, err := r.Submissions(ctx, start.SessionID)
		if err != nil {
			return nil, err
		}
		for _, s := range latestOutcomes(subs) {
			if s.Success {
				sum.Submitted++
			} else {
				sum.Failed++
			}
		}

		summaries[i] = sum
	}
	return summaries, nil
}
