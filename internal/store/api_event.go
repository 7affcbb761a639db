package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAPIRequest(ctx context.Context, data APIRequestEventData) error {
	_, err := r.insert(ctx, "api_request_events",
		[]string{"method", "path", "purpose", "status_code", "latency_ms", "success", "error_message"},
		[]any{data.Method, data.Path, data.Purpose, data.StatusCode, data.LatencyMs, boolInt(data.Success), data.ErrorMessage},
	)
	if err != nil {
		return fmt.Errorf("save API request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAPIRequests(ctx context.Context, opts QueryOpts) ([]APIRequestEvent, error) {
	sel := builder().
		Select("sequence", "timestamp", "method", "path", "purpose", "status_code", "latency_ms", "success", "error_message").
		From(entsql.Table("api_request_events")).
		OrderBy(entsql.Desc("sequence"))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query API requests: %w", err)
	}
	defer rows.Close()

	var events []APIRequestEvent
	for rows.Next() {
		var e APIRequestEvent
		var ts int64
		var success int
		if err := rows.Scan(&e.Sequence, &ts, &e.Method, &e.Path, &e.Purpose, &e.StatusCode,
			&e.LatencyMs, &success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan API request: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		e.Success = success != 0
		events = append(events, e)
	}
	return events, rows.Err()
}
