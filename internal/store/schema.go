package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions for the entities in ent/schema. Event tables are
// append-only; credentials and global_sequence hold a single row, id 1.
// Timestamps are unix milliseconds.
var (
	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "questions", Type: field.TypeInt, Default: 0},
		{Name: "attempts", Type: field.TypeInt, Default: 0},
		{Name: "correct", Type: field.TypeInt, Default: 0},
		{Name: "mean_response_ms", Type: field.TypeInt64, Default: 0},
		{Name: "score_total", Type: field.TypeFloat64, Default: 0},
		{Name: "detail", Type: field.TypeString, Default: ""},
	}
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_timestamp", Columns: []*schema.Column{SessionEventsColumns[2]}},
			{Name: "sessionevent_session_id_sequence", Columns: []*schema.Column{SessionEventsColumns[3], SessionEventsColumns[1]}},
		},
	}

	SubmissionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "question_id", Type: field.TypeString},
		{Name: "selected_answer", Type: field.TypeString},
		{Name: "correct_answer", Type: field.TypeString, Default: ""},
		{Name: "attempt_number", Type: field.TypeInt},
		{Name: "response_ms", Type: field.TypeInt64},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "weighted", Type: field.TypeBool, Default: false},
		{Name: "score_weight", Type: field.TypeFloat64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "reference", Type: field.TypeString, Default: ""},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	SubmissionEventsTable = &schema.Table{
		Name:       "submission_events",
		Columns:    SubmissionEventsColumns,
		PrimaryKey: []*schema.Column{SubmissionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "submissionevent_timestamp", Columns: []*schema.Column{SubmissionEventsColumns[2]}},
			{Name: "submissionevent_session_id_sequence", Columns: []*schema.Column{SubmissionEventsColumns[3], SubmissionEventsColumns[1]}},
		},
	}

	APIRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "method", Type: field.TypeString},
		{Name: "path", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "status_code", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	APIRequestEventsTable = &schema.Table{
		Name:       "api_request_events",
		Columns:    APIRequestEventsColumns,
		PrimaryKey: []*schema.Column{APIRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "apirequestevent_timestamp", Columns: []*schema.Column{APIRequestEventsColumns[2]}},
		},
	}

	CredentialsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "email", Type: field.TypeString},
		{Name: "token", Type: field.TypeString},
		{Name: "saved_at", Type: field.TypeInt64},
	}
	CredentialsTable = &schema.Table{
		Name:       "credentials",
		Columns:    CredentialsColumns,
		PrimaryKey: []*schema.Column{CredentialsColumns[0]},
	}

	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	GlobalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	Tables = []*schema.Table{
		SessionEventsTable,
		SubmissionEventsTable,
		APIRequestEventsTable,
		CredentialsTable,
		GlobalSequenceTable,
	}
)

// migrate creates missing tables and columns through ent's migration engine.
func migrate(ctx context.Context, db *sql.DB) error {
	m, err := schema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
