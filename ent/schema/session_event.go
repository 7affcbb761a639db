package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records assessment lifecycle events: start, completion,
// abandonment and resubmission.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("kind").
			NotEmpty().
			Comment("technical or behavioral"),
		field.String("action").
			NotEmpty(),
		field.Int("questions").
			Default(0),
		field.Int("attempts").
			Default(0),
		field.Int("correct").
			Default(0),
		field.Int64("mean_response_ms").
			Default(0),
		field.Float("score_total").
			Default(0).
			Comment("Weighted score (behavioral only)"),
		field.String("detail").
			Default(""),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "sequence"),
	}
}
