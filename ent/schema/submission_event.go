package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SubmissionEvent records one answer submission and its outcome against
// the backend.
type SubmissionEvent struct {
	ent.Schema
}

func (SubmissionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SubmissionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").NotEmpty(),
		field.String("kind").NotEmpty(),
		field.String("question_id").NotEmpty(),
		field.String("selected_answer"),
		field.String("correct_answer").Default(""),
		field.Int("attempt_number"),
		field.Int64("response_ms"),
		field.Bool("is_correct"),
		field.Bool("weighted").Default(false),
		field.Float("score_weight").Default(0),
		field.Bool("success").
			Comment("Whether the backend accepted the submission"),
		field.String("reference").
			Default("").
			Comment("Backend id of the stored answer"),
		field.String("error_message").Default(""),
	}
}

func (SubmissionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id", "sequence"),
	}
}
