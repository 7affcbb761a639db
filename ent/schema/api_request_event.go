package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// APIRequestEvent records every backend call for latency tracking and
// debugging.
type APIRequestEvent struct {
	ent.Schema
}

func (APIRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (APIRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("method"),
		field.String("path"),
		field.String("purpose").
			Comment("Caller label: login, profile, submit-technical, ..."),
		field.Int("status_code").Default(0),
		field.Int64("latency_ms"),
		field.Bool("success"),
		field.String("error_message").Default(""),
	}
}
