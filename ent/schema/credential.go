package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Credential holds the saved login. The store keeps at most one row, id 1.
type Credential struct {
	ent.Schema
}

func (Credential) Fields() []ent.Field {
	return []ent.Field{
		field.String("email"),
		field.String("token").Sensitive(),
		field.Int64("saved_at").Comment("Unix milliseconds"),
	}
}
