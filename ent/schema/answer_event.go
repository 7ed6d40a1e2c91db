package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one submitted answer. Resubmissions append new rows;
// the latest row for a (session_id, position) pair is the effective answer.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("One attempt at a quiz, from load to exit"),
		field.UUID("quiz_id", uuidType),
		field.UUID("question_id", uuidType),
		field.Int("position"),
		field.Int("option_index"),
		field.Int("correct_index"),
		field.Bool("correct"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("quiz_id"),
		index.Fields("correct"),
	}
}
