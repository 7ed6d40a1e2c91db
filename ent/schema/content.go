package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"github.com/google/uuid"
)

var uuidType = uuid.UUID{}

// Grade is a school grade level, e.g. "Grade 12".
type Grade struct {
	ent.Schema
}

func (Grade) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidType).
			Default(uuid.New),
		field.String("name").
			NotEmpty().
			Unique(),
		field.Time("created_at").
			Default(time.Now),
	}
}

// Subject belongs to a grade.
type Subject struct {
	ent.Schema
}

func (Subject) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidType).
			Default(uuid.New),
		field.String("name").
			NotEmpty(),
		field.String("icon").
			Default(""),
		field.String("color").
			Default("").
			Comment("Hex color used by the browse screen"),
		field.UUID("grade_id", uuidType),
		field.Int("students").
			Default(0),
		field.String("rating").
			Default("").
			Comment("Display rating, e.g. 4.8"),
		field.Time("created_at").
			Default(time.Now),
	}
}

func (Subject) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("grade_id", "name").Unique(),
	}
}

// Quiz belongs to a subject.
type Quiz struct {
	ent.Schema
}

func (Quiz) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidType).
			Default(uuid.New),
		field.String("title").
			NotEmpty(),
		field.Enum("difficulty").
			Values("Easy", "Medium", "Hard"),
		field.Int("questions_count").
			Default(0),
		field.UUID("subject_id", uuidType),
		field.Time("created_at").
			Default(time.Now),
	}
}

func (Quiz) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "quizzes"},
	}
}

func (Quiz) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("subject_id", "title").Unique(),
		index.Fields("title"),
	}
}

// Question is one multiple-choice item of a quiz.
type Question struct {
	ent.Schema
}

func (Question) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuidType).
			Default(uuid.New),
		field.UUID("quiz_id", uuidType),
		field.Int("position").
			Comment("Order of the question within its quiz"),
		field.Text("text").
			NotEmpty(),
		field.JSON("options", []string{}),
		field.Int("correct_index"),
		field.Text("explanation").
			Default(""),
		field.Time("created_at").
			Default(time.Now),
	}
}

func (Question) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("quiz_id", "position").Unique(),
	}
}
