// Package seed loads the bundled starter catalogue into a content store.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/ababa/internal/content"
)

//go:embed data.yaml
var bundled []byte

// Writer is the write side of the catalogue. *store.ContentRepo satisfies it.
type Writer interface {
	CreateGrade(ctx context.Context, name string) (content.Grade, error)
	CreateSubject(ctx context.Context, s content.Subject) (content.Subject, error)
	CreateQuiz(ctx context.Context, q content.Quiz) (content.Quiz, error)
	AddQuestions(ctx context.Context, quizID uuid.UUID, questions []content.Question) (int, error)
}

// Summary reports what a Load touched. Questions counts newly inserted
// rows only, so a repeated Load reports zero.
type Summary struct {
	Grades    int
	Subjects  int
	Quizzes   int
	Questions int
}

type catalogue struct {
	Grades   []string      `yaml:"grades"`
	Subjects []subjectData `yaml:"subjects"`
}

type subjectData struct {
	Name     string     `yaml:"name"`
	Grade    string     `yaml:"grade"`
	Icon     string     `yaml:"icon"`
	Color    string     `yaml:"color"`
	Students int        `yaml:"students"`
	Rating   string     `yaml:"rating"`
	Quizzes  []quizData `yaml:"quizzes"`
}

type quizData struct {
	Title      string         `yaml:"title"`
	Difficulty string         `yaml:"difficulty"`
	Questions  []questionData `yaml:"questions"`
}

type questionData struct {
	Text         string   `yaml:"text"`
	Options      []string `yaml:"options"`
	CorrectIndex int      `yaml:"correct_index"`
	Explanation  string   `yaml:"explanation"`
}

// Load writes the bundled catalogue through w. It is safe to run on a store
// that already holds the catalogue.
func Load(ctx context.Context, w Writer) (Summary, error) {
	return LoadData(ctx, w, bundled)
}

// LoadData is Load for caller-supplied YAML.
func LoadData(ctx context.Context, w Writer, data []byte) (Summary, error) {
	var c catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Summary{}, fmt.Errorf("parse seed data: %w", err)
	}

	var sum Summary
	grades := make(map[string]content.Grade, len(c.Grades))
	for _, name := range c.Grades {
		g, err := w.CreateGrade(ctx, name)
		if err != nil {
			return sum, err
		}
		grades[name] = g
		sum.Grades++
	}

	for _, sd := range c.Subjects {
		g, ok := grades[sd.Grade]
		if !ok {
			return sum, fmt.Errorf("subject %q: unknown grade %q", sd.Name, sd.Grade)
		}
		subj, err := w.CreateSubject(ctx, content.Subject{
			Name:     sd.Name,
			Icon:     sd.Icon,
			Color:    sd.Color,
			GradeID:  g.ID,
			Students: sd.Students,
			Rating:   sd.Rating,
		})
		if err != nil {
			return sum, err
		}
		sum.Subjects++

		for _, qd := range sd.Quizzes {
			q, err := w.CreateQuiz(ctx, content.Quiz{
				Title:      qd.Title,
				Difficulty: content.Difficulty(qd.Difficulty),
				SubjectID:  subj.ID,
			})
			if err != nil {
				return sum, err
			}
			sum.Quizzes++

			questions := make([]content.Question, len(qd.Questions))
			for i, x := range qd.Questions {
				questions[i] = content.Question{
					QuizID:       q.ID,
					Text:         x.Text,
					Options:      x.Options,
					CorrectIndex: x.CorrectIndex,
					Explanation:  x.Explanation,
				}
			}
			n, err := w.AddQuestions(ctx, q.ID, questions)
			if err != nil {
				return sum, fmt.Errorf("quiz %q: %w", qd.Title, err)
			}
			sum.Questions += n
		}
	}
	return sum, nil
}
