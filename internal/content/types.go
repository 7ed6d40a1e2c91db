// Package content defines the catalogue data model: grades, subjects,
// quizzes and their ordered questions.
package content

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty is the label attached to a quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// AllDifficulties lists the accepted difficulty labels in ascending order.
var AllDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known labels.
func (d Difficulty) Valid() bool {
	for _, v := range AllDifficulties {
		if d == v {
			return true
		}
	}
	return false
}

// Grade is the top level of the catalogue (e.g. "Grade 12").
type Grade struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Subject belongs to a grade.
type Subject struct {
	ID        uuid.UUID
	Name      string
	Icon      string
	Color     string
	GradeID   uuid.UUID
	Students  int
	Rating    string
	CreatedAt time.Time
}

// Quiz is a titled set of questions within a subject. QuestionsCount is
// informational and may differ from the number of questions loaded.
type Quiz struct {
	ID             uuid.UUID
	Title          string
	Difficulty     Difficulty
	QuestionsCount int
	SubjectID      uuid.UUID
	CreatedAt      time.Time
}

// Question is a single multiple-choice item. CorrectIndex is a valid index
// into Options.
type Question struct {
	ID           uuid.UUID
	QuizID       uuid.UUID
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string // empty when absent
	CreatedAt    time.Time
}

// HasExplanation reports whether an authored explanation is present.
func (q Question) HasExplanation() bool {
	return q.Explanation != ""
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// QuizWithQuestions is a quiz together with its ordered question sequence.
// The order of Questions defines navigation order.
type QuizWithQuestions struct {
	Quiz
	Questions   []Question
	SubjectName string
}

// Len returns the number of loaded questions.
func (q *QuizWithQuestions) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Questions)
}
