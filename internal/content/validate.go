package content

import (
	"errors"
	"fmt"
	"strings"
)

// MinOptions is the smallest number of options a question may have.
const MinOptions = 2

var (
	// ErrInvalidQuestion is returned (wrapped) by Validate.
	ErrInvalidQuestion = errors.New("invalid question")

	// ErrMissingParameter is returned when a lookup is called without its
	// required key.
	ErrMissingParameter = errors.New("missing required parameter")
)

// Validate checks the structural invariants of a question.
func Validate(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	}
	if len(q.Options) < MinOptions {
		return fmt.Errorf("%w: %d options, need at least %d", ErrInvalidQuestion, len(q.Options), MinOptions)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d out of range [0, %d)", ErrInvalidQuestion, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// ValidateQuiz validates the quiz header and every question in it.
func ValidateQuiz(q *QuizWithQuestions) error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("quiz title is required")
	}
	if q.Difficulty != "" && !q.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}
	for i, question := range q.Questions {
		if err := Validate(question); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}
