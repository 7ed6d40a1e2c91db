package quizgen

import (
	"fmt"

	"github.com/abhisek/ababa/internal/content"
)

// Validator checks a generated quiz.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil if the quiz passes.
	Validate(q *content.QuizWithQuestions, input Input) *ValidationError
}

// ValidationError describes why a quiz failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Question  int    // Index of the offending question, -1 for the whole quiz
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	if e.Question >= 0 {
		return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Question+1, e.Message)
	}
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
