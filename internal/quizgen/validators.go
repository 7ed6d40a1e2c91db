package quizgen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/abhisek/ababa/internal/content"
)

const (
	// OptionCount is the number of options every generated question has.
	OptionCount = 4

	maxQuestionLen    = 600
	maxExplanationLen = 1200
)

// StructuralValidator checks the title, the question count and the text
// fields of every question.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *content.QuizWithQuestions, input Input) *ValidationError {
	fail := func(idx int, msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Question: idx, Message: msg, Retryable: true}
	}

	if strings.TrimSpace(q.Title) == "" {
		return fail(-1, "title is empty")
	}
	if input.Count > 0 && len(q.Questions) != input.Count {
		return fail(-1, fmt.Sprintf("expected %d questions, got %d", input.Count, len(q.Questions)))
	}
	for i, question := range q.Questions {
		switch {
		case strings.TrimSpace(question.Text) == "":
			return fail(i, "text is empty")
		case len(question.Text) > maxQuestionLen:
			return fail(i, fmt.Sprintf("text exceeds %d characters", maxQuestionLen))
		case strings.TrimSpace(question.Explanation) == "":
			return fail(i, "explanation is empty")
		case len(question.Explanation) > maxExplanationLen:
			return fail(i, fmt.Sprintf("explanation exceeds %d characters", maxExplanationLen))
		}
	}
	return nil
}

// OptionsValidator checks the option count, that options are non-empty and
// distinct, and that the correct index is in range.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *content.QuizWithQuestions, _ Input) *ValidationError {
	for i, question := range q.Questions {
		if len(question.Options) != OptionCount {
			return &ValidationError{
				Validator: v.Name(),
				Question:  i,
				Message:   fmt.Sprintf("must have exactly %d options, got %d", OptionCount, len(question.Options)),
				Retryable: true,
			}
		}
		if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options) {
			return &ValidationError{
				Validator: v.Name(),
				Question:  i,
				Message:   fmt.Sprintf("correct_index %d out of range [0, %d)", question.CorrectIndex, len(question.Options)),
				Retryable: true,
			}
		}
		seen := make(map[string]bool, len(question.Options))
		for j, opt := range question.Options {
			key := normalize(opt)
			if key == "" {
				return &ValidationError{
					Validator: v.Name(),
					Question:  i,
					Message:   fmt.Sprintf("option %d is empty", j),
					Retryable: true,
				}
			}
			if seen[key] {
				return &ValidationError{
					Validator: v.Name(),
					Question:  i,
					Message:   fmt.Sprintf("duplicate option %q", strings.TrimSpace(opt)),
					Retryable: true,
				}
			}
			seen[key] = true
		}
	}
	return nil
}

// AnswerLeakValidator rejects questions whose text quotes the correct
// option. Options shorter than two words and six letters are skipped, since
// short numeric answers appear in question text legitimately.
type AnswerLeakValidator struct{}

func (v *AnswerLeakValidator) Name() string { return "answer-leak" }

func (v *AnswerLeakValidator) Validate(q *content.QuizWithQuestions, _ Input) *ValidationError {
	for i, question := range q.Questions {
		answer := normalize(question.CorrectOption())
		if len(answer) < 6 && !strings.Contains(answer, " ") {
			continue
		}
		if strings.Contains(normalize(question.Text), answer) {
			return &ValidationError{
				Validator: v.Name(),
				Question:  i,
				Message:   fmt.Sprintf("question text gives away the answer %q", question.CorrectOption()),
				Retryable: true,
			}
		}
	}
	return nil
}

// DuplicateValidator rejects questions repeated within the quiz or taken
// from Input.PriorQuestions.
type DuplicateValidator struct{}

func (v *DuplicateValidator) Name() string { return "duplicate" }

func (v *DuplicateValidator) Validate(q *content.QuizWithQuestions, input Input) *ValidationError {
	prior := make(map[string]bool, len(input.PriorQuestions))
	for _, p := range input.PriorQuestions {
		prior[normalize(p)] = true
	}
	seen := make(map[string]bool, len(q.Questions))
	for i, question := range q.Questions {
		key := normalize(question.Text)
		if prior[key] {
			return &ValidationError{Validator: v.Name(), Question: i, Message: "repeats an existing question", Retryable: true}
		}
		if seen[key] {
			return &ValidationError{Validator: v.Name(), Question: i, Message: "repeats an earlier question in this quiz", Retryable: true}
		}
		seen[key] = true
	}
	return nil
}

// normalize lowercases s, drops punctuation and collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}
