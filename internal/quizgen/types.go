// Package quizgen authors multiple-choice quizzes with an LLM provider.
package quizgen

import "github.com/abhisek/ababa/internal/content"

// Input holds all context needed to generate a quiz.
type Input struct {
	Subject    string             // e.g. "Biology"
	Grade      string             // e.g. "Grade 12"
	Topic      string             // optional focus, e.g. "Cell division"
	Difficulty content.Difficulty // defaults to Medium
	Count      int                // number of questions, defaults to Config.DefaultCount

	// PriorQuestions are question texts the quiz must not repeat, usually
	// the questions already stored for the subject.
	PriorQuestions []string
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Title     string           `json:"title"`
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}
