package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an experienced educator writing multiple-choice practice quizzes for secondary school students preparing for national exams.

Rules:
- Write exactly the number of questions requested, on the given subject, grade and topic.
- Every question has exactly 4 options and exactly one correct option. Distractors should reflect common misconceptions, not random values.
- correct_index is the zero-based position of the correct option. Vary it across questions.
- The question text must not contain the correct option's wording.
- Keep each explanation to two or three sentences showing why the correct option is right.
- Use plain text. No LaTeX and no markdown.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the user message from Input and Config
// limits. lastErr, when set, describes why the previous attempt failed.
func buildUserMessage(input Input, cfg Config, lastErr error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", input.Subject)
	if input.Grade != "" {
		fmt.Fprintf(&b, "Grade: %s\n", input.Grade)
	}
	if input.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	}
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", input.Count)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	if lastErr != nil {
		b.WriteString("\n\nYour previous attempt was rejected: ")
		b.WriteString(lastErr.Error())
		b.WriteString("\nFix this problem in the new quiz.")
	}

	return b.String()
}

// buildDedup formats prior questions for the prompt, respecting the max limit.
// Returns "None" if there are no prior questions.
func buildDedup(priorQuestions []string, max int) string {
	if len(priorQuestions) == 0 {
		return "None"
	}

	// Keep only the most recent N questions.
	if max > 0 && len(priorQuestions) > max {
		priorQuestions = priorQuestions[len(priorQuestions)-max:]
	}

	var b strings.Builder
	for i, q := range priorQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
