package tutor

import (
	"fmt"
	"strings"
)

const tutorGuidance = `Your goal is to help the student understand the concept.
- If they ask for the answer, guide them towards it first unless they are stuck.
- Be concise and friendly.
- Write plain text for a terminal. Short bullet lists are fine; avoid tables and headings.
- If an explanation is provided, use it to inform your answer and expand on it if needed.`

// Prompt builds the system prompt for a question. language is a display
// name such as "English" or "Amharic"; empty means English.
func Prompt(q QuestionContext, language string) string {
	if language == "" {
		language = "English"
	}

	var b strings.Builder
	b.WriteString("You are a helpful and encouraging AI tutor for students.\n")
	b.WriteString("You are helping a student with the following question:\n\n")
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "Options: %s\n", formatOptions(q.Options))
	fmt.Fprintf(&b, "Correct Answer Index: %d", q.CorrectIndex)
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
		fmt.Fprintf(&b, " (%s)", q.Options[q.CorrectIndex])
	}
	b.WriteString("\n")
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Explanation: %s\n", q.Explanation)
	}
	b.WriteString("\n")
	b.WriteString(tutorGuidance)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "IMPORTANT: Always respond in the user's language. The user is currently using %s. "+
		"Adapt your response to match their language preference.\n", language)

	return b.String()
}

// formatOptions renders options as "0) a, 1) b" so the index in the prompt
// is unambiguous.
func formatOptions(opts []string) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = fmt.Sprintf("%d) %s", i, o)
	}
	return strings.Join(parts, ", ")
}
