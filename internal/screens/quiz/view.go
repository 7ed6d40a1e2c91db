package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/ababa/internal/tutor"
	"github.com/abhisek/ababa/internal/ui/components"
	"github.com/abhisek/ababa/internal/ui/layout"
	"github.com/abhisek/ababa/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.errMsg + "\n\n" + theme.Hint.Render("Press any key to go back"))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading quiz...")
	}

	if !s.ctrl.ExplanationOpen() {
		return s.renderQuestion(min(width-4, 90))
	}

	if layout.IsWide(width) {
		left := width / 2
		return lipgloss.JoinHorizontal(lipgloss.Top,
			s.renderQuestion(left-2),
			s.renderPanel(width-left-2, height-2),
		)
	}
	return s.renderPanel(width-2, height-2)
}

func (s *QuizScreen) renderQuestion(width int) string {
	var b strings.Builder

	q := s.ctrl.Quiz()
	meta := string(q.Difficulty)
	if q.SubjectName != "" {
		meta = q.SubjectName + " · " + meta
	}
	b.WriteString(theme.Muted.Render(s.positionLabel() + "   " + meta))
	b.WriteString("\n")

	label := fmt.Sprintf("%d/%d answered", s.ctrl.AnsweredCount(), s.ctrl.QuestionCount())
	b.WriteString(components.NewProgressBar(label, s.ctrl.CompletionRatio(), true, width).View())
	b.WriteString("\n\n")

	b.WriteString(s.choice.View(width))
	b.WriteString("\n")

	if s.choice.Answered() {
		cur, _ := s.ctrl.CurrentQuestion()
		if s.choice.IsCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite. The answer is " + cur.CorrectOption() + "."))
		}
		b.WriteString("\n")
		if cur.HasExplanation() {
			b.WriteString(theme.Muted.Width(width).Render(cur.Explanation))
			b.WriteString("\n")
		}
		if !s.ctrl.ExplanationOpen() {
			b.WriteString(theme.Hint.Render("Press e to ask the AI tutor about this question."))
			b.WriteString("\n")
		}
	}

	if s.notice != "" {
		b.WriteString("\n" + theme.Hint.Foreground(theme.Accent).Render(s.notice) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(fmt.Sprintf("Score: %d correct", s.ctrl.CorrectCount())))
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *QuizScreen) renderPanel(width, height int) string {
	snap, ok := s.ctrl.Conversation()
	if !ok {
		return ""
	}
	inner := max(width-4, 10)

	var lines []string
	for _, t := range snap.Turns {
		who := theme.AssistantTurn.Render("Tutor")
		if t.Role == tutor.RoleUser {
			who = theme.UserTurn.Render("You")
		}
		lines = append(lines, who)
		lines = append(lines, strings.Split(theme.Body.Width(inner).Render(t.Text), "\n")...)
		lines = append(lines, "")
	}

	switch snap.State {
	case tutor.Requesting:
		lines = append(lines, theme.Hint.Render("Tutor is typing"+strings.Repeat(".", s.dots+1)))
	case tutor.Failed:
		msg := "Something went wrong."
		if snap.Err != nil {
			msg = snap.Err.Error()
		}
		lines = append(lines, theme.ErrorText.Width(inner).Render(msg))
		lines = append(lines, theme.Hint.Render("Press r to try again."))
	}

	footer := ""
	if snap.State == tutor.Ready {
		footer = s.input.View()
	}
	if s.notice != "" {
		footer += "\n" + theme.Hint.Foreground(theme.Accent).Render(s.notice)
	}

	// Keep the tail of the chat in view.
	budget := max(height-4-lipgloss.Height(footer), 3)
	if len(lines) > budget {
		lines = lines[len(lines)-budget:]
	}

	body := theme.Title.Render("AI Tutor") + "\n" + strings.Join(lines, "\n")
	if footer != "" {
		body += "\n" + footer
	}
	return theme.Panel.Width(width).Render(body)
}
