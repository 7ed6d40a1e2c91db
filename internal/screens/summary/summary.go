// Package summary shows the results of a quiz attempt.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ababa/internal/router"
	"github.com/abhisek/ababa/internal/screen"
	"github.com/abhisek/ababa/internal/ui/components"
	"github.com/abhisek/ababa/internal/ui/layout"
	"github.com/abhisek/ababa/internal/ui/theme"
)

// Item is the outcome of one question.
type Item struct {
	Text     string
	Answered bool
	Correct  bool
	Chosen   string
	Answer   string
}

// Result is a finished (or abandoned) attempt.
type Result struct {
	Title string
	Items []Item
}

// Answered returns the number of answered questions.
func (r Result) Answered() int {
	n := 0
	for _, it := range r.Items {
		if it.Answered {
			n++
		}
	}
	return n
}

// Correct returns the number of correct answers.
func (r Result) Correct() int {
	n := 0
	for _, it := range r.Items {
		if it.Correct {
			n++
		}
	}
	return n
}

// Accuracy is Correct/Answered, 0 with nothing answered.
func (r Result) Accuracy() float64 {
	if a := r.Answered(); a > 0 {
		return float64(r.Correct()) / float64(a)
	}
	return 0
}

// SummaryScreen displays a Result.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Review"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "esc":
			// Back to the quiz to review answers.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	heading := "Quiz complete!"
	if r.Answered() < len(r.Items) {
		heading = "Quiz paused"
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(heading))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(r.Title))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d/%d        Correct: %d        Accuracy: %.0f%%",
		r.Answered(), len(r.Items), r.Correct(), r.Accuracy()*100)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	barWidth := min(width-8, 60)
	bar := components.NewProgressBar("Accuracy", r.Accuracy(), true, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", barWidth))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	textWidth := max(barWidth-6, 10)
	for i, it := range r.Items {
		mark, style := "·", theme.Muted
		switch {
		case it.Correct:
			mark, style = "✓", theme.Correct
		case it.Answered:
			mark, style = "✗", theme.Incorrect
		}
		line := fmt.Sprintf("%s %2d. %s", mark, i+1, clip(it.Text, textWidth))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Width(barWidth).Render(line)))
		b.WriteString("\n")
		if it.Answered && !it.Correct {
			detail := fmt.Sprintf("      you chose %q, answer %q", it.Chosen, it.Answer)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Muted.Width(barWidth).Render(clip(detail, barWidth))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if n < 1 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
