// Package history lists past quiz attempts with their accuracy.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ababa/internal/router"
	"github.com/abhisek/ababa/internal/screen"
	"github.com/abhisek/ababa/internal/store"
	"github.com/abhisek/ababa/internal/ui/layout"
	"github.com/abhisek/ababa/internal/ui/theme"
)

// Source supplies per-quiz answer statistics. store.EventRepo satisfies it.
type Source interface {
	AnswerStats(ctx context.Context) ([]store.QuizAnswerStats, error)
}

type historyLoadedMsg struct {
	Stats []store.QuizAnswerStats
	Err   error
}

// HistoryScreen displays answer accuracy per quiz.
type HistoryScreen struct {
	source   Source
	stats    []store.QuizAnswerStats
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. source may be nil.
func New(source Source) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	source := s.source
	return func() tea.Msg {
		if source == nil {
			return historyLoadedMsg{}
		}
		stats, err := source.AnswerStats(context.Background())
		return historyLoadedMsg{Stats: stats, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.stats)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	case len(s.stats) == 0:
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Pick a quiz and start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, st := range s.stats {
		title := st.Title
		if title == "" {
			title = "(deleted quiz)"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-36s  %3d answered  %3.0f%% accuracy",
			prefix, title, st.Answered, st.Accuracy()*100)

		style := lipgloss.NewStyle().Foreground(accuracyColor(st.Accuracy()))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			attempts := "attempt"
			if st.Sessions != 1 {
				attempts += "s"
			}
			detail := fmt.Sprintf("    %d %s, %d of %d answers correct",
				st.Sessions, attempts, st.Correct, st.Answered)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Muted.Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func accuracyColor(acc float64) color.Color {
	switch {
	case acc >= 0.8:
		return theme.Success
	case acc >= 0.5:
		return theme.Accent
	default:
		return theme.Error
	}
}
