// Package picker chooses a subject for the quiz feed or a national exam.
package picker

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/router"
	"github.com/abhisek/ababa/internal/screen"
	quizscreen "github.com/abhisek/ababa/internal/screens/quiz"
	"github.com/abhisek/ababa/internal/ui/components"
	"github.com/abhisek/ababa/internal/ui/layout"
	"github.com/abhisek/ababa/internal/ui/theme"
)

// Mode selects what the chosen subject opens.
type Mode int

const (
	ModeFeed Mode = iota
	ModeExam
)

// PickerScreen lists the subject slugs.
type PickerScreen struct {
	mode Mode
	menu components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// New creates a picker. In feed mode an extra "Mixed" entry serves the
// national exam fallback feed.
func New(mode Mode, catalogue content.Lookup, deps quizscreen.Deps) *PickerScreen {
	open := func(title string, load quizscreen.Loader) func() tea.Cmd {
		return func() tea.Cmd {
			next := quizscreen.New(title, load, deps)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	var items []components.MenuItem
	for _, slug := range content.SubjectSlugs() {
		name, _ := content.SubjectForSlug(slug)
		switch mode {
		case ModeExam:
			items = append(items, components.MenuItem{
				Label: name,
				Action: open(content.NationalExamTitle(name), func(ctx context.Context) (*content.QuizWithQuestions, error) {
					return catalogue.NationalExam(ctx, slug)
				}),
			})
		default:
			items = append(items, components.MenuItem{
				Label: name,
				Action: open(content.FeedTitle, func(ctx context.Context) (*content.QuizWithQuestions, error) {
					return catalogue.Feed(ctx, slug)
				}),
			})
		}
	}
	if mode == ModeFeed {
		items = append(items, components.MenuItem{
			Label:  "Mixed",
			Detail: "national exam questions from every subject",
			Action: open(content.FeedTitle, func(ctx context.Context) (*content.QuizWithQuestions, error) {
				return catalogue.Feed(ctx, "")
			}),
		})
	}

	return &PickerScreen{mode: mode, menu: components.NewMenu(items)}
}

func (s *PickerScreen) Init() tea.Cmd {
	return nil
}

func (s *PickerScreen) Title() string {
	if s.mode == ModeExam {
		return "National Exam"
	}
	return "Quiz Feed"
}

func (s *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *PickerScreen) View(width, height int) string {
	body := theme.Subtitle.Render("Choose a subject") + "\n\n" + s.menu.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+body)
}
