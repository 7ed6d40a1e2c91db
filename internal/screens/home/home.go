package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/identity"
	"github.com/abhisek/ababa/internal/router"
	"github.com/abhisek/ababa/internal/screen"
	"github.com/abhisek/ababa/internal/screens/browse"
	"github.com/abhisek/ababa/internal/screens/history"
	"github.com/abhisek/ababa/internal/screens/picker"
	quizscreen "github.com/abhisek/ababa/internal/screens/quiz"
	"github.com/abhisek/ababa/internal/ui/components"
	"github.com/abhisek/ababa/internal/ui/layout"
	"github.com/abhisek/ababa/internal/ui/theme"
)

const banner = ` ▄▀█ █▄▄ ▄▀█ █▄▄ ▄▀█
 █▀█ █▄█ █▀█ █▄█ █▀█`

// HomeScreen is the main menu.
type HomeScreen struct {
	menu     components.Menu
	greeting string
	language string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. user and stats may be nil.
func New(catalogue content.Lookup, deps quizscreen.Deps, user identity.Provider, stats history.Source) *HomeScreen {
	push := func(next func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := next()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "Browse", Detail: "grades, subjects and quizzes", Action: push(func() screen.Screen {
			return browse.New(catalogue, deps)
		})},
		{Label: "Quiz Feed", Detail: "a quick mix from one subject", Action: push(func() screen.Screen {
			return picker.New(picker.ModeFeed, catalogue, deps)
		})},
		{Label: "National Exam", Detail: "past national exam questions", Action: push(func() screen.Screen {
			return picker.New(picker.ModeExam, catalogue, deps)
		})},
		{Label: "History", Detail: "accuracy per quiz", Action: push(func() screen.Screen {
			return history.New(stats)
		})},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	greeting := "Welcome!"
	language := identity.NativeName(identity.DefaultLocale)
	if user != nil {
		u := user.Current()
		if name := u.FirstName(); name != "" {
			greeting = "Welcome, " + name + "!"
		}
		language = identity.NativeName(u.Locale)
	}

	return &HomeScreen{
		menu:     components.NewMenu(items),
		greeting: greeting,
		language: language,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sections := []string{
		theme.Title.Render(banner),
		theme.Subtitle.Render(h.greeting + " Practice for your exams with an AI tutor at your side."),
		theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")),
		theme.Hint.Render("Tutor language: " + h.language),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
