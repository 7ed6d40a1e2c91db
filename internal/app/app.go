package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/identity"
	"github.com/abhisek/ababa/internal/quiz"
	"github.com/abhisek/ababa/internal/router"
	"github.com/abhisek/ababa/internal/screen"
	"github.com/abhisek/ababa/internal/screens/history"
	"github.com/abhisek/ababa/internal/screens/home"
	quizscreen "github.com/abhisek/ababa/internal/screens/quiz"
	"github.com/abhisek/ababa/internal/tutor"
	"github.com/abhisek/ababa/internal/ui/layout"
)

// Options holds the dependencies the TUI is built from.
type Options struct {
	Catalogue  content.Lookup
	Answers    quizscreen.AnswerRecorder // optional
	History    history.Source            // optional
	Controller *quiz.Controller
	Events     <-chan tutor.Event
	User       identity.Provider
	Logger     *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	events <-chan tutor.Event
	user   string
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	deps := quizscreen.Deps{
		Controller: opts.Controller,
		Answers:    opts.Answers,
		Logger:     opts.Logger,
	}
	var user string
	if opts.User != nil {
		user = opts.User.Current().DisplayName
	}
	return AppModel{
		router: router.New(home.New(opts.Catalogue, deps, opts.User, opts.History)),
		events: opts.Events,
		user:   user,
	}
}

// Init starts the tutor event listener.
func (m AppModel) Init() tea.Cmd {
	return quizscreen.Listen(m.events)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case quizscreen.EventMsg:
		// Re-arm the listener for the next event.
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, quizscreen.Listen(m.events))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.user, m.width)
	footer := layout.RenderFooter(m.keyHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) keyHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("app: a quiz controller is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
