// Package browse walks the catalogue from grades to subjects to quizzes.
package browse

import (
	"context"
	"fmt"

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

type stage int

const (
	stageGrades stage = iota
	stageSubjects
	stageQuizzes
)

type gradesLoadedMsg struct {
	Grades []content.Grade
	Err    error
}

type subjectsLoadedMsg struct {
	Grade    content.Grade
	Subjects []content.Subject
	Err      error
}

type quizzesLoadedMsg struct {
	Subject content.Subject
	Quizzes []content.Quiz
	Err     error
}

// BrowseScreen lists one level of the catalogue at a time.
type BrowseScreen struct {
	catalogue content.Lookup
	deps      quizscreen.Deps

	stage    stage
	grade    content.Grade
	subject  content.Subject
	grades   []content.Grade
	subjects []content.Subject
	quizzes  []content.Quiz

	menu    components.Menu
	loading bool
	errMsg  string
}

var _ screen.Screen = (*BrowseScreen)(nil)
var _ screen.KeyHintProvider = (*BrowseScreen)(nil)

// New creates a BrowseScreen.
func New(catalogue content.Lookup, deps quizscreen.Deps) *BrowseScreen {
	return &BrowseScreen{catalogue: catalogue, deps: deps, loading: true}
}

func (s *BrowseScreen) Init() tea.Cmd {
	catalogue := s.catalogue
	return func() tea.Msg {
		grades, err := catalogue.Grades(context.Background())
		return gradesLoadedMsg{Grades: grades, Err: err}
	}
}

func (s *BrowseScreen) Title() string {
	switch s.stage {
	case stageSubjects:
		return "Grade " + s.grade.Name
	case stageQuizzes:
		return s.subject.Name
	default:
		return "Browse"
	}
}

func (s *BrowseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case gradesLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.grades = msg.Grades
		s.showGrades()
		return s, nil

	case subjectsLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.grade = msg.Grade
		s.subjects = msg.Subjects
		s.showSubjects()
		return s, nil

	case quizzesLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.subject = msg.Subject
		s.quizzes = msg.Quizzes
		s.showQuizzes()
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			return s, s.back()
		}
		if s.loading || s.errMsg != "" {
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// back steps up one level, popping the screen from the grade list.
func (s *BrowseScreen) back() tea.Cmd {
	s.errMsg = ""
	s.loading = false
	switch s.stage {
	case stageQuizzes:
		s.showSubjects()
		return nil
	case stageSubjects:
		s.showGrades()
		return nil
	default:
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
}

func (s *BrowseScreen) showGrades() {
	s.stage = stageGrades
	items := make([]components.MenuItem, len(s.grades))
	for i, g := range s.grades {
		items[i] = components.MenuItem{
			Label:  "Grade " + g.Name,
			Action: func() tea.Cmd { return s.loadSubjects(g) },
		}
	}
	s.menu = components.NewMenu(items)
}

func (s *BrowseScreen) showSubjects() {
	s.stage = stageSubjects
	items := make([]components.MenuItem, len(s.subjects))
	for i, sub := range s.subjects {
		items[i] = components.MenuItem{
			Label:  sub.Name,
			Detail: subjectDetail(sub),
			Action: func() tea.Cmd { return s.loadQuizzes(sub) },
		}
	}
	s.menu = components.NewMenu(items)
}

func (s *BrowseScreen) showQuizzes() {
	s.stage = stageQuizzes
	items := make([]components.MenuItem, len(s.quizzes))
	for i, q := range s.quizzes {
		items[i] = components.MenuItem{
			Label:  q.Title,
			Detail: fmt.Sprintf("%s · %d questions", q.Difficulty, q.QuestionsCount),
			Action: func() tea.Cmd { return s.openQuiz(q) },
		}
	}
	s.menu = components.NewMenu(items)
}

func (s *BrowseScreen) loadSubjects(g content.Grade) tea.Cmd {
	s.loading = true
	catalogue := s.catalogue
	return func() tea.Msg {
		subjects, err := catalogue.Subjects(context.Background(), g.ID)
		return subjectsLoadedMsg{Grade: g, Subjects: subjects, Err: err}
	}
}

func (s *BrowseScreen) loadQuizzes(sub content.Subject) tea.Cmd {
	s.loading = true
	catalogue := s.catalogue
	return func() tea.Msg {
		quizzes, err := catalogue.Quizzes(context.Background(), sub.ID)
		return quizzesLoadedMsg{Subject: sub, Quizzes: quizzes, Err: err}
	}
}

func (s *BrowseScreen) openQuiz(q content.Quiz) tea.Cmd {
	catalogue := s.catalogue
	load := func(ctx context.Context) (*content.QuizWithQuestions, error) {
		return catalogue.Quiz(ctx, q.ID)
	}
	next := quizscreen.New(q.Title, load, s.deps)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func subjectDetail(sub content.Subject) string {
	d := fmt.Sprintf("%d students", sub.Students)
	if sub.Rating != "" {
		d += " · ★ " + sub.Rating
	}
	return d
}

func (s *BrowseScreen) View(width, height int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return style.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case s.loading:
		return style.Foreground(theme.TextDim).Render("\n\n  Loading...")
	case len(s.menu.Items) == 0:
		return style.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing here yet. Run `ababa seed` to load the catalogue.")
	}

	heading := "Choose your grade"
	switch s.stage {
	case stageSubjects:
		heading = "Choose a subject"
	case stageQuizzes:
		heading = "Choose a quiz"
	}

	body := theme.Subtitle.Render(heading) + "\n\n" + s.menu.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+body)
}
