package browse

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/content"
	ctrl "github.com/abhisek/ababa/internal/quiz"
	"github.com/abhisek/ababa/internal/router"
	quizscreen "github.com/abhisek/ababa/internal/screens/quiz"
	"github.com/abhisek/ababa/internal/tutor"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(tutor.Request) {}

type fakeCatalogue struct {
	grade    content.Grade
	subject  content.Subject
	quiz     content.Quiz
	gradeErr error
}

func newFakeCatalogue() *fakeCatalogue {
	g := content.Grade{ID: uuid.New(), Name: "12"}
	s := content.Subject{ID: uuid.New(), Name: "Mathematics", GradeID: g.ID, Students: 1200, Rating: "4.8"}
	q := content.Quiz{ID: uuid.New(), Title: "Algebra II: Functions", Difficulty: content.DifficultyHard, QuestionsCount: 3, SubjectID: s.ID}
	return &fakeCatalogue{grade: g, subject: s, quiz: q}
}

func (f *fakeCatalogue) Grades(context.Context) ([]content.Grade, error) {
	if f.gradeErr != nil {
		return nil, f.gradeErr
	}
	return []content.Grade{f.grade}, nil
}

func (f *fakeCatalogue) Subjects(_ context.Context, id uuid.UUID) ([]content.Subject, error) {
	if id != f.grade.ID {
		return nil, nil
	}
	return []content.Subject{f.subject}, nil
}

func (f *fakeCatalogue) Quizzes(_ context.Context, id uuid.UUID) ([]content.Quiz, error) {
	if id != f.subject.ID {
		return nil, nil
	}
	return []content.Quiz{f.quiz}, nil
}

func (f *fakeCatalogue) Quiz(context.Context, uuid.UUID) (*content.QuizWithQuestions, error) {
	return &content.QuizWithQuestions{Quiz: f.quiz}, nil
}

func (f *fakeCatalogue) Feed(context.Context, string) (*content.QuizWithQuestions, error) {
	return nil, errors.New("not used")
}

func (f *fakeCatalogue) NationalExam(context.Context, string) (*content.QuizWithQuestions, error) {
	return nil, errors.New("not used")
}

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func esc() tea.KeyPressMsg   { return tea.KeyPressMsg{Code: tea.KeyEscape} }

// step sends msg and feeds the resulting command's message back in.
func step(t *testing.T, s *BrowseScreen, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := s.Update(msg)
	require.NotNil(t, cmd)
	return cmd()
}

func testBrowse(t *testing.T) (*BrowseScreen, *fakeCatalogue) {
	t.Helper()
	cat := newFakeCatalogue()
	deps := quizscreen.Deps{Controller: ctrl.NewController(nopDispatcher{}, nil, ctrl.Config{}, nil)}
	s := New(cat, deps)
	s.Update(s.Init()())
	return s, cat
}

func TestBrowseDrillDown(t *testing.T) {
	s, _ := testBrowse(t)
	assert.Equal(t, "Browse", s.Title())
	assert.Contains(t, s.View(100, 30), "Grade 12")

	s.Update(step(t, s, enter()))
	assert.Equal(t, stageSubjects, s.stage)
	assert.Equal(t, "Grade 12", s.Title())
	assert.Contains(t, s.View(100, 30), "Mathematics")
	assert.Contains(t, s.View(100, 30), "★ 4.8")

	s.Update(step(t, s, enter()))
	assert.Equal(t, stageQuizzes, s.stage)
	assert.Equal(t, "Mathematics", s.Title())
	assert.Contains(t, s.View(100, 30), "Hard · 3 questions")

	msg := step(t, s, enter())
	push, ok := msg.(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Algebra II: Functions", push.Screen.Title())
}

func TestBrowseBackSteps(t *testing.T) {
	s, _ := testBrowse(t)
	s.Update(step(t, s, enter()))
	s.Update(step(t, s, enter()))

	_, cmd := s.Update(esc())
	assert.Nil(t, cmd)
	assert.Equal(t, stageSubjects, s.stage)

	_, cmd = s.Update(esc())
	assert.Nil(t, cmd)
	assert.Equal(t, stageGrades, s.stage)

	_, cmd = s.Update(esc())
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestBrowseLoadError(t *testing.T) {
	cat := newFakeCatalogue()
	cat.gradeErr = errors.New("database is locked")
	s := New(cat, quizscreen.Deps{})
	s.Update(s.Init()())

	assert.Contains(t, s.View(100, 30), "database is locked")
	_, cmd := s.Update(enter())
	assert.Nil(t, cmd)
}

func TestBrowseEmptyCatalogue(t *testing.T) {
	s := New(&emptyCatalogue{}, quizscreen.Deps{})
	s.Update(s.Init()())
	assert.Contains(t, s.View(100, 30), "ababa seed")
}

type emptyCatalogue struct{ fakeCatalogue }

func (emptyCatalogue) Grades(context.Context) ([]content.Grade, error) { return nil, nil }
