package picker

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/router"
	quizscreen "github.com/abhisek/ababa/internal/screens/quiz"
)

type recordingCatalogue struct {
	feed []string
	exam []string
}

func (r *recordingCatalogue) Grades(context.Context) ([]content.Grade, error) { return nil, nil }
func (r *recordingCatalogue) Subjects(context.Context, uuid.UUID) ([]content.Subject, error) {
	return nil, nil
}
func (r *recordingCatalogue) Quizzes(context.Context, uuid.UUID) ([]content.Quiz, error) {
	return nil, nil
}
func (r *recordingCatalogue) Quiz(context.Context, uuid.UUID) (*content.QuizWithQuestions, error) {
	return nil, nil
}
func (r *recordingCatalogue) Feed(_ context.Context, slug string) (*content.QuizWithQuestions, error) {
	r.feed = append(r.feed, slug)
	return &content.QuizWithQuestions{}, nil
}
func (r *recordingCatalogue) NationalExam(_ context.Context, slug string) (*content.QuizWithQuestions, error) {
	r.exam = append(r.exam, slug)
	return &content.QuizWithQuestions{}, nil
}

func choose(t *testing.T, s *PickerScreen, downs int) router.PushScreenMsg {
	t.Helper()
	for i := 0; i < downs; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	return push
}

func TestExamPickerLoadsNationalExam(t *testing.T) {
	cat := &recordingCatalogue{}
	s := New(ModeExam, cat, quizscreen.Deps{})
	assert.Equal(t, "National Exam", s.Title())
	assert.Len(t, s.menu.Items, len(content.SubjectSlugs()))

	push := choose(t, s, 0)
	assert.Equal(t, "National Exam - Biology", push.Screen.Title())

	push.Screen.Init()()
	assert.Equal(t, []string{"biology"}, cat.exam)
}

func TestFeedPickerOffersMixedFeed(t *testing.T) {
	cat := &recordingCatalogue{}
	s := New(ModeFeed, cat, quizscreen.Deps{})
	assert.Equal(t, "Quiz Feed", s.Title())
	require.Len(t, s.menu.Items, len(content.SubjectSlugs())+1)

	push := choose(t, s, len(s.menu.Items)-1)
	assert.Equal(t, content.FeedTitle, push.Screen.Title())
	push.Screen.Init()()
	assert.Equal(t, []string{""}, cat.feed)
}

func TestPickerEscPops(t *testing.T) {
	s := New(ModeFeed, &recordingCatalogue{}, quizscreen.Deps{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
