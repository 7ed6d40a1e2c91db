package history

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/router"
	"github.com/abhisek/ababa/internal/store"
)

type fakeSource struct {
	stats []store.QuizAnswerStats
	err   error
}

func (f fakeSource) AnswerStats(context.Context) ([]store.QuizAnswerStats, error) {
	return f.stats, f.err
}

func loaded(t *testing.T, src Source) *HistoryScreen {
	t.Helper()
	s := New(src)
	s.Update(s.Init()())
	require.True(t, s.loaded)
	return s
}

func TestHistoryListsStats(t *testing.T) {
	s := loaded(t, fakeSource{stats: []store.QuizAnswerStats{
		{QuizID: uuid.New(), Title: "National Exam - Biology", Sessions: 2, Answered: 8, Correct: 6},
		{QuizID: uuid.New(), Title: "Kinematics Basics", Sessions: 1, Answered: 2, Correct: 0},
	}})

	view := s.View(100, 30)
	assert.Contains(t, view, "National Exam - Biology")
	assert.Contains(t, view, "75% accuracy")
	assert.Contains(t, view, "Kinematics Basics")
	assert.NotContains(t, view, "answers correct")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(100, 30), "1 attempt, 0 of 2 answers correct")
}

func TestHistoryEmpty(t *testing.T) {
	s := loaded(t, fakeSource{})
	assert.Contains(t, s.View(100, 30), "No answers yet")

	s = loaded(t, nil)
	assert.Contains(t, s.View(100, 30), "No answers yet")
}

func TestHistoryError(t *testing.T) {
	s := loaded(t, fakeSource{err: errors.New("database is locked")})
	assert.Contains(t, s.View(100, 30), "database is locked")
}

func TestHistoryEscPops(t *testing.T) {
	s := loaded(t, fakeSource{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
