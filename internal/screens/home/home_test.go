package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/identity"
	"github.com/abhisek/ababa/internal/router"
	quizscreen "github.com/abhisek/ababa/internal/screens/quiz"
)

func TestHomeMenu(t *testing.T) {
	h := New(nil, quizscreen.Deps{}, identity.NewStatic("Abebe Bikila", "am-ET"), nil)

	view := h.View(100, 30)
	assert.Contains(t, view, "Welcome, Abebe!")
	assert.Contains(t, view, "Tutor language: "+identity.NativeName("am-ET"))
	for _, label := range []string{"Browse", "Quiz Feed", "National Exam", "History", "Quit"} {
		assert.Contains(t, view, label)
	}
}

func TestHomeOpensScreens(t *testing.T) {
	h := New(nil, quizscreen.Deps{}, nil, nil)

	want := []string{"Browse", "Quiz Feed", "National Exam", "History"}
	for i, title := range want {
		h.menu.Selected = i
		_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
		require.NotNil(t, cmd)
		push, ok := cmd().(router.PushScreenMsg)
		require.True(t, ok)
		assert.Equal(t, title, push.Screen.Title())
	}
}

func TestHomeQuit(t *testing.T) {
	h := New(nil, quizscreen.Deps{}, nil, nil)
	h.menu.Selected = 4
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHomeDefaultLanguage(t *testing.T) {
	h := New(nil, quizscreen.Deps{}, nil, nil)
	assert.Contains(t, h.View(100, 30), "Tutor language: English")
}
