package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/identity"
	"github.com/abhisek/ababa/internal/quiz"
	quizscreen "github.com/abhisek/ababa/internal/screens/quiz"
	"github.com/abhisek/ababa/internal/tutor"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(tutor.Request) {}

func testModel(events chan tutor.Event) AppModel {
	return newAppModel(Options{
		Controller: quiz.NewController(nopDispatcher{}, nil, quiz.Config{}, nil),
		Events:     events,
		User:       identity.NewStatic("Abebe Bikila", "am-ET"),
	})
}

func TestInitListensForEvents(t *testing.T) {
	events := make(chan tutor.Event, 1)
	m := testModel(events)

	cmd := m.Init()
	require.NotNil(t, cmd)
	events <- tutor.Event{Kind: tutor.EventComplete}
	assert.IsType(t, quizscreen.EventMsg{}, cmd())
}

func TestEventMsgRearmsListener(t *testing.T) {
	events := make(chan tutor.Event, 1)
	m := testModel(events)

	_, cmd := m.Update(quizscreen.EventMsg{Event: tutor.Event{Kind: tutor.EventChunk}})
	assert.NotNil(t, cmd)
}

func TestNoEventsNoListener(t *testing.T) {
	m := testModel(nil)
	assert.Nil(t, m.Init())
}

func TestCtrlCQuits(t *testing.T) {
	m := testModel(nil)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsUserAndHome(t *testing.T) {
	m := testModel(nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	frame := updated.(AppModel).render()
	assert.Contains(t, frame, "Abebe Bikila")
	assert.Contains(t, frame, "Home")
	assert.Contains(t, frame, "Browse")
}

func TestViewTooSmall(t *testing.T) {
	m := testModel(nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, updated.(AppModel).render(), "Terminal too small")
}

func TestRunRequiresController(t *testing.T) {
	assert.Error(t, Run(Options{}))
}
