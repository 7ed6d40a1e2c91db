package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/tutor"
)

// quizLoadedMsg is sent when the loader returns. SessionID names the
// screen that asked for it.
type quizLoadedMsg struct {
	SessionID string
	Quiz      *content.QuizWithQuestions
	Err       error
}

// answerSavedMsg confirms an answer event was written.
type answerSavedMsg struct {
	Err error
}

// typingTickMsg animates the typing indicator.
type typingTickMsg time.Time

// EventMsg carries a dispatcher event into the update loop.
type EventMsg struct {
	Event tutor.Event
}

// Listen waits for the next dispatcher event. The host re-issues it after
// every EventMsg; it yields nil once the channel is closed.
func Listen(events <-chan tutor.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return EventMsg{Event: ev}
	}
}

func typingTick() tea.Cmd {
	return tea.Tick(350*time.Millisecond, func(t time.Time) tea.Msg {
		return typingTickMsg(t)
	})
}
