package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/identity"
	ctrl "github.com/abhisek/ababa/internal/quiz"
	"github.com/abhisek/ababa/internal/router"
	"github.com/abhisek/ababa/internal/screens/summary"
	"github.com/abhisek/ababa/internal/store"
	"github.com/abhisek/ababa/internal/tutor"
)

type recordingDispatcher struct {
	requests []tutor.Request
}

func (d *recordingDispatcher) Dispatch(req tutor.Request) {
	d.requests = append(d.requests, req)
}

type mockAnswers struct {
	events []store.AnswerEventData
}

func (m *mockAnswers) AppendAnswer(_ context.Context, data store.AnswerEventData) error {
	m.events = append(m.events, data)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuiz() *content.QuizWithQuestions {
	mk := func(text string, correct int) content.Question {
		return content.Question{
			ID:           uuid.New(),
			Text:         text,
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: correct,
			Explanation:  "Because.",
		}
	}
	return &content.QuizWithQuestions{
		Quiz: content.Quiz{
			ID:         uuid.New(),
			Title:      "Algebra II: Functions",
			Difficulty: content.DifficultyHard,
		},
		SubjectName: "Mathematics",
		Questions:   []content.Question{mk("First?", 1), mk("Second?", 0), mk("Third?", 2)},
	}
}

func testScreen(t *testing.T) (*QuizScreen, *recordingDispatcher, *mockAnswers) {
	t.Helper()
	d := &recordingDispatcher{}
	answers := &mockAnswers{}
	c := ctrl.NewController(d, identity.NewStatic("Abebe Bikila", "am-ET"), ctrl.Config{}, nil)
	q := testQuiz()
	s := New("Quiz", func(context.Context) (*content.QuizWithQuestions, error) { return q, nil }, Deps{
		Controller: c,
		Answers:    answers,
	})
	s.Update(s.Init()())
	require.True(t, s.loaded)
	return s, d, answers
}

// press feeds a key and runs any resulting command that is not a tick.
func press(s *QuizScreen, msg tea.KeyPressMsg) tea.Cmd {
	_, cmd := s.Update(msg)
	return cmd
}

func deliver(s *QuizScreen, kind tutor.EventKind, text string, err error) {
	snap, _ := s.ctrl.Conversation()
	s.Update(EventMsg{Event: tutor.Event{Key: snap.Key, Kind: kind, Text: text, Err: err}})
}

func TestQuizScreen_Title(t *testing.T) {
	s, _, _ := testScreen(t)
	assert.Equal(t, "Algebra II: Functions", s.Title())
}

func TestQuizScreen_LoadErrors(t *testing.T) {
	c := ctrl.NewController(&recordingDispatcher{}, nil, ctrl.Config{}, nil)

	s := New("Quiz", func(context.Context) (*content.QuizWithQuestions, error) {
		return nil, store.ErrNotFound
	}, Deps{Controller: c})
	s.Update(s.Init()())
	assert.False(t, s.loaded)
	assert.Contains(t, s.View(80, 24), "Quiz not found")

	cmd := press(s, keyPress('x'))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	empty := New("Quiz", func(context.Context) (*content.QuizWithQuestions, error) {
		return &content.QuizWithQuestions{}, nil
	}, Deps{Controller: c})
	empty.Update(empty.Init()())
	assert.Contains(t, empty.View(80, 24), "No questions found")
}

func TestQuizScreen_AnswerWithNumberKey(t *testing.T) {
	s, _, answers := testScreen(t)

	cmd := press(s, keyPress('2'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.True(t, s.ctrl.IsAnswered(0))
	assert.True(t, s.choice.IsCorrect())
	require.Len(t, answers.events, 1)
	ev := answers.events[0]
	assert.Equal(t, 0, ev.Position)
	assert.Equal(t, 1, ev.OptionIndex)
	assert.True(t, ev.Correct)
	assert.Equal(t, s.sessionID, ev.SessionID)
	assert.Contains(t, s.View(100, 30), "Correct!")
}

func TestQuizScreen_AnswerWithEnter(t *testing.T) {
	s, _, answers := testScreen(t)

	press(s, specialKey(tea.KeyDown))
	press(s, specialKey(tea.KeyDown))
	cmd := press(s, specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	s.Update(cmd())

	opt, ok := s.ctrl.Answer(0)
	require.True(t, ok)
	assert.Equal(t, 2, opt)
	assert.False(t, answers.events[0].Correct)
	assert.Contains(t, s.View(100, 30), "The answer is B")
}

func TestQuizScreen_OutOfRangeDigitIgnored(t *testing.T) {
	s, _, answers := testScreen(t)
	press(s, keyPress('9'))
	assert.False(t, s.ctrl.IsAnswered(0))
	assert.Empty(t, answers.events)
}

func TestQuizScreen_AnsweredQuestionIsLocked(t *testing.T) {
	s, _, answers := testScreen(t)

	cmd := press(s, keyPress('1'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Nil(t, press(s, keyPress('2')))

	opt, ok := s.ctrl.Answer(0)
	require.True(t, ok)
	assert.Equal(t, 0, opt)
	assert.False(t, s.ctrl.IsCorrect(0))
	assert.Len(t, answers.events, 1)
	assert.Contains(t, s.notice, "already answered")
}

func TestQuizScreen_IgnoresLoadFromOtherScreen(t *testing.T) {
	s, _, _ := testScreen(t)

	other := testQuiz()
	other.Title = "Stale"
	s.Update(quizLoadedMsg{SessionID: uuid.NewString(), Quiz: other})

	assert.Equal(t, "Algebra II: Functions", s.Title())
}

func TestQuizScreen_Navigation(t *testing.T) {
	s, _, _ := testScreen(t)

	press(s, specialKey(tea.KeyRight))
	assert.Equal(t, 1, s.ctrl.CurrentPosition())
	assert.Equal(t, "Second?", s.choice.Question)

	press(s, keyPress('n'))
	press(s, keyPress('n'))
	assert.Equal(t, 2, s.ctrl.CurrentPosition(), "next stops at the last question")

	press(s, keyPress('p'))
	press(s, specialKey(tea.KeyLeft))
	press(s, specialKey(tea.KeyLeft))
	assert.Equal(t, 0, s.ctrl.CurrentPosition())
}

func TestQuizScreen_AnswerSurvivesNavigation(t *testing.T) {
	s, _, _ := testScreen(t)
	press(s, keyPress('3'))
	press(s, keyPress('n'))
	press(s, keyPress('p'))

	assert.Equal(t, 2, s.choice.Chosen)
	assert.InDelta(t, 1.0/3.0, s.ctrl.CompletionRatio(), 1e-9)
}

func TestQuizScreen_ExplainNeedsAnswer(t *testing.T) {
	s, d, _ := testScreen(t)

	press(s, keyPress('e'))
	assert.False(t, s.ctrl.ExplanationOpen())
	assert.Empty(t, d.requests)
	assert.Contains(t, s.notice, "Answer the question first")
}

func TestQuizScreen_ExplanationFlow(t *testing.T) {
	s, d, _ := testScreen(t)
	press(s, keyPress('2'))

	cmd := press(s, keyPress('e'))
	assert.NotNil(t, cmd, "typing indicator starts")
	require.True(t, s.ctrl.ExplanationOpen())
	require.Len(t, d.requests, 1)
	assert.Equal(t, "am-ET", d.requests[0].Locale)
	assert.Contains(t, s.View(100, 30), "Tutor is typing")

	deliver(s, tutor.EventChunk, "g(2) is 4, ", nil)
	deliver(s, tutor.EventChunk, "so f(4) = 11.", nil)
	deliver(s, tutor.EventComplete, "", nil)

	snap, _ := s.ctrl.Conversation()
	require.Equal(t, tutor.Ready, snap.State)
	assert.Equal(t, "g(2) is 4, so f(4) = 11.", snap.Turns[1].Text)
	assert.True(t, s.input.Focused())
	assert.Contains(t, s.View(100, 30), "so f(4) = 11.")

	for _, r := range "why?" {
		press(s, keyPress(r))
	}
	press(s, specialKey(tea.KeyEnter))
	require.Len(t, d.requests, 2)
	last := d.requests[1].Turns
	assert.Equal(t, "why?", last[len(last)-1].Text)
	assert.Empty(t, s.input.Value())
}

func TestQuizScreen_FollowUpWhileBusy(t *testing.T) {
	s, d, _ := testScreen(t)
	press(s, keyPress('2'))
	press(s, keyPress('e'))

	// Typing is blocked while the reply is outstanding, so force a value.
	s.input.Model.SetValue("hello")
	press(s, specialKey(tea.KeyEnter))

	assert.Len(t, d.requests, 1)
	assert.Contains(t, s.notice, "still answering")
}

func TestQuizScreen_RetryAfterFailure(t *testing.T) {
	s, d, _ := testScreen(t)
	press(s, keyPress('2'))
	press(s, keyPress('e'))

	deliver(s, tutor.EventChunk, "partial", nil)
	deliver(s, tutor.EventError, "", errors.New("connection reset"))

	snap, _ := s.ctrl.Conversation()
	require.Equal(t, tutor.Failed, snap.State)
	view := s.View(100, 30)
	assert.Contains(t, view, "connection reset")
	assert.Contains(t, view, "Press r to try again")

	press(s, keyPress('x'))
	assert.Len(t, d.requests, 1, "only r retries")

	press(s, keyPress('r'))
	require.Len(t, d.requests, 2)
	snap, _ = s.ctrl.Conversation()
	assert.Equal(t, tutor.Requesting, snap.State)
	assert.Len(t, snap.Turns, 1, "partial reply dropped on retry")
}

func TestQuizScreen_CloseDropsLateEvents(t *testing.T) {
	s, _, _ := testScreen(t)
	press(s, keyPress('2'))
	press(s, keyPress('e'))
	old, _ := s.ctrl.Conversation()

	press(s, specialKey(tea.KeyEscape))
	assert.False(t, s.ctrl.ExplanationOpen())

	press(s, keyPress('e'))
	s.Update(EventMsg{Event: tutor.Event{Key: old.Key, Kind: tutor.EventChunk, Text: "stale"}})

	snap, _ := s.ctrl.Conversation()
	assert.NotEqual(t, old.Key, snap.Key)
	assert.Equal(t, tutor.Requesting, snap.State)
	assert.Len(t, snap.Turns, 1)
}

func TestQuizScreen_EscPopsWhenPanelClosed(t *testing.T) {
	s, _, _ := testScreen(t)
	cmd := press(s, specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestQuizScreen_CloseTerminatesConversation(t *testing.T) {
	s, _, _ := testScreen(t)
	press(s, keyPress('1'))
	press(s, keyPress('e'))
	gen := s.ctrl.Generation()

	s.Close()

	assert.False(t, s.ctrl.ExplanationOpen())
	assert.Equal(t, gen+1, s.ctrl.Generation())
}

func TestQuizScreen_TypingTickStopsWhenReady(t *testing.T) {
	s, _, _ := testScreen(t)
	press(s, keyPress('1'))
	press(s, keyPress('e'))

	_, cmd := s.Update(typingTickMsg{})
	assert.NotNil(t, cmd)

	deliver(s, tutor.EventComplete, "", nil)
	_, cmd = s.Update(typingTickMsg{})
	assert.Nil(t, cmd)
	assert.False(t, s.ticking)
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s, _, _ := testScreen(t)
	joined := func() string {
		var parts []string
		for _, h := range s.KeyHints() {
			parts = append(parts, h.Description)
		}
		return strings.Join(parts, ",")
	}
	assert.NotContains(t, joined(), "Explain")
	press(s, keyPress('1'))
	assert.Contains(t, joined(), "Explain")
	press(s, keyPress('e'))
	assert.Contains(t, joined(), "Close tutor")
}

func TestQuizScreen_Results(t *testing.T) {
	s, _, _ := testScreen(t)

	assert.Nil(t, press(s, keyPress('f')))
	assert.Contains(t, s.notice, "at least one question")

	press(s, keyPress('2')) // correct
	press(s, specialKey(tea.KeyRight))
	press(s, keyPress('4')) // wrong
	press(s, specialKey(tea.KeyRight))
	press(s, keyPress('3')) // correct
	assert.Contains(t, s.notice, "All questions answered")

	cmd := press(s, keyPress('f'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	results, ok := push.Screen.(*summary.SummaryScreen)
	require.True(t, ok)

	view := results.View(100, 30)
	assert.Contains(t, view, "Quiz complete!")
	assert.Contains(t, view, "Correct: 2")
}

func TestListen(t *testing.T) {
	assert.Nil(t, Listen(nil))

	events := make(chan tutor.Event, 1)
	events <- tutor.Event{Kind: tutor.EventComplete}
	msg := Listen(events)()
	require.IsType(t, EventMsg{}, msg)
	assert.Equal(t, tutor.EventComplete, msg.(EventMsg).Event.Kind)

	close(events)
	assert.Nil(t, Listen(events)())
}
