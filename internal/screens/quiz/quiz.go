// Package quiz is the screen a learner answers questions on. It hosts a
// quiz.Controller and renders its explanation conversation.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/ababa/internal/content"
	ctrl "github.com/abhisek/ababa/internal/quiz"
	"github.com/abhisek/ababa/internal/router"
	"github.com/abhisek/ababa/internal/screen"
	"github.com/abhisek/ababa/internal/screens/summary"
	"github.com/abhisek/ababa/internal/store"
	"github.com/abhisek/ababa/internal/tutor"
	"github.com/abhisek/ababa/internal/ui/components"
	"github.com/abhisek/ababa/internal/ui/layout"
)

// Loader fetches the quiz to show.
type Loader func(ctx context.Context) (*content.QuizWithQuestions, error)

// AnswerRecorder persists submitted answers. store.EventRepo satisfies it.
type AnswerRecorder interface {
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
}

// Deps are shared by every quiz screen of one program. Controller is
// reused across screens so its generation counter never repeats.
type Deps struct {
	Controller *ctrl.Controller
	Answers    AnswerRecorder // optional
	Logger     *zap.Logger
}

// QuizScreen implements screen.Screen for one quiz.
type QuizScreen struct {
	title     string
	load      Loader
	ctrl      *ctrl.Controller
	answers   AnswerRecorder
	logger    *zap.Logger
	sessionID string

	loaded  bool
	errMsg  string
	notice  string
	choice  components.MultiChoice
	input   components.TextInput
	dots    int
	ticking bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Closer = (*QuizScreen)(nil)

// New creates a quiz screen that shows whatever load returns.
func New(title string, load Loader, deps Deps) *QuizScreen {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	input := components.NewTextInput("Ask a follow-up question...", 500)
	input.Blur()
	return &QuizScreen{
		title:     title,
		load:      load,
		ctrl:      deps.Controller,
		answers:   deps.Answers,
		logger:    logger,
		sessionID: uuid.New().String(),
		input:     input,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	load, id := s.load, s.sessionID
	return func() tea.Msg {
		q, err := load(context.Background())
		return quizLoadedMsg{SessionID: id, Quiz: q, Err: err}
	}
}

func (s *QuizScreen) Title() string {
	if s.loaded && s.ctrl.Quiz() != nil {
		return s.ctrl.Quiz().Title
	}
	return s.title
}

// Close drops the explanation so late stream events are discarded.
func (s *QuizScreen) Close() {
	if s.loaded {
		s.ctrl.CloseExplanation()
	}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if !s.loaded {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if s.ctrl.ExplanationOpen() {
		snap, _ := s.ctrl.Conversation()
		hints := []layout.KeyHint{}
		switch snap.State {
		case tutor.Failed:
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
		case tutor.Ready:
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Ask"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Close tutor"})
	}
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Prev/Next"},
		{Key: "1-9", Description: "Answer"},
	}
	if s.ctrl.IsAnswered(s.ctrl.CurrentPosition()) {
		hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
	}
	if s.ctrl.AnsweredCount() > 0 {
		hints = append(hints, layout.KeyHint{Key: "F", Description: "Results"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		return s.handleLoaded(msg)

	case EventMsg:
		return s.handleEvent(msg.Event)

	case typingTickMsg:
		return s.handleTypingTick()

	case answerSavedMsg:
		if msg.Err != nil {
			s.logger.Warn("failed to record answer", zap.Error(msg.Err))
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.loaded && s.ctrl.ExplanationOpen() && s.input.Focused() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	// A screen popped while loading can still deliver its result.
	if msg.SessionID != s.sessionID || s.loaded {
		return s, nil
	}
	switch {
	case errors.Is(msg.Err, store.ErrNotFound):
		s.errMsg = "Quiz not found."
		return s, nil
	case msg.Err != nil:
		s.errMsg = msg.Err.Error()
		return s, nil
	case msg.Quiz.Len() == 0:
		s.errMsg = "No questions found for this quiz."
		return s, nil
	}

	if err := s.ctrl.LoadQuiz(msg.Quiz); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.loaded = true
	s.syncChoice()
	return s, nil
}

func (s *QuizScreen) handleEvent(ev tutor.Event) (screen.Screen, tea.Cmd) {
	if !s.loaded || !s.ctrl.Deliver(ev) {
		return s, nil
	}
	snap, _ := s.ctrl.Conversation()
	switch snap.State {
	case tutor.Ready:
		return s, s.input.Focus()
	case tutor.Failed:
		s.input.Blur()
	}
	return s, nil
}

func (s *QuizScreen) handleTypingTick() (screen.Screen, tea.Cmd) {
	snap, ok := s.ctrl.Conversation()
	if !ok || !snap.State.Pending() {
		s.ticking = false
		return s, nil
	}
	s.dots = (s.dots + 1) % 4
	return s, typingTick()
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if !s.loaded {
		if key == "esc" || s.errMsg != "" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.ctrl.ExplanationOpen() {
		return s.handlePanelKey(msg)
	}

	s.notice = ""
	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "left", "p":
		if s.ctrl.Prev() {
			s.syncChoice()
		}
		return s, nil
	case "right", "n":
		if s.ctrl.Next() {
			s.syncChoice()
		}
		return s, nil
	case "enter":
		return s.submit(s.choice.Cursor)
	case "e":
		return s.openExplanation()
	case "f":
		return s.finish()
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(s.choice.Options) {
			s.choice.Cursor = idx
			return s.submit(idx)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return s, cmd
}

func (s *QuizScreen) handlePanelKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	snap, _ := s.ctrl.Conversation()
	key := msg.String()

	switch {
	case key == "esc":
		s.ctrl.CloseExplanation()
		s.input.Blur()
		s.input.Reset()
		s.notice = ""
		return s, nil

	case snap.State == tutor.Failed:
		if key != "r" {
			return s, nil
		}
		if err := s.ctrl.RetryExplanation(); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		s.notice = ""
		return s, s.startTyping()

	case key == "enter":
		text := s.input.Value()
		if text == "" {
			return s, nil
		}
		switch err := s.ctrl.SendFollowUp(text); {
		case errors.Is(err, tutor.ErrBusy):
			s.notice = "The tutor is still answering. Wait for the reply first."
			return s, nil
		case err != nil:
			s.notice = err.Error()
			return s, nil
		}
		s.notice = ""
		s.input.Reset()
		return s, s.startTyping()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) submit(optionIndex int) (screen.Screen, tea.Cmd) {
	pos := s.ctrl.CurrentPosition()
	q, _ := s.ctrl.CurrentQuestion()
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return s, nil
	}
	// The ledger accepts overwrites; the screen locks a question once
	// feedback has been shown.
	if s.ctrl.IsAnswered(pos) {
		s.notice = "You already answered this question."
		return s, nil
	}

	correct, err := s.ctrl.SubmitAnswer(pos, optionIndex)
	if errors.Is(err, ctrl.ErrAlreadyAnswered) {
		s.notice = "You already answered this question."
		return s, nil
	}
	if err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.choice.Chosen = optionIndex
	if s.ctrl.AnsweredCount() == s.ctrl.QuestionCount() {
		s.notice = "All questions answered. Press f to see your results."
	}

	return s, s.recordAnswer(store.AnswerEventData{
		SessionID:    s.sessionID,
		QuizID:       s.ctrl.Quiz().ID,
		QuestionID:   q.ID,
		Position:     pos,
		OptionIndex:  optionIndex,
		CorrectIndex: q.CorrectIndex,
		Correct:      correct,
	})
}

// finish shows the results so far. The quiz stays underneath for review.
func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	if s.ctrl.AnsweredCount() == 0 {
		s.notice = "Answer at least one question to see results."
		return s, nil
	}
	quiz := s.ctrl.Quiz()
	result := summary.Result{Title: quiz.Title, Items: make([]summary.Item, quiz.Len())}
	for i, q := range quiz.Questions {
		item := summary.Item{Text: q.Text, Answer: q.CorrectOption()}
		if opt, ok := s.ctrl.Answer(i); ok {
			item.Answered = true
			item.Correct = s.ctrl.IsCorrect(i)
			if opt >= 0 && opt < len(q.Options) {
				item.Chosen = q.Options[opt]
			}
		}
		result.Items[i] = item
	}
	next := summary.New(result)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *QuizScreen) openExplanation() (screen.Screen, tea.Cmd) {
	pos := s.ctrl.CurrentPosition()
	if !s.ctrl.IsAnswered(pos) {
		s.notice = "Answer the question first, then ask for an explanation."
		return s, nil
	}
	if _, err := s.ctrl.OpenExplanationFor(pos); err != nil {
		s.notice = err.Error()
		return s, nil
	}
	s.input.Reset()
	s.input.Blur()
	started, err := s.ctrl.StartExplanation()
	if err != nil || !started {
		return s, nil
	}
	return s, s.startTyping()
}

func (s *QuizScreen) startTyping() tea.Cmd {
	s.input.Blur()
	if s.ticking {
		return nil
	}
	s.ticking = true
	s.dots = 0
	return typingTick()
}

func (s *QuizScreen) recordAnswer(data store.AnswerEventData) tea.Cmd {
	if s.answers == nil {
		return nil
	}
	answers := s.answers
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return answerSavedMsg{Err: answers.AppendAnswer(ctx, data)}
	}
}

// syncChoice rebuilds the option list for the current position.
func (s *QuizScreen) syncChoice() {
	q, ok := s.ctrl.CurrentQuestion()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Text, q.Options, q.CorrectIndex)
	if ans, ok := s.ctrl.Answer(s.ctrl.CurrentPosition()); ok {
		s.choice.Chosen = ans
		s.choice.Cursor = ans
	}
}

func (s *QuizScreen) positionLabel() string {
	return fmt.Sprintf("Question %d of %d", s.ctrl.CurrentPosition()+1, s.ctrl.QuestionCount())
}
