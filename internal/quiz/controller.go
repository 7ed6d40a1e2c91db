// Package quiz holds the quiz session controller: the state a learner
// builds up while working through one quiz, and the explanation chat
// attached to it.
package quiz

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/identity"
	"github.com/abhisek/ababa/internal/tutor"
)

// AnswerPolicy decides what happens when an answered position is
// submitted again.
type AnswerPolicy int

const (
	// AllowOverwrite records the new answer (last write wins).
	AllowOverwrite AnswerPolicy = iota

	// RejectResubmission keeps the first answer and returns
	// ErrAlreadyAnswered.
	RejectResubmission
)

// ParseAnswerPolicy maps "overwrite" and "reject" to a policy.
func ParseAnswerPolicy(s string) (AnswerPolicy, error) {
	switch s {
	case "", "overwrite":
		return AllowOverwrite, nil
	case "reject":
		return RejectResubmission, nil
	default:
		return AllowOverwrite, fmt.Errorf("unknown answer policy %q", s)
	}
}

// Surface is the state of the explanation panel.
type Surface int

const (
	SurfaceClosed Surface = iota
	SurfaceOpen
)

// Config holds controller settings.
type Config struct {
	AnswerPolicy AnswerPolicy
}

// Controller owns the progress through one quiz: the current position, the
// answer ledger and at most one live explanation conversation. It must be
// driven from a single goroutine; results from the tutor dispatcher are
// handed in through Deliver.
type Controller struct {
	dispatcher tutor.Dispatcher
	user       identity.Provider
	cfg        Config
	logger     *zap.Logger

	quiz       *content.QuizWithQuestions
	position   int
	ledger     *Ledger
	surface    Surface
	aiSession  *tutor.Conversation
	generation uint64
}

// NewController creates a controller with no quiz loaded. user may be nil,
// in which case explanations use the default locale.
func NewController(dispatcher tutor.Dispatcher, user identity.Provider, cfg Config, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		dispatcher: dispatcher,
		user:       user,
		cfg:        cfg,
		logger:     logger,
		ledger:     NewLedger(0),
	}
}

// LoadQuiz attaches q and resets everything else: position, answers and
// any open explanation. A nil quiz is a programmer error and leaves the
// controller untouched.
func (c *Controller) LoadQuiz(q *content.QuizWithQuestions) error {
	if q == nil {
		return c.programmerError(fmt.Errorf("%w: nil quiz", ErrNoActiveQuiz))
	}
	c.discardConversation()
	c.surface = SurfaceClosed
	c.quiz = q
	c.position = 0
	c.ledger = NewLedger(q.Len())

	c.logger.Debug("quiz loaded",
		zap.String("quiz_id", q.ID.String()),
		zap.String("title", q.Title),
		zap.Int("questions", q.Len()))
	return nil
}

// SubmitAnswer records optionIndex for position and reports whether it is
// the correct option.
func (c *Controller) SubmitAnswer(position, optionIndex int) (bool, error) {
	q, err := c.questionAt(position)
	if err != nil {
		return false, err
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return false, c.programmerError(fmt.Errorf("%w: option %d for position %d", ErrOutOfRange, optionIndex, position))
	}
	if c.cfg.AnswerPolicy == RejectResubmission && c.ledger.IsAnswered(position) {
		return false, ErrAlreadyAnswered
	}

	c.ledger.RecordAnswer(position, optionIndex)
	return optionIndex == q.CorrectIndex, nil
}

// NavigateTo moves to position. Unanswered questions may be left behind.
func (c *Controller) NavigateTo(position int) error {
	if _, err := c.questionAt(position); err != nil {
		return err
	}
	c.position = position
	return nil
}

// Next moves forward one question. It reports false at the last question.
func (c *Controller) Next() bool {
	if c.quiz == nil || c.position+1 >= c.quiz.Len() {
		return false
	}
	c.position++
	return true
}

// Prev moves back one question. It reports false at the first question.
func (c *Controller) Prev() bool {
	if c.quiz == nil || c.position == 0 {
		return false
	}
	c.position--
	return true
}

// OpenExplanationFor moves to position, opens the explanation surface and
// creates a fresh conversation for that question. A conversation that was
// already live is terminated first. The new conversation is Idle until
// StartExplanation.
func (c *Controller) OpenExplanationFor(position int) (*tutor.Conversation, error) {
	q, err := c.questionAt(position)
	if err != nil {
		return nil, err
	}

	c.discardConversation()
	c.position = position
	c.surface = SurfaceOpen

	locale := identity.DefaultLocale
	if c.user != nil {
		locale = c.user.Current().Locale
	}
	key := tutor.SessionKey{QuestionID: q.ID, Generation: c.generation}
	c.aiSession = tutor.New(key, tutor.ContextFor(q), locale, c.dispatcher)

	c.logger.Debug("explanation opened", zap.String("chat_id", key.ID()), zap.Int("position", position))
	return c.aiSession, nil
}

// StartExplanation sends the opening request of the live conversation. It
// may be called any number of times; only the first has an effect.
func (c *Controller) StartExplanation() (bool, error) {
	if c.aiSession == nil {
		return false, ErrNoConversation
	}
	return c.aiSession.Start(), nil
}

// SendFollowUp forwards a user message to the live conversation.
func (c *Controller) SendFollowUp(text string) error {
	if c.aiSession == nil {
		return ErrNoConversation
	}
	return c.aiSession.SendFollowUp(text)
}

// RetryExplanation re-sends the last user message after a failure.
func (c *Controller) RetryExplanation() error {
	if c.aiSession == nil {
		return ErrNoConversation
	}
	return c.aiSession.Retry()
}

// CloseExplanation closes the surface and invalidates the conversation so
// the next open starts clean.
func (c *Controller) CloseExplanation() {
	c.discardConversation()
	c.surface = SurfaceClosed
}

// Deliver applies a dispatcher event to the live conversation. Events
// tagged with any other key are dropped; it reports whether the event was
// applied.
func (c *Controller) Deliver(ev tutor.Event) bool {
	if c.aiSession == nil {
		c.logger.Debug("dropping event with no live conversation", zap.String("chat_id", ev.Key.ID()))
		return false
	}
	if err := c.aiSession.Apply(ev); err != nil {
		if errors.Is(err, tutor.ErrStaleGeneration) {
			c.logger.Debug("dropping stale event",
				zap.String("chat_id", ev.Key.ID()),
				zap.String("live", c.aiSession.Key().ID()),
				zap.Stringer("kind", ev.Kind))
		}
		return false
	}
	return true
}

// Quiz returns the loaded quiz, or nil.
func (c *Controller) Quiz() *content.QuizWithQuestions { return c.quiz }

// CurrentPosition returns the position on screen.
func (c *Controller) CurrentPosition() int { return c.position }

// QuestionCount returns the number of loaded questions.
func (c *Controller) QuestionCount() int { return c.quiz.Len() }

// CurrentQuestion returns the question at the current position.
func (c *Controller) CurrentQuestion() (content.Question, bool) {
	if c.quiz == nil || c.position >= c.quiz.Len() {
		return content.Question{}, false
	}
	return c.quiz.Questions[c.position], true
}

// IsAnswered reports whether position has been answered.
func (c *Controller) IsAnswered(position int) bool { return c.ledger.IsAnswered(position) }

// Answer returns the option chosen at position.
func (c *Controller) Answer(position int) (int, bool) { return c.ledger.Answer(position) }

// IsCorrect reports whether position was answered correctly.
func (c *Controller) IsCorrect(position int) bool {
	opt, ok := c.ledger.Answer(position)
	if !ok || c.quiz == nil || position < 0 || position >= c.quiz.Len() {
		return false
	}
	return opt == c.quiz.Questions[position].CorrectIndex
}

// CorrectCount returns the number of correctly answered positions.
func (c *Controller) CorrectCount() int {
	n := 0
	for _, p := range c.ledger.Positions() {
		if c.IsCorrect(p) {
			n++
		}
	}
	return n
}

// AnsweredCount returns the number of answered positions.
func (c *Controller) AnsweredCount() int { return c.ledger.Count() }

// CompletionRatio returns the answered fraction of the quiz.
func (c *Controller) CompletionRatio() float64 { return c.ledger.CompletionRatio() }

// ExplanationOpen reports whether the explanation surface is open.
func (c *Controller) ExplanationOpen() bool { return c.surface == SurfaceOpen }

// Generation returns the current generation counter.
func (c *Controller) Generation() uint64 { return c.generation }

// Conversation returns a snapshot of the live conversation.
func (c *Controller) Conversation() (tutor.Snapshot, bool) {
	if c.aiSession == nil {
		return tutor.Snapshot{}, false
	}
	return c.aiSession.Snapshot(), true
}

// discardConversation terminates the live conversation, if any, and moves
// to the next generation.
func (c *Controller) discardConversation() {
	if c.aiSession == nil {
		return
	}
	c.logger.Debug("explanation discarded", zap.String("chat_id", c.aiSession.Key().ID()))
	c.aiSession.Terminate()
	c.aiSession = nil
	c.generation++
}

func (c *Controller) questionAt(position int) (content.Question, error) {
	if c.quiz == nil {
		return content.Question{}, c.programmerError(ErrNoActiveQuiz)
	}
	if position < 0 || position >= c.quiz.Len() {
		return content.Question{}, c.programmerError(
			fmt.Errorf("%w: position %d not in [0, %d)", ErrOutOfRange, position, c.quiz.Len()))
	}
	return c.quiz.Questions[position], nil
}

// programmerError reports a call the UI should never make. DPanic panics in
// development loggers and only logs in production.
func (c *Controller) programmerError(err error) error {
	c.logger.DPanic("invalid quiz controller call", zap.Error(err))
	return err
}
