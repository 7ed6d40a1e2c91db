package quiz

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/identity"
	"github.com/abhisek/ababa/internal/tutor"
)

type recordingDispatcher struct {
	reqs []tutor.Request
}

func (d *recordingDispatcher) Dispatch(req tutor.Request) {
	d.reqs = append(d.reqs, req)
}

// abcdQuiz builds a quiz of n questions with options A-D and the given
// correct indexes.
func abcdQuiz(correct ...int) *content.QuizWithQuestions {
	q := &content.QuizWithQuestions{
		Quiz: content.Quiz{ID: uuid.New(), Title: "Letters", Difficulty: content.DifficultyEasy, QuestionsCount: len(correct)},
	}
	for i, c := range correct {
		q.Questions = append(q.Questions, content.Question{
			ID:           uuid.New(),
			QuizID:       q.ID,
			Text:         "Question " + string(rune('1'+i)),
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: c,
		})
	}
	return q
}

func newTestController(t *testing.T) (*Controller, *recordingDispatcher) {
	t.Helper()
	d := &recordingDispatcher{}
	return NewController(d, identity.NewStatic("Student", "am-ET"), Config{}, nil), d
}

func TestCompletionRatio(t *testing.T) {
	c, _ := newTestController(t)
	c.LoadQuiz(abcdQuiz(0, 1, 2, 3))

	if got := c.CompletionRatio(); got != 0 {
		t.Fatalf("ratio before answers = %f, want 0", got)
	}
	for p := 0; p < 4; p++ {
		if _, err := c.SubmitAnswer(p, 0); err != nil {
			t.Fatalf("submit %d: %v", p, err)
		}
	}
	if got := c.CompletionRatio(); got != 1.0 {
		t.Fatalf("ratio after all answers = %f, want 1", got)
	}

	c.LoadQuiz(abcdQuiz())
	if got := c.CompletionRatio(); got != 0 {
		t.Fatalf("empty quiz ratio = %f, want 0", got)
	}
}

func TestLedgerEmptyIsNotNaN(t *testing.T) {
	l := NewLedger(0)
	l.RecordAnswer(0, 1)
	if got := l.CompletionRatio(); got != 0 {
		t.Fatalf("ratio = %f, want 0", got)
	}
}

func TestResubmissionLastWriteWins(t *testing.T) {
	c, _ := newTestController(t)
	c.LoadQuiz(abcdQuiz(1, 1))

	if _, err := c.SubmitAnswer(0, 1); err != nil {
		t.Fatal(err)
	}
	correct, err := c.SubmitAnswer(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if correct {
		t.Fatal("option 3 is not correct")
	}
	if !c.IsAnswered(0) {
		t.Fatal("position 0 should be answered")
	}
	if opt, _ := c.Answer(0); opt != 3 {
		t.Fatalf("ledger holds %d, want 3", opt)
	}
	if c.AnsweredCount() != 1 {
		t.Fatalf("answered = %d, want 1", c.AnsweredCount())
	}
}

func TestRejectResubmissionPolicy(t *testing.T) {
	c := NewController(nil, nil, Config{AnswerPolicy: RejectResubmission}, nil)
	c.LoadQuiz(abcdQuiz(1))

	if _, err := c.SubmitAnswer(0, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SubmitAnswer(0, 2); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("got %v, want ErrAlreadyAnswered", err)
	}
	if opt, _ := c.Answer(0); opt != 1 {
		t.Fatalf("first answer must be kept, got %d", opt)
	}
}

func TestScenarioThreeQuestions(t *testing.T) {
	c, _ := newTestController(t)
	c.LoadQuiz(abcdQuiz(1, 1, 1))

	correct, err := c.SubmitAnswer(0, 1)
	if err != nil || !correct {
		t.Fatalf("submit(0,1) = %v, %v; want correct", correct, err)
	}
	if c.CompletionRatio() != 1.0/3 {
		t.Fatalf("ratio = %f, want 1/3", c.CompletionRatio())
	}

	correct, err = c.SubmitAnswer(1, 2)
	if err != nil || correct {
		t.Fatalf("submit(1,2) = %v, %v; want incorrect", correct, err)
	}
	if c.CompletionRatio() != 2.0/3 {
		t.Fatalf("ratio = %f, want 2/3", c.CompletionRatio())
	}

	want := map[int]int{0: 1, 1: 2}
	for p, opt := range want {
		if got, ok := c.Answer(p); !ok || got != opt {
			t.Fatalf("ledger[%d] = %d,%v; want %d", p, got, ok, opt)
		}
	}
	if c.IsAnswered(2) {
		t.Fatal("position 2 should be unanswered")
	}
	if !c.IsCorrect(0) || c.IsCorrect(1) || c.CorrectCount() != 1 {
		t.Fatal("unexpected correctness observers")
	}
}

func TestNoActiveQuiz(t *testing.T) {
	c, _ := newTestController(t)

	if _, err := c.SubmitAnswer(0, 0); !errors.Is(err, ErrNoActiveQuiz) {
		t.Fatalf("submit: got %v", err)
	}
	if err := c.NavigateTo(0); !errors.Is(err, ErrNoActiveQuiz) {
		t.Fatalf("navigate: got %v", err)
	}
	if _, err := c.OpenExplanationFor(0); !errors.Is(err, ErrNoActiveQuiz) {
		t.Fatalf("open: got %v", err)
	}
	if c.QuestionCount() != 0 {
		t.Fatal("no questions expected")
	}
	if err := c.LoadQuiz(nil); !errors.Is(err, ErrNoActiveQuiz) {
		t.Fatalf("load nil: got %v", err)
	}
	if c.Quiz() != nil {
		t.Fatal("nil load must not attach a quiz")
	}
}

func TestOutOfRange(t *testing.T) {
	c, _ := newTestController(t)
	c.LoadQuiz(abcdQuiz(0, 0))

	for _, p := range []int{-1, 2, 10} {
		if err := c.NavigateTo(p); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("NavigateTo(%d): got %v", p, err)
		}
		if _, err := c.SubmitAnswer(p, 0); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SubmitAnswer(%d): got %v", p, err)
		}
	}
	if _, err := c.SubmitAnswer(0, 4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("option out of range: got %v", err)
	}
	if c.CurrentPosition() != 0 {
		t.Fatalf("failed navigation moved to %d", c.CurrentPosition())
	}
}

func TestProgrammerErrorsPanicInDevelopment(t *testing.T) {
	logger := zap.New(zapcore.NewNopCore(), zap.Development())
	c := NewController(nil, nil, Config{}, logger)

	defer func() {
		if recover() == nil {
			t.Fatal("expected DPanic to panic with a development logger")
		}
	}()
	_, _ = c.SubmitAnswer(0, 0)
}

func TestNavigation(t *testing.T) {
	c, _ := newTestController(t)
	c.LoadQuiz(abcdQuiz(0, 0, 0))

	if err := c.NavigateTo(2); err != nil {
		t.Fatal(err)
	}
	if c.CurrentPosition() != 2 {
		t.Fatalf("position = %d", c.CurrentPosition())
	}
	if c.Next() {
		t.Fatal("Next at last question should report false")
	}
	if !c.Prev() || c.CurrentPosition() != 1 {
		t.Fatalf("Prev moved to %d", c.CurrentPosition())
	}
	q, ok := c.CurrentQuestion()
	if !ok || q.Text != "Question 2" {
		t.Fatalf("CurrentQuestion = %+v, %v", q, ok)
	}
}

func TestLoadQuizResets(t *testing.T) {
	c, _ := newTestController(t)
	c.LoadQuiz(abcdQuiz(0, 0))
	_, _ = c.SubmitAnswer(0, 0)
	_ = c.NavigateTo(1)
	_, _ = c.OpenExplanationFor(1)
	gen := c.Generation()

	c.LoadQuiz(abcdQuiz(1, 1, 1))
	if c.CurrentPosition() != 0 || c.AnsweredCount() != 0 || c.ExplanationOpen() {
		t.Fatal("LoadQuiz must reset position, ledger and surface")
	}
	if _, ok := c.Conversation(); ok {
		t.Fatal("LoadQuiz must discard the conversation")
	}
	if c.Generation() != gen+1 {
		t.Fatalf("generation = %d, want %d", c.Generation(), gen+1)
	}
}

func TestReopenStartsFresh(t *testing.T) {
	c, d := newTestController(t)
	c.LoadQuiz(abcdQuiz(0))

	if _, err := c.OpenExplanationFor(0); err != nil {
		t.Fatal(err)
	}
	if _, err := c.StartExplanation(); err != nil {
		t.Fatal(err)
	}
	first, _ := c.Conversation()
	c.Deliver(tutor.Event{Key: first.Key, Kind: tutor.EventChunk, Text: "old answer"})
	c.Deliver(tutor.Event{Key: first.Key, Kind: tutor.EventComplete})

	c.CloseExplanation()
	if c.ExplanationOpen() {
		t.Fatal("surface should be closed")
	}

	if _, err := c.OpenExplanationFor(0); err != nil {
		t.Fatal(err)
	}
	snap, ok := c.Conversation()
	if !ok {
		t.Fatal("expected a conversation")
	}
	if snap.State != tutor.Idle || len(snap.Turns) != 0 {
		t.Fatalf("reopened conversation: state=%s turns=%d; want idle and empty", snap.State, len(snap.Turns))
	}
	if snap.Key.Generation <= first.Key.Generation {
		t.Fatalf("generation did not advance: %d -> %d", first.Key.Generation, snap.Key.Generation)
	}

	// A late event for the first conversation is ignored.
	if c.Deliver(tutor.Event{Key: first.Key, Kind: tutor.EventChunk, Text: "late"}) {
		t.Fatal("stale event should not be applied")
	}
	if snap, _ := c.Conversation(); len(snap.Turns) != 0 {
		t.Fatal("stale event leaked into the new conversation")
	}
	if len(d.reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(d.reqs))
	}
}

func TestStartExplanationIsIdempotent(t *testing.T) {
	c, d := newTestController(t)
	c.LoadQuiz(abcdQuiz(2))

	if _, err := c.StartExplanation(); !errors.Is(err, ErrNoConversation) {
		t.Fatalf("start with surface closed: got %v", err)
	}

	_, _ = c.OpenExplanationFor(0)
	sent, _ := c.StartExplanation()
	again, _ := c.StartExplanation()
	if !sent || again {
		t.Fatalf("StartExplanation sent=%v again=%v", sent, again)
	}
	if len(d.reqs) != 1 {
		t.Fatalf("expected exactly 1 opening request, got %d", len(d.reqs))
	}
	if d.reqs[0].Locale != "am-ET" {
		t.Fatalf("locale = %q, want am-ET", d.reqs[0].Locale)
	}
	if d.reqs[0].Question.CorrectIndex != 2 {
		t.Fatalf("request carries wrong question: %+v", d.reqs[0].Question)
	}
}

func TestScenarioOpenWithoutClosing(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d := &recordingDispatcher{}
	c := NewController(d, nil, Config{}, zap.New(core))
	c.LoadQuiz(abcdQuiz(1, 1, 1))

	_, _ = c.OpenExplanationFor(0)
	_, _ = c.StartExplanation()
	first, _ := c.Conversation()

	conv, err := c.OpenExplanationFor(1)
	if err != nil {
		t.Fatal(err)
	}
	if c.CurrentPosition() != 1 || !c.ExplanationOpen() {
		t.Fatal("surface should stay open on position 1")
	}
	if conv.Key().Generation != first.Key.Generation+1 {
		t.Fatalf("generation = %d, want %d", conv.Key().Generation, first.Key.Generation+1)
	}
	if conv.State() != tutor.Idle {
		t.Fatalf("new conversation state = %s, want idle", conv.State())
	}
	_, _ = c.StartExplanation()
	if conv.State() != tutor.Requesting {
		t.Fatalf("state after start = %s, want requesting", conv.State())
	}

	if c.Deliver(tutor.Event{Key: first.Key, Kind: tutor.EventComplete}) {
		t.Fatal("event for position 0 must be dropped")
	}
	if conv.State() != tutor.Requesting {
		t.Fatal("stale completion changed the new conversation")
	}
	if logs.FilterMessage("dropping stale event").Len() != 1 {
		t.Fatal("expected the stale event to be logged at debug level")
	}

	if len(d.reqs) != 2 || d.reqs[1].Key.QuestionID == d.reqs[0].Key.QuestionID {
		t.Fatalf("expected a second request for a different question, got %+v", d.reqs)
	}
}

func TestFollowUpAndRetryThroughController(t *testing.T) {
	c, d := newTestController(t)
	c.LoadQuiz(abcdQuiz(0))

	if err := c.SendFollowUp("hi"); !errors.Is(err, ErrNoConversation) {
		t.Fatalf("got %v", err)
	}

	_, _ = c.OpenExplanationFor(0)
	_, _ = c.StartExplanation()
	snap, _ := c.Conversation()

	if err := c.SendFollowUp("why?"); !errors.Is(err, tutor.ErrBusy) {
		t.Fatalf("got %v, want ErrBusy", err)
	}

	c.Deliver(tutor.Event{Key: snap.Key, Kind: tutor.EventError, Err: errors.New("503")})
	snap, _ = c.Conversation()
	var te *tutor.TransportError
	if snap.State != tutor.Failed || !errors.As(snap.Err, &te) {
		t.Fatalf("expected failed with TransportError, got %s / %v", snap.State, snap.Err)
	}

	if err := c.RetryExplanation(); err != nil {
		t.Fatal(err)
	}
	c.Deliver(tutor.Event{Key: snap.Key, Kind: tutor.EventChunk, Text: "ok"})
	c.Deliver(tutor.Event{Key: snap.Key, Kind: tutor.EventComplete})
	if err := c.SendFollowUp("why?"); err != nil {
		t.Fatalf("follow-up when ready: %v", err)
	}
	if len(d.reqs) != 3 {
		t.Fatalf("expected 3 requests (open, retry, follow-up), got %d", len(d.reqs))
	}
}

func TestParseAnswerPolicy(t *testing.T) {
	if p, err := ParseAnswerPolicy("reject"); err != nil || p != RejectResubmission {
		t.Fatalf("reject -> %v, %v", p, err)
	}
	if p, err := ParseAnswerPolicy(""); err != nil || p != AllowOverwrite {
		t.Fatalf("empty -> %v, %v", p, err)
	}
	if _, err := ParseAnswerPolicy("sometimes"); err == nil {
		t.Fatal("expected error")
	}
}
