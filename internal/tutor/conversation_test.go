package tutor

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

// recordingDispatcher captures requests instead of sending them.
type recordingDispatcher struct {
	reqs []Request
}

func (d *recordingDispatcher) Dispatch(req Request) {
	d.reqs = append(d.reqs, req)
}

func newTestConversation(t *testing.T) (*Conversation, *recordingDispatcher) {
	t.Helper()
	d := &recordingDispatcher{}
	key := SessionKey{QuestionID: uuid.New(), Generation: 1}
	q := QuestionContext{
		Text:         "What is value of x in equation 2x + 5 = 15?",
		Options:      []string{"5", "7", "8", "10"},
		CorrectIndex: 0,
		Explanation:  "Subtract 5 from both sides: 2x = 10. Then divide by 2: x = 5.",
	}
	return New(key, q, "en", d), d
}

func TestStartIsIdempotent(t *testing.T) {
	c, d := newTestConversation(t)

	if c.State() != Idle || len(c.Turns()) != 0 {
		t.Fatalf("new conversation should be idle and empty, got %s with %d turns", c.State(), len(c.Turns()))
	}

	if !c.Start() {
		t.Fatal("first Start should send")
	}
	if c.Start() {
		t.Fatal("second Start should be a no-op")
	}

	if len(d.reqs) != 1 {
		t.Fatalf("expected exactly 1 opening request, got %d", len(d.reqs))
	}
	if c.State() != Requesting {
		t.Fatalf("state = %s, want requesting", c.State())
	}
	req := d.reqs[0]
	if len(req.Turns) != 1 || req.Turns[0].Text != OpeningPrompt || req.Turns[0].Role != RoleUser {
		t.Fatalf("unexpected opening turns: %+v", req.Turns)
	}
	if req.Question.CorrectIndex != 0 || req.Locale != "en" || req.Key != c.Key() {
		t.Fatalf("request lacks question context: %+v", req)
	}
}

func TestStreamingLifecycle(t *testing.T) {
	c, _ := newTestConversation(t)
	c.Start()

	c.OnChunk("Subtract 5")
	if c.State() != Streaming {
		t.Fatalf("state = %s, want streaming", c.State())
	}
	c.OnChunk(" from both sides.")
	if c.State() != Streaming {
		t.Fatalf("chunks must not leave streaming, got %s", c.State())
	}
	c.OnComplete()
	if c.State() != Ready {
		t.Fatalf("state = %s, want ready", c.State())
	}

	turns := c.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[1].Role != RoleAssistant || turns[1].Text != "Subtract 5 from both sides." {
		t.Fatalf("unexpected assistant turn: %+v", turns[1])
	}
}

func TestCompleteWithoutChunks(t *testing.T) {
	c, _ := newTestConversation(t)
	c.Start()
	c.OnComplete()
	if c.State() != Ready {
		t.Fatalf("state = %s, want ready", c.State())
	}
	if n := len(c.Turns()); n != 2 {
		t.Fatalf("expected an empty assistant turn, got %d turns", n)
	}
}

func TestFollowUpWhileBusy(t *testing.T) {
	c, d := newTestConversation(t)

	if err := c.SendFollowUp("why?"); !errors.Is(err, ErrBusy) {
		t.Fatalf("follow-up before start: got %v, want ErrBusy", err)
	}

	c.Start()
	if err := c.SendFollowUp("why?"); !errors.Is(err, ErrBusy) {
		t.Fatalf("follow-up while requesting: got %v, want ErrBusy", err)
	}
	c.OnChunk("because")
	if err := c.SendFollowUp("why?"); !errors.Is(err, ErrBusy) {
		t.Fatalf("follow-up while streaming: got %v, want ErrBusy", err)
	}

	if len(d.reqs) != 1 {
		t.Fatalf("busy follow-ups must not dispatch, got %d requests", len(d.reqs))
	}
	for _, turn := range c.Turns() {
		if turn.Text == "why?" {
			t.Fatal("busy follow-up must not enqueue a user turn")
		}
	}
}

func TestFollowUpWhenReady(t *testing.T) {
	c, d := newTestConversation(t)
	c.Start()
	c.OnChunk("x = 5")
	c.OnComplete()

	if err := c.SendFollowUp("   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("blank follow-up: got %v", err)
	}
	if err := c.SendFollowUp("Can you show the steps?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != Requesting {
		t.Fatalf("state = %s, want requesting", c.State())
	}
	if len(d.reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(d.reqs))
	}
	last := d.reqs[1].Turns
	if len(last) != 3 || last[2].Text != "Can you show the steps?" {
		t.Fatalf("follow-up request should carry full history, got %+v", last)
	}
}

func TestErrorAndRetry(t *testing.T) {
	c, d := newTestConversation(t)
	c.Start()
	c.OnChunk("partial")
	cause := errors.New("quota exceeded")
	c.OnError(cause)

	if c.State() != Failed {
		t.Fatalf("state = %s, want failed", c.State())
	}
	var te *TransportError
	if !errors.As(c.Err(), &te) || !errors.Is(c.Err(), cause) {
		t.Fatalf("expected TransportError wrapping cause, got %v", c.Err())
	}
	if err := c.SendFollowUp("hello"); !errors.Is(err, ErrBusy) {
		t.Fatalf("follow-up while failed: got %v, want ErrBusy", err)
	}

	if err := c.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if c.State() != Requesting || c.Err() != nil {
		t.Fatalf("after retry: state=%s err=%v", c.State(), c.Err())
	}
	if len(d.reqs) != 2 {
		t.Fatalf("expected retry to dispatch, got %d requests", len(d.reqs))
	}
	retried := d.reqs[1].Turns
	if len(retried) != 1 || retried[0].Text != OpeningPrompt {
		t.Fatalf("retry should resend the last user turn only, got %+v", retried)
	}

	if err := c.Retry(); !errors.Is(err, ErrNotFailed) {
		t.Fatalf("retry while requesting: got %v", err)
	}
}

func TestTerminateDropsLateEvents(t *testing.T) {
	c, d := newTestConversation(t)
	c.Start()
	c.Terminate()

	if err := c.Apply(Event{Key: c.Key(), Kind: EventChunk, Text: "late"}); !errors.Is(err, ErrStaleGeneration) {
		t.Fatalf("expected stale error, got %v", err)
	}
	c.OnChunk("late")
	c.OnComplete()
	if c.State() != Requesting || len(c.Turns()) != 1 {
		t.Fatalf("terminated conversation changed: %s, %d turns", c.State(), len(c.Turns()))
	}
	if c.Start() {
		t.Fatal("terminated conversation must not start")
	}
	if err := c.SendFollowUp("x"); !errors.Is(err, ErrTerminated) {
		t.Fatalf("got %v, want ErrTerminated", err)
	}
	if err := c.Retry(); !errors.Is(err, ErrTerminated) {
		t.Fatalf("got %v, want ErrTerminated", err)
	}
	if len(d.reqs) != 1 {
		t.Fatalf("expected no further requests, got %d", len(d.reqs))
	}
}

func TestApplyRejectsOtherKeys(t *testing.T) {
	c, _ := newTestConversation(t)
	c.Start()

	old := c.Key()
	old.Generation--
	if err := c.Apply(Event{Key: old, Kind: EventChunk, Text: "stale"}); !errors.Is(err, ErrStaleGeneration) {
		t.Fatalf("expected stale error, got %v", err)
	}
	if c.State() != Requesting {
		t.Fatalf("stale event changed state to %s", c.State())
	}

	if err := c.Apply(Event{Key: c.Key(), Kind: EventChunk, Text: "fresh"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Apply(Event{Key: c.Key(), Kind: EventError, Err: errors.New("eof")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != Failed {
		t.Fatalf("state = %s, want failed", c.State())
	}
}

func TestSessionKeyID(t *testing.T) {
	id := uuid.MustParse("2f1c9a34-4a6b-4d2e-9c3f-6a1b2c3d4e5f")
	k := SessionKey{QuestionID: id, Generation: 3}
	if got := k.ID(); got != "ai-explain-2f1c9a34-4a6b-4d2e-9c3f-6a1b2c3d4e5f-3" {
		t.Fatalf("ID() = %q", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	c, _ := newTestConversation(t)
	c.Start()
	snap := c.Snapshot()
	snap.Turns[0].Text = "mutated"
	if c.Turns()[0].Text != OpeningPrompt {
		t.Fatal("snapshot must not alias conversation turns")
	}
}
