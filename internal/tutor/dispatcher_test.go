package tutor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/ababa/internal/llm"
)

type fakeTransport struct {
	chunks []string
	err    error
	block  chan struct{}
}

func (f *fakeTransport) Stream(ctx context.Context, _ Request, onDelta func(string)) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	for _, c := range f.chunks {
		onDelta(c)
	}
	return f.err
}

func drain(t *testing.T, ch <-chan Event, n int) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case ev := <-ch:
			out = append(out, ev)
		case <-timeout:
			t.Fatalf("timed out after %d of %d events", len(out), n)
		}
	}
	return out
}

func TestAsyncDispatcher_DeliversInOrder(t *testing.T) {
	d := NewAsyncDispatcher(&fakeTransport{chunks: []string{"a", "b", "c"}}, DefaultConfig(), nil)
	t.Cleanup(d.Close)

	key := SessionKey{QuestionID: uuid.New(), Generation: 7}
	d.Dispatch(Request{Key: key})

	events := drain(t, d.Events(), 4)
	var text strings.Builder
	for _, ev := range events[:3] {
		if ev.Kind != EventChunk || ev.Key != key {
			t.Fatalf("unexpected event: %+v", ev)
		}
		text.WriteString(ev.Text)
	}
	if text.String() != "abc" {
		t.Fatalf("chunks out of order: %q", text.String())
	}
	if events[3].Kind != EventComplete {
		t.Fatalf("expected completion, got %s", events[3].Kind)
	}
}

func TestAsyncDispatcher_ReportsErrors(t *testing.T) {
	cause := errors.New("429")
	d := NewAsyncDispatcher(&fakeTransport{err: cause}, DefaultConfig(), nil)
	t.Cleanup(d.Close)

	d.Dispatch(Request{Key: SessionKey{QuestionID: uuid.New()}})
	ev := drain(t, d.Events(), 1)[0]
	if ev.Kind != EventError || !errors.Is(ev.Err, cause) {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestAsyncDispatcher_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 10 * time.Millisecond
	d := NewAsyncDispatcher(&fakeTransport{block: make(chan struct{})}, cfg, nil)
	t.Cleanup(d.Close)

	d.Dispatch(Request{Key: SessionKey{QuestionID: uuid.New()}})
	ev := drain(t, d.Events(), 1)[0]
	if ev.Kind != EventError || !errors.Is(ev.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %+v", ev)
	}
}

func TestAsyncDispatcher_CloseUnblocks(t *testing.T) {
	d := NewAsyncDispatcher(&fakeTransport{block: make(chan struct{})}, DefaultConfig(), nil)
	d.Dispatch(Request{Key: SessionKey{QuestionID: uuid.New()}})

	done := make(chan struct{})
	go func() {
		d.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}

	// Dispatch after close is ignored and the channel is closed.
	d.Dispatch(Request{})
	for range d.Events() {
	}
}

func TestAsyncDispatcher_DispatchRacingClose(t *testing.T) {
	d := NewAsyncDispatcher(&fakeTransport{chunks: []string{"x"}}, DefaultConfig(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(gen uint64) {
			defer wg.Done()
			d.Dispatch(Request{Key: SessionKey{QuestionID: uuid.New(), Generation: gen}})
		}(uint64(i))
	}
	go func() {
		for range d.Events() {
		}
	}()
	d.Close()
	wg.Wait()

	// Close is idempotent and later dispatches are dropped.
	d.Close()
	d.Dispatch(Request{Key: SessionKey{QuestionID: uuid.New()}})
}

func TestConversationWithDispatcher(t *testing.T) {
	d := NewAsyncDispatcher(&fakeTransport{chunks: []string{"x ", "= 5"}}, DefaultConfig(), nil)
	t.Cleanup(d.Close)

	c := New(SessionKey{QuestionID: uuid.New(), Generation: 1}, QuestionContext{Text: "2x+5=15"}, "en", d)
	c.Start()
	for _, ev := range drain(t, d.Events(), 3) {
		if err := c.Apply(ev); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	if c.State() != Ready {
		t.Fatalf("state = %s, want ready", c.State())
	}
	if got := c.Turns()[1].Text; got != "x = 5" {
		t.Fatalf("assistant text = %q", got)
	}
}

func TestLLMTransport(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"Hola", "!"}})
	tr := NewLLMTransport(mock, DefaultConfig())

	var got strings.Builder
	err := tr.Stream(context.Background(), Request{
		Question: QuestionContext{Text: "Q", Options: []string{"a", "b"}, CorrectIndex: 1},
		Locale:   "es-ES",
		Turns: []Turn{
			{Role: RoleUser, Text: OpeningPrompt},
			{Role: RoleAssistant, Text: "..."},
			{Role: RoleUser, Text: "¿Por qué?"},
		},
	}, func(s string) { got.WriteString(s) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "Hola!" {
		t.Fatalf("deltas = %q", got.String())
	}

	call, ok := mock.LastCall()
	if !ok {
		t.Fatal("expected a provider call")
	}
	if len(call.Messages) != 3 || call.Messages[1].Role != llm.RoleAssistant {
		t.Fatalf("unexpected messages: %+v", call.Messages)
	}
	if !strings.Contains(call.System, "Spanish") {
		t.Fatalf("system prompt should name the language:\n%s", call.System)
	}
}

func TestLLMTransport_Error(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("quota")}})
	tr := NewLLMTransport(mock, DefaultConfig())

	err := tr.Stream(context.Background(), Request{Turns: []Turn{{Role: RoleUser, Text: OpeningPrompt}}}, func(string) {})
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected wrapped ErrRateLimit, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected a single attempt, got %d", mock.CallCount())
	}
}

func TestPrompt(t *testing.T) {
	p := Prompt(QuestionContext{
		Text:         "What is value of x in equation 2x + 5 = 15?",
		Options:      []string{"5", "7", "8", "10"},
		CorrectIndex: 0,
		Explanation:  "Subtract 5 from both sides.",
	}, "")

	for _, want := range []string{
		"helpful and encouraging AI tutor",
		"Question: What is value of x in equation 2x + 5 = 15?",
		"Options: 0) 5, 1) 7, 2) 8, 3) 10",
		"Correct Answer Index: 0 (5)",
		"Explanation: Subtract 5 from both sides.",
		"currently using English",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(Prompt(QuestionContext{Text: "q"}, "Amharic"), "Explanation:") {
		t.Error("prompt should omit an absent explanation")
	}
}
