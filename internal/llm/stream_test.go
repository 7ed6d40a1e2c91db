package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/ababa/internal/store"
)

func writeSSE(w http.ResponseWriter, events []string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	for _, e := range events {
		fmt.Fprint(w, e)
		fmt.Fprint(w, "\n\n")
	}
}

func collect() (DeltaFunc, func() []string) {
	var mu sync.Mutex
	var got []string
	return func(d string) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, d)
		}, func() []string {
			mu.Lock()
			defer mu.Unlock()
			return append([]string(nil), got...)
		}
}

func TestAnthropicProvider_Stream(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeSSE(w, []string{
			"event: message_start\ndata: " + `{"type":"message_start","message":{"id":"msg_1","type":"message","role":"assistant","content":[],"model":"claude-haiku-4-5-20251001","stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":12,"output_tokens":1}}}`,
			"event: content_block_start\ndata: " + `{"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}`,
			"event: content_block_delta\ndata: " + `{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Subtract 5"}}`,
			"event: content_block_delta\ndata: " + `{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":" from both sides."}}`,
			"event: content_block_stop\ndata: " + `{"type":"content_block_stop","index":0}`,
			"event: message_delta\ndata: " + `{"type":"message_delta","delta":{"stop_reason":"end_turn","stop_sequence":null},"usage":{"output_tokens":7}}`,
			"event: message_stop\ndata: " + `{"type":"message_stop"}`,
		})
	}

	p := newTestAnthropicProvider(t, handler)
	onDelta, deltas := collect()
	resp, err := p.Stream(context.Background(), Request{
		System:    "You are a helpful tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Explain."}},
		MaxTokens: 256,
	}, onDelta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := deltas()
	if len(got) != 2 || got[0] != "Subtract 5" {
		t.Fatalf("unexpected deltas: %q", got)
	}
	if resp.Text() != "Subtract 5 from both sides." {
		t.Fatalf("unexpected text: %q", resp.Text())
	}
	if resp.Usage.OutputTokens != 7 {
		t.Fatalf("expected 7 output tokens, got %d", resp.Usage.OutputTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func TestAnthropicProvider_StreamServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`)
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Stream(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Explain."}},
		MaxTokens: 64,
	}, func(string) {})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Stream(t *testing.T) {
	var calls int
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeSSE(w, []string{
			`data: {"id":"c1","object":"chat.completion.chunk","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"delta":{"role":"assistant","content":"x = "},"finish_reason":null}]}`,
			`data: {"id":"c1","object":"chat.completion.chunk","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"delta":{"content":"5"},"finish_reason":"stop"}]}`,
			`data: {"id":"c1","object":"chat.completion.chunk","created":1,"model":"gpt-4o-mini","choices":[],"usage":{"prompt_tokens":20,"completion_tokens":3,"total_tokens":23}}`,
			`data: [DONE]`,
		})
	}

	p := newTestOpenAIProvider(t, handler)
	onDelta, deltas := collect()
	resp, err := p.Stream(context.Background(), Request{
		System:   "You are a helpful tutor.",
		Messages: []Message{{Role: RoleUser, Content: "Explain."}},
	}, onDelta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(deltas(), "") != "x = 5" {
		t.Fatalf("unexpected deltas: %q", deltas())
	}
	if resp.Usage.TotalTokens != 23 {
		t.Fatalf("expected 23 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if calls != 1 {
		t.Fatalf("expected 1 request, got %d", calls)
	}
}

func TestMockProvider_Stream(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Chunks: []string{"a", "b", "c"}},
		MockResponse{Chunks: []string{"partial"}, Err: &ErrProviderUnavailable{Err: errors.New("reset")}},
	)

	onDelta, deltas := collect()
	resp, err := mock.Stream(context.Background(), Request{}, onDelta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "abc" || len(deltas()) != 3 {
		t.Fatalf("unexpected stream result %q / %q", resp.Text(), deltas())
	}

	onDelta, deltas = collect()
	_, err = mock.Stream(context.Background(), Request{}, onDelta)
	if err == nil {
		t.Fatal("expected mid-stream error")
	}
	if len(deltas()) != 1 {
		t.Fatalf("expected the partial chunk before the error, got %q", deltas())
	}
}

func TestRetry_StreamIsNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Chunks: []string{"never"}},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Stream(context.Background(), Request{}, func(string) {})
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.CallCount())
	}
}

type recordingRepo struct {
	events []store.LLMRequestEventData
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return nil
}

func TestLogging_RecordsStreams(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Chunks: []string{"hi"}, Usage: Usage{InputTokens: 4, OutputTokens: 1}})
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithPurpose(context.Background(), "explain")
	if _, err := p.Stream(ctx, Request{System: "sys"}, func(string) {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if !ev.Streamed || ev.Purpose != "explain" || ev.ResponseBody != "hi" || !ev.Success {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Provider != "mock" || ev.InputTokens != 4 {
		t.Fatalf("unexpected provider/usage: %+v", ev)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	p := WithLogging(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error to pass through")
	}
}

func TestResponseText(t *testing.T) {
	r := &Response{Content: textContent(`say "hi"`)}
	if r.Text() != `say "hi"` {
		t.Fatalf("Text() = %q", r.Text())
	}
	r = &Response{Content: []byte(`{"a":1}`)}
	if r.Text() != `{"a":1}` {
		t.Fatalf("structured Text() = %q", r.Text())
	}
}

func TestNewProvider_MockFallsBackOffline(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock, Retry: retryConfig()}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	onDelta, deltas := collect()
	if _, err := p.Stream(context.Background(), Request{}, onDelta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deltas()) == 0 {
		t.Fatal("expected offline deltas")
	}
}
