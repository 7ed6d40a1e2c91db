package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer"},
			"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"name", "age"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["age"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for age, got %s", schema.Properties["age"].Type)
	}
	if len(schema.Properties["grade"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["grade"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("create provider: %v", err)
	}
	return p
}

func TestGeminiProvider_Stream(t *testing.T) {
	var path string
	handler := func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		writeSSE(w, []string{
			`data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Subtract 5"}]},"index":0}]}`,
			`data: {"candidates":[{"content":{"role":"model","parts":[{"text":" from both sides."}]},"index":0}]}`,
			`data: {"candidates":[{"content":{"role":"model","parts":[{"text":" x = 5."}]},"finishReason":"STOP","index":0}],"usageMetadata":{"promptTokenCount":42,"candidatesTokenCount":9,"totalTokenCount":51}}`,
		})
	}

	p := newTestGeminiProvider(t, handler)
	onDelta, deltas := collect()
	resp, err := p.Stream(context.Background(), Request{
		System:    "You are a helpful tutor.",
		Messages:  []Message{{Role: RoleUser, Content: "Explain."}},
		MaxTokens: 256,
	}, onDelta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(path, "gemini-2.5-flash:streamGenerateContent") {
		t.Fatalf("unexpected request path %q", path)
	}
	got := deltas()
	want := []string{"Subtract 5", " from both sides.", " x = 5."}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("deltas = %q, want %q", got, want)
	}
	if resp.Text() != "Subtract 5 from both sides. x = 5." {
		t.Fatalf("unexpected text: %q", resp.Text())
	}
	if resp.Usage.InputTokens != 42 || resp.Usage.OutputTokens != 9 || resp.Usage.TotalTokens != 51 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func TestGeminiProvider_StreamMaxTokens(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeSSE(w, []string{
			`data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Because"}]},"finishReason":"MAX_TOKENS","index":0}]}`,
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Stream(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Explain."}},
		MaxTokens: 1,
	}, func(string) {})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Fatalf("expected stop reason 'max_tokens', got %q", resp.StopReason)
	}
}

func TestGeminiProvider_StreamMidStreamError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeSSE(w, []string{
			`data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Subtract"}]},"index":0}]}`,
			`data: {"candidates": [`,
		})
	}

	p := newTestGeminiProvider(t, handler)
	onDelta, deltas := collect()
	_, err := p.Stream(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Explain."}},
	}, onDelta)
	if err == nil {
		t.Fatal("expected error for a malformed chunk")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
	if got := deltas(); len(got) != 1 || got[0] != "Subtract" {
		t.Fatalf("deltas before the error should be delivered, got %q", got)
	}
}
