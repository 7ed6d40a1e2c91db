package tutor

import (
	"context"
	"fmt"

	"github.com/abhisek/ababa/internal/identity"
	"github.com/abhisek/ababa/internal/llm"
)

// Transport performs one streaming exchange. It calls onDelta for every
// fragment in order and returns nil on completion.
type Transport interface {
	Stream(ctx context.Context, req Request, onDelta func(string)) error
}

// LLMTransport streams explanations from an llm.Provider.
type LLMTransport struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMTransport creates a transport backed by provider.
func NewLLMTransport(provider llm.Provider, cfg Config) *LLMTransport {
	return &LLMTransport{provider: provider, cfg: cfg}
}

func (t *LLMTransport) Stream(ctx context.Context, req Request, onDelta func(string)) error {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	msgs := make([]llm.Message, 0, len(req.Turns))
	for _, turn := range req.Turns {
		role := llm.RoleUser
		if turn.Role == RoleAssistant {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: turn.Text})
	}

	_, err := t.provider.Stream(ctx, llm.Request{
		System:      Prompt(req.Question, identity.LanguageName(req.Locale)),
		Messages:    msgs,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	}, llm.DeltaFunc(onDelta))
	if err != nil {
		return fmt.Errorf("stream explanation: %w", err)
	}
	return nil
}
