package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/llm"
)

// Purpose is the LLM event label for quiz generation.
const Purpose = llm.PurposeQuizGen

// Generator produces quizzes.
type Generator interface {
	// Generate produces a validated quiz for input. All configured
	// validators are run before returning.
	Generate(ctx context.Context, input Input) (*content.QuizWithQuestions, error)
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *LLMGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

// Generate asks the model for a quiz and validates it. A retryable
// validation failure is retried up to MaxRetries times with the failure
// described in the prompt; provider errors are returned as is, since the
// provider applies its own retry policy.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (*content.QuizWithQuestions, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, fmt.Errorf("%w: subject", content.ErrMissingParameter)
	}
	if input.Difficulty == "" {
		input.Difficulty = content.DifficultyMedium
	}
	if !input.Difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", input.Difficulty)
	}
	if input.Count <= 0 {
		input.Count = g.config.DefaultCount
	}
	if g.config.MaxCount > 0 && input.Count > g.config.MaxCount {
		input.Count = g.config.MaxCount
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	var lastErr error
	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		q, err := g.generateOnce(ctx, input, lastErr)
		if err == nil {
			return q, nil
		}

		var valErr *ValidationError
		if !errors.As(err, &valErr) || !valErr.Retryable {
			return nil, err
		}
		g.logger.Info("generated quiz rejected",
			zap.Int("attempt", attempt+1),
			zap.String("validator", valErr.Validator),
			zap.String("reason", valErr.Message))
		lastErr = err
	}
	return nil, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, input Input, lastErr error) (*content.QuizWithQuestions, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config, lastErr)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &ValidationError{
			Validator: "decode",
			Question:  -1,
			Message:   fmt.Sprintf("response is not a quiz object: %v", err),
			Retryable: true,
		}
	}

	q := &content.QuizWithQuestions{
		Quiz: content.Quiz{
			Title:          strings.TrimSpace(raw.Title),
			Difficulty:     input.Difficulty,
			QuestionsCount: len(raw.Questions),
		},
		SubjectName: input.Subject,
	}
	for _, rq := range raw.Questions {
		opts := make([]string, len(rq.Options))
		for i, o := range rq.Options {
			opts[i] = strings.TrimSpace(o)
		}
		q.Questions = append(q.Questions, content.Question{
			Text:         strings.TrimSpace(rq.Text),
			Options:      opts,
			CorrectIndex: rq.CorrectIndex,
			Explanation:  strings.TrimSpace(rq.Explanation),
		})
	}

	// Run validators in order.
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return nil, verr
		}
	}
	return q, nil
}
