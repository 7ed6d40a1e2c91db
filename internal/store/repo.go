package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	Streamed     bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates calls for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates calls for one provider and model.
type LLMModelUsage struct {
	Provider     string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID    string
	QuizID       uuid.UUID
	QuestionID   uuid.UUID
	Position     int
	OptionIndex  int
	CorrectIndex int
	Correct      bool
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// QuizAnswerStats summarises the answers given for one quiz. Only the
// latest answer per session and position counts.
type QuizAnswerStats struct {
	QuizID   uuid.UUID
	Title    string
	Sessions int
	Answered int
	Correct  int
}

// Accuracy returns Correct/Answered, or 0 with no answers.
func (s QuizAnswerStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil when it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per provider and model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendAnswer records a submitted answer.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// QueryAnswers returns answer events in sequence order.
	QueryAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// AnswerStats returns per-quiz answer accuracy.
	AnswerStats(ctx context.Context) ([]QuizAnswerStats, error)
}
