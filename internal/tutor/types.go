// Package tutor implements the AI explanation conversation attached to a
// single quiz question.
//
// A Conversation is a small state machine driven from one event loop. It
// never talks to the network itself: requests are handed to a Dispatcher,
// and the dispatcher's results come back as Events that the host feeds to
// the conversation (normally via quiz.Controller.Deliver). Every request
// and every event carries the SessionKey of the conversation that produced
// it, so results belonging to a closed conversation can be recognised and
// dropped.
package tutor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/ababa/internal/content"
)

// OpeningPrompt is the first user turn of every conversation.
const OpeningPrompt = "Explain this question and why the answer is correct."

// State is the lifecycle state of a Conversation.
type State int

const (
	Idle State = iota
	Requesting
	Streaming
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Requesting:
		return "requesting"
	case Streaming:
		return "streaming"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Pending reports whether a response is outstanding in this state.
func (s State) Pending() bool {
	return s == Requesting || s == Streaming
}

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation.
type Turn struct {
	Role Role
	Text string
}

// SessionKey identifies a conversation: the question it explains and the
// generation it was opened in.
type SessionKey struct {
	QuestionID uuid.UUID
	Generation uint64
}

// ID renders the key as a chat identifier, e.g. "ai-explain-<uuid>-3".
func (k SessionKey) ID() string {
	return fmt.Sprintf("ai-explain-%s-%d", k.QuestionID, k.Generation)
}

// QuestionContext is the question data sent along with every request.
type QuestionContext struct {
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// ContextFor extracts the request context from a question.
func ContextFor(q content.Question) QuestionContext {
	return QuestionContext{
		Text:         q.Text,
		Options:      append([]string(nil), q.Options...),
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}
}

// Request is a single call to the text generation service. Turns is the
// complete history and always ends with a user turn.
type Request struct {
	Key      SessionKey
	Question QuestionContext
	Locale   string
	Turns    []Turn
}

// Dispatcher sends a request without blocking. Its outcome is reported
// later as a sequence of Events tagged with req.Key.
type Dispatcher interface {
	Dispatch(req Request)
}

// EventKind distinguishes the three outcomes a stream can report.
type EventKind int

const (
	EventChunk EventKind = iota
	EventComplete
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventChunk:
		return "chunk"
	case EventComplete:
		return "complete"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a result produced by a Dispatcher.
type Event struct {
	Key  SessionKey
	Kind EventKind
	Text string // EventChunk only
	Err  error  // EventError only
}

var (
	// ErrBusy is returned when a follow-up is sent while a response is
	// still outstanding, or before the opening request has been made.
	ErrBusy = errors.New("tutor: a response is already in progress")

	// ErrStaleGeneration marks an event that belongs to a closed
	// conversation. It is used for filtering only and never shown.
	ErrStaleGeneration = errors.New("tutor: event from a superseded conversation")

	// ErrTerminated is returned by operations on a terminated conversation.
	ErrTerminated = errors.New("tutor: conversation terminated")

	// ErrNotFailed is returned by Retry when there is nothing to retry.
	ErrNotFailed = errors.New("tutor: nothing to retry")

	// ErrEmptyMessage is returned for a blank follow-up.
	ErrEmptyMessage = errors.New("tutor: message is empty")
)

// TransportError wraps a failure reported by the generation service. It is
// recoverable through Conversation.Retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "explanation request failed"
	}
	return fmt.Sprintf("explanation request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
