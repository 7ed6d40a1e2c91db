package tutor

import (
	"strings"
)

// Conversation is one explanation chat for one question and one generation.
// It is not safe for concurrent use; drive it from a single goroutine.
type Conversation struct {
	key        SessionKey
	question   QuestionContext
	locale     string
	dispatcher Dispatcher

	state      State
	turns      []Turn
	err        *TransportError
	terminated bool
}

// New creates a conversation in the Idle state. Nothing is sent until Start.
func New(key SessionKey, question QuestionContext, locale string, d Dispatcher) *Conversation {
	return &Conversation{
		key:        key,
		question:   question,
		locale:     locale,
		dispatcher: d,
		state:      Idle,
	}
}

// Key returns the conversation's identity.
func (c *Conversation) Key() SessionKey { return c.key }

// State returns the current lifecycle state.
func (c *Conversation) State() State { return c.state }

// Terminated reports whether Terminate has been called.
func (c *Conversation) Terminated() bool { return c.terminated }

// Err returns the last transport failure while in Failed, or nil.
func (c *Conversation) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// Turns returns a copy of the turn history.
func (c *Conversation) Turns() []Turn {
	return append([]Turn(nil), c.turns...)
}

// Start sends the opening request. Only the first call on an Idle
// conversation has any effect; it reports whether a request was sent.
func (c *Conversation) Start() bool {
	if c.terminated || c.state != Idle {
		return false
	}
	c.turns = append(c.turns, Turn{Role: RoleUser, Text: OpeningPrompt})
	c.send()
	return true
}

// SendFollowUp appends a user turn and requests a reply. It is only valid
// in Ready; otherwise the conversation is left untouched.
func (c *Conversation) SendFollowUp(text string) error {
	if c.terminated {
		return ErrTerminated
	}
	if c.state != Ready {
		return ErrBusy
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	c.turns = append(c.turns, Turn{Role: RoleUser, Text: text})
	c.send()
	return nil
}

// Retry re-sends the last user turn after a failure, discarding any
// partial assistant reply.
func (c *Conversation) Retry() error {
	if c.terminated {
		return ErrTerminated
	}
	if c.state != Failed {
		return ErrNotFailed
	}
	if n := len(c.turns); n > 0 && c.turns[n-1].Role == RoleAssistant {
		c.turns = c.turns[:n-1]
	}
	c.send()
	return nil
}

// OnChunk appends streamed text to the reply in progress.
func (c *Conversation) OnChunk(text string) {
	if c.terminated {
		return
	}
	switch c.state {
	case Requesting:
		c.state = Streaming
		c.turns = append(c.turns, Turn{Role: RoleAssistant, Text: text})
	case Streaming:
		c.turns[len(c.turns)-1].Text += text
	}
}

// OnComplete finishes the reply in progress.
func (c *Conversation) OnComplete() {
	if c.terminated {
		return
	}
	switch c.state {
	case Requesting:
		// The service answered with no content.
		c.turns = append(c.turns, Turn{Role: RoleAssistant})
		c.state = Ready
	case Streaming:
		c.state = Ready
	}
}

// OnError records a transport failure. The partial reply, if any, stays
// visible until Retry.
func (c *Conversation) OnError(err error) {
	if c.terminated || !c.state.Pending() {
		return
	}
	c.err = &TransportError{Err: err}
	c.state = Failed
}

// Apply routes a dispatcher event to OnChunk, OnComplete or OnError. Events
// addressed to another key, or arriving after Terminate, are rejected with
// ErrStaleGeneration and change nothing.
func (c *Conversation) Apply(ev Event) error {
	if c.terminated || ev.Key != c.key {
		return ErrStaleGeneration
	}
	switch ev.Kind {
	case EventChunk:
		c.OnChunk(ev.Text)
	case EventComplete:
		c.OnComplete()
	case EventError:
		c.OnError(ev.Err)
	}
	return nil
}

// Terminate invalidates the conversation. In-flight responses keep running
// in the dispatcher but their events are discarded.
func (c *Conversation) Terminate() {
	c.terminated = true
}

// Snapshot is a read-only view of a conversation for rendering.
type Snapshot struct {
	Key        SessionKey
	State      State
	Turns      []Turn
	Err        error
	Terminated bool
}

// Snapshot captures the current state.
func (c *Conversation) Snapshot() Snapshot {
	return Snapshot{
		Key:        c.key,
		State:      c.state,
		Turns:      c.Turns(),
		Err:        c.Err(),
		Terminated: c.terminated,
	}
}

func (c *Conversation) send() {
	c.err = nil
	c.state = Requesting
	if c.dispatcher == nil {
		return
	}
	c.dispatcher.Dispatch(Request{
		Key:      c.key,
		Question: c.question,
		Locale:   c.locale,
		Turns:    c.Turns(),
	})
}
