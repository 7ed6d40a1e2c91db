package tutor

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// AsyncDispatcher runs every request on its own goroutine and reports the
// outcome on a single event channel, in the order each stream produces it.
// Requests are never cancelled when a conversation is terminated; the host
// drops their events by key instead.
type AsyncDispatcher struct {
	transport Transport
	cfg       Config
	logger    *zap.Logger

	events chan Event
	done   chan struct{}
	base   context.Context
	cancel context.CancelFunc

	// mu orders Dispatch against Close so no goroutine is added once
	// Close has started waiting.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

var _ Dispatcher = (*AsyncDispatcher)(nil)

// NewAsyncDispatcher creates a dispatcher backed by transport.
func NewAsyncDispatcher(transport Transport, cfg Config, logger *zap.Logger) *AsyncDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = DefaultConfig().Buffer
	}
	base, cancel := context.WithCancel(context.Background())
	return &AsyncDispatcher{
		transport: transport,
		cfg:       cfg,
		logger:    logger,
		events:    make(chan Event, cfg.Buffer),
		done:      make(chan struct{}),
		base:      base,
		cancel:    cancel,
	}
}

// Events returns the channel results are delivered on. It is closed by Close.
func (d *AsyncDispatcher) Events() <-chan Event {
	return d.events
}

// Dispatch starts req in the background. It is safe to call
// concurrently with Close; requests after Close are dropped.
func (d *AsyncDispatcher) Dispatch(req Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Debug("dispatch after close ignored", zap.String("chat_id", req.Key.ID()))
		return
	}

	d.logger.Debug("dispatching explanation request",
		zap.String("chat_id", req.Key.ID()),
		zap.Int("turns", len(req.Turns)))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx := d.base
		if d.cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
			defer cancel()
		}

		err := d.transport.Stream(ctx, req, func(text string) {
			d.emit(Event{Key: req.Key, Kind: EventChunk, Text: text})
		})
		if err != nil {
			d.logger.Warn("explanation stream failed",
				zap.String("chat_id", req.Key.ID()), zap.Error(err))
			d.emit(Event{Key: req.Key, Kind: EventError, Err: err})
			return
		}
		d.emit(Event{Key: req.Key, Kind: EventComplete})
	}()
}

// Close cancels in-flight requests, waits for their goroutines and closes
// the event channel.
func (d *AsyncDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.done)
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
	close(d.events)
}

func (d *AsyncDispatcher) emit(ev Event) {
	select {
	case d.events <- ev:
	case <-d.done:
	}
}
