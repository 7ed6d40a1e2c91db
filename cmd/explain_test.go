package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/quiz"
	"github.com/abhisek/ababa/internal/tutor"
)

// scriptedDispatcher answers every request synchronously on a buffered
// channel. The first failures requests fail.
type scriptedDispatcher struct {
	events   chan tutor.Event
	failures int
	requests []tutor.Request
}

func (d *scriptedDispatcher) Dispatch(req tutor.Request) {
	d.requests = append(d.requests, req)
	if d.failures > 0 {
		d.failures--
		d.events <- tutor.Event{Key: req.Key, Kind: tutor.EventChunk, Text: "partial"}
		d.events <- tutor.Event{Key: req.Key, Kind: tutor.EventError, Err: errors.New("connection reset")}
		return
	}
	d.events <- tutor.Event{Key: req.Key, Kind: tutor.EventChunk, Text: "Subtract 5, "}
	d.events <- tutor.Event{Key: req.Key, Kind: tutor.EventChunk, Text: "then divide by 2."}
	d.events <- tutor.Event{Key: req.Key, Kind: tutor.EventComplete}
}

func explainFixture(t *testing.T, failures, retries int) (*explainHost, *quiz.Controller, *scriptedDispatcher, *bytes.Buffer) {
	t.Helper()
	d := &scriptedDispatcher{events: make(chan tutor.Event, 16), failures: failures}
	ctrl := quiz.NewController(d, nil, quiz.Config{}, zap.NewNop())
	ctrl.LoadQuiz(&content.QuizWithQuestions{
		Quiz: content.Quiz{ID: uuid.New(), Title: "Algebra"},
		Questions: []content.Question{{
			ID:           uuid.New(),
			Text:         "What is value of x in equation 2x + 5 = 15?",
			Options:      []string{"10", "5", "7.5", "20"},
			CorrectIndex: 1,
		}},
	})
	_, err := ctrl.OpenExplanationFor(0)
	require.NoError(t, err)

	var out bytes.Buffer
	host := &explainHost{ctrl: ctrl, events: d.events, out: &out, log: zap.NewNop(), retries: retries}
	return host, ctrl, d, &out
}

func TestExplainHostStreamsReply(t *testing.T) {
	host, ctrl, d, out := explainFixture(t, 0, 0)

	_, err := ctrl.StartExplanation()
	require.NoError(t, err)
	require.NoError(t, host.await(context.Background()))

	assert.Equal(t, "Tutor: Subtract 5, then divide by 2.\n", out.String())
	assert.Len(t, d.requests, 1)

	snap, ok := ctrl.Conversation()
	require.True(t, ok)
	assert.Equal(t, tutor.Ready, snap.State)
	require.Len(t, snap.Turns, 2)
	assert.Equal(t, "Subtract 5, then divide by 2.", snap.Turns[1].Text)
}

func TestExplainHostFollowUp(t *testing.T) {
	host, ctrl, d, _ := explainFixture(t, 0, 0)

	_, err := ctrl.StartExplanation()
	require.NoError(t, err)
	require.NoError(t, host.await(context.Background()))

	require.NoError(t, ctrl.SendFollowUp("Why subtract first?"))
	require.NoError(t, host.await(context.Background()))

	require.Len(t, d.requests, 2)
	assert.Len(t, d.requests[1].Turns, 3)
	snap, _ := ctrl.Conversation()
	assert.Len(t, snap.Turns, 4)
}

func TestExplainHostFailsWithoutRetries(t *testing.T) {
	host, ctrl, _, _ := explainFixture(t, 1, 0)

	_, err := ctrl.StartExplanation()
	require.NoError(t, err)
	err = host.await(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestExplainHostRetriesManually(t *testing.T) {
	host, ctrl, d, out := explainFixture(t, 1, 1)

	_, err := ctrl.StartExplanation()
	require.NoError(t, err)
	require.NoError(t, host.await(context.Background()))

	assert.Len(t, d.requests, 2)
	assert.Contains(t, out.String(), "retrying")

	snap, _ := ctrl.Conversation()
	require.Len(t, snap.Turns, 2)
	assert.Equal(t, "Subtract 5, then divide by 2.", snap.Turns[1].Text)
}

func TestExplainHostStopsOnCancel(t *testing.T) {
	host, _, _, _ := explainFixture(t, 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, host.await(ctx), context.Canceled)
}

func TestParseDifficulty(t *testing.T) {
	d, err := parseDifficulty("hard")
	require.NoError(t, err)
	assert.Equal(t, content.DifficultyHard, d)

	_, err = parseDifficulty("impossible")
	assert.Error(t, err)
}
