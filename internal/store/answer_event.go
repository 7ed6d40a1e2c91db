package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/ababa/ent"
	"github.com/abhisek/ababa/ent/answerevent"
	entquiz "github.com/abhisek/ababa/ent/quiz"
)

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AnswerEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetQuizID(data.QuizID).
		SetQuestionID(data.QuestionID).
		SetPosition(data.Position).
		SetOptionIndex(data.OptionIndex).
		SetCorrectIndex(data.CorrectIndex).
		SetCorrect(data.Correct).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	query := r.client.AnswerEvent.Query().
		Order(ent.Asc(answerevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(answerevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		query = query.Where(answerevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		query = query.Where(answerevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		query = query.Where(answerevent.TimestampLTE(opts.To))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}

	out := make([]AnswerEventRecord, 0, len(events))
	for _, e := range events {
		out = append(out, AnswerEventRecord{
			ID:        e.ID,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			AnswerEventData: AnswerEventData{
				SessionID:    e.SessionID,
				QuizID:       e.QuizID,
				QuestionID:   e.QuestionID,
				Position:     e.Position,
				OptionIndex:  e.OptionIndex,
				CorrectIndex: e.CorrectIndex,
				Correct:      e.Correct,
			},
		})
	}
	return out, nil
}

// AnswerStats folds the answer log so that a resubmitted position only
// counts with its latest answer.
func (r *eventRepo) AnswerStats(ctx context.Context) ([]QuizAnswerStats, error) {
	events, err := r.QueryAnswers(ctx, QueryOpts{})
	if err != nil {
		return nil, err
	}

	type slot struct {
		session  string
		position int
	}
	latest := make(map[uuid.UUID]map[slot]bool)
	sessions := make(map[uuid.UUID]map[string]struct{})
	var order []uuid.UUID
	for _, e := range events {
		if _, ok := latest[e.QuizID]; !ok {
			latest[e.QuizID] = make(map[slot]bool)
			sessions[e.QuizID] = make(map[string]struct{})
			order = append(order, e.QuizID)
		}
		latest[e.QuizID][slot{e.SessionID, e.Position}] = e.Correct
		sessions[e.QuizID][e.SessionID] = struct{}{}
	}

	titles, err := r.quizTitles(ctx, order)
	if err != nil {
		return nil, err
	}

	out := make([]QuizAnswerStats, 0, len(order))
	for _, id := range order {
		st := QuizAnswerStats{
			QuizID:   id,
			Title:    titles[id],
			Sessions: len(sessions[id]),
			Answered: len(latest[id]),
		}
		for _, ok := range latest[id] {
			if ok {
				st.Correct++
			}
		}
		out = append(out, st)
	}
	return out, nil
}

func (r *eventRepo) quizTitles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	quizzes, err := r.client.Quiz.Query().
		Where(entquiz.IDIn(ids...)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query quiz titles: %w", err)
	}
	for _, q := range quizzes {
		out[q.ID] = q.Title
	}
	return out, nil
}
