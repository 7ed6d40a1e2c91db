package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/content"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"grades", "subjects", "quizzes", "questions", "answer_events", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestOpenTwiceIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := OpenWith(context.Background(), Options{Driver: "mysql"})
	require.Error(t, err)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Open already created the counter; a second one shares its row.
	sc, err := newSequenceCounter(ctx, s.DB())
	require.NoError(t, err)

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		require.NoError(t, err)
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		assert.Equal(t, int64(i+1), seq, "seq[%d]", i)
	}
}

func TestClientSeesRepoWrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.ContentRepo().CreateGrade(ctx, "Grade 11")
	require.NoError(t, err)

	count, err := s.Client().Grade.Query().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQuizTableName(t *testing.T) {
	s := openTestStore(t)
	_, _, q := seedCatalogue(t, s.ContentRepo())

	var title string
	err := s.DB().QueryRow("SELECT title FROM quizzes WHERE id = ?", q.ID).Scan(&title)
	require.NoError(t, err)
	assert.Equal(t, q.Title, title)
}

func seedCatalogue(t *testing.T, r *ContentRepo) (content.Grade, content.Subject, content.Quiz) {
	t.Helper()
	ctx := context.Background()

	g, err := r.CreateGrade(ctx, "Grade 12")
	require.NoError(t, err)
	s, err := r.CreateSubject(ctx, content.Subject{Name: "Mathematics", Icon: "∑", Color: "#4F46E5", GradeID: g.ID, Students: 1200, Rating: "4.8"})
	require.NoError(t, err)
	q, err := r.CreateQuiz(ctx, content.Quiz{Title: content.NationalExamTitle("Mathematics"), Difficulty: content.DifficultyHard, SubjectID: s.ID})
	require.NoError(t, err)

	_, err = r.AddQuestions(ctx, q.ID, []content.Question{
		{
			Text:         "What is value of x in equation 2x + 5 = 15?",
			Options:      []string{"5", "7", "8", "10"},
			CorrectIndex: 0,
			Explanation:  "Subtract 5 from both sides: 2x = 10. Then divide by 2: x = 5.",
		},
		{Text: "What is 3 squared?", Options: []string{"6", "9"}, CorrectIndex: 1},
	})
	require.NoError(t, err)
	return g, s, q
}

func TestContentCreateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	r := s.ContentRepo()
	ctx := context.Background()

	g1, sub1, q1 := seedCatalogue(t, r)

	g2, err := r.CreateGrade(ctx, "Grade 12")
	require.NoError(t, err)
	assert.Equal(t, g1.ID, g2.ID)

	sub2, err := r.CreateSubject(ctx, content.Subject{Name: "Mathematics", GradeID: g1.ID})
	require.NoError(t, err)
	assert.Equal(t, sub1.ID, sub2.ID)
	assert.Equal(t, "4.8", sub2.Rating, "existing subject is returned unchanged")

	q2, err := r.CreateQuiz(ctx, content.Quiz{Title: q1.Title, SubjectID: sub1.ID})
	require.NoError(t, err)
	assert.Equal(t, q1.ID, q2.ID)

	n, err := r.AddQuestions(ctx, q1.ID, []content.Question{
		{Text: "What is 3 squared?", Options: []string{"6", "9"}, CorrectIndex: 1},
	})
	require.NoError(t, err)
	assert.Zero(t, n)

	grades, err := r.Grades(ctx)
	require.NoError(t, err)
	assert.Len(t, grades, 1)
}

func TestContentLookups(t *testing.T) {
	s := openTestStore(t)
	r := s.ContentRepo()
	ctx := context.Background()

	g, sub, q := seedCatalogue(t, r)

	subjects, err := r.Subjects(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, 1200, subjects[0].Students)

	quizzes, err := r.Quizzes(ctx, sub.ID)
	require.NoError(t, err)
	require.Len(t, quizzes, 1)
	assert.Equal(t, 2, quizzes[0].QuestionsCount)
	assert.Equal(t, content.DifficultyHard, quizzes[0].Difficulty)

	full, err := r.Quiz(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", full.SubjectName)
	require.Len(t, full.Questions, 2)
	assert.Equal(t, []string{"5", "7", "8", "10"}, full.Questions[0].Options)
	assert.True(t, full.Questions[0].HasExplanation())
	assert.False(t, full.Questions[1].HasExplanation())

	_, err = r.Quiz(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = r.Subjects(ctx, uuid.Nil)
	assert.ErrorIs(t, err, content.ErrMissingParameter)
}

func TestNationalExamAndFeed(t *testing.T) {
	s := openTestStore(t)
	r := s.ContentRepo()
	ctx := context.Background()

	seedCatalogue(t, r)

	exam, err := r.NationalExam(ctx, "mathematics")
	require.NoError(t, err)
	assert.Equal(t, "National Exam - Mathematics", exam.Title)
	assert.Equal(t, 2, exam.Len())

	_, err = r.NationalExam(ctx, "biology")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.NationalExam(ctx, "astrology")
	assert.ErrorIs(t, err, ErrNotFound)

	feed, err := r.Feed(ctx, "mathematics")
	require.NoError(t, err)
	assert.Equal(t, content.FeedTitle, feed.Title)
	assert.Equal(t, content.DifficultyMedium, feed.Difficulty)
	assert.Equal(t, "Mathematics", feed.SubjectName)
	assert.Equal(t, 2, feed.Len())

	// Unknown slug falls back to the national exam pool.
	fallback, err := r.Feed(ctx, "astrology")
	require.NoError(t, err)
	assert.Equal(t, 2, fallback.Len())
	assert.Empty(t, fallback.SubjectName)
}

func TestFeedLimit(t *testing.T) {
	s := openTestStore(t)
	r := s.ContentRepo()
	ctx := context.Background()

	_, sub, _ := seedCatalogue(t, r)
	practice, err := r.CreateQuiz(ctx, content.Quiz{Title: "Practice", SubjectID: sub.ID})
	require.NoError(t, err)

	var qs []content.Question
	for i := 0; i < 15; i++ {
		qs = append(qs, content.Question{
			Text:    "Practice question " + string(rune('A'+i)),
			Options: []string{"yes", "no"},
		})
	}
	_, err = r.AddQuestions(ctx, practice.ID, qs)
	require.NoError(t, err)

	feed, err := r.Feed(ctx, "mathematics")
	require.NoError(t, err)
	assert.Equal(t, content.FeedSubjectLimit, feed.Len())
}

func TestAddQuestionsValidates(t *testing.T) {
	s := openTestStore(t)
	r := s.ContentRepo()
	_, _, q := seedCatalogue(t, r)

	_, err := r.AddQuestions(context.Background(), q.ID, []content.Question{
		{Text: "Broken", Options: []string{"only"}},
	})
	assert.ErrorIs(t, err, content.ErrInvalidQuestion)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "explain", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, Streamed: true, ResponseBody: "x = 5"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "explain", InputTokens: 120, OutputTokens: 30, LatencyMs: 400, Success: false, Streamed: true, ErrorMessage: "503"},
		{Provider: "anthropic", Model: "claude-haiku-4-5-20251001", Purpose: "quiz-gen", InputTokens: 900, OutputTokens: 700, LatencyMs: 3000, Success: true, RequestBody: `{"system":"..."}`},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "quiz-gen", all[0].Purpose, "newest first")
	assert.Greater(t, all[0].Sequence, all[1].Sequence)

	explain, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "explain", Limit: 1})
	require.NoError(t, err)
	require.Len(t, explain, 1)
	assert.Equal(t, "503", explain[0].ErrorMessage)

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Streamed)
	assert.Equal(t, "x = 5", got.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsageStats{Purpose: "explain", Calls: 2, InputTokens: 220, OutputTokens: 80, AvgLatencyMs: 300}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "anthropic", byModel[0].Provider)
	assert.Equal(t, 1600, byModel[0].InputTokens+byModel[0].OutputTokens)
}

func TestAnswerStatsCountsLatestAnswer(t *testing.T) {
	s := openTestStore(t)
	r := s.ContentRepo()
	repo := s.EventRepo()
	ctx := context.Background()

	_, _, q := seedCatalogue(t, r)
	full, err := r.Quiz(ctx, q.ID)
	require.NoError(t, err)

	record := func(session string, pos, opt int) {
		t.Helper()
		question := full.Questions[pos]
		require.NoError(t, repo.AppendAnswer(ctx, AnswerEventData{
			SessionID:    session,
			QuizID:       q.ID,
			QuestionID:   question.ID,
			Position:     pos,
			OptionIndex:  opt,
			CorrectIndex: question.CorrectIndex,
			Correct:      opt == question.CorrectIndex,
		}))
	}

	record("s1", 0, 2) // wrong
	record("s1", 0, 0) // changed to right
	record("s1", 1, 0) // wrong
	record("s2", 0, 0) // right

	answers, err := repo.QueryAnswers(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, answers, 4)

	stats, err := repo.AnswerStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	st := stats[0]
	assert.Equal(t, full.Title, st.Title)
	assert.Equal(t, 2, st.Sessions)
	assert.Equal(t, 3, st.Answered)
	assert.Equal(t, 2, st.Correct)
	assert.InDelta(t, 2.0/3, st.Accuracy(), 1e-9)
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "explain", Success: true}))
	require.NoError(t, repo.AppendAnswer(ctx, AnswerEventData{SessionID: "s", QuizID: uuid.New(), QuestionID: uuid.New()}))

	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	answers, err := repo.QueryAnswers(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), llmEvents[0].Sequence)
	assert.Equal(t, int64(2), answers[0].Sequence)

	after, err := repo.QueryAnswers(ctx, QueryOpts{After: 2})
	require.NoError(t, err)
	assert.Empty(t, after)
}
