package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/ababa/ent"
	"github.com/abhisek/ababa/ent/grade"
	"github.com/abhisek/ababa/ent/predicate"
	"github.com/abhisek/ababa/ent/question"
	entquiz "github.com/abhisek/ababa/ent/quiz"
	"github.com/abhisek/ababa/ent/subject"
	"github.com/abhisek/ababa/internal/content"
)

// ContentRepo is the catalogue repository. It implements content.Lookup
// and the idempotent writes used by the seed loader and quiz authoring.
type ContentRepo struct {
	client *ent.Client
}

var _ content.Lookup = (*ContentRepo)(nil)

// Grades returns every grade ordered by name.
func (r *ContentRepo) Grades(ctx context.Context) ([]content.Grade, error) {
	rows, err := r.client.Grade.Query().
		Order(ent.Asc(grade.FieldName)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query grades: %w", err)
	}

	out := make([]content.Grade, 0, len(rows))
	for _, g := range rows {
		out = append(out, toGrade(g))
	}
	return out, nil
}

// Subjects returns the subjects of a grade ordered by name.
func (r *ContentRepo) Subjects(ctx context.Context, gradeID uuid.UUID) ([]content.Subject, error) {
	if gradeID == uuid.Nil {
		return nil, fmt.Errorf("%w: grade id", content.ErrMissingParameter)
	}
	return r.querySubjects(ctx, subject.GradeID(gradeID))
}

// Quizzes returns the quizzes of a subject ordered by title.
func (r *ContentRepo) Quizzes(ctx context.Context, subjectID uuid.UUID) ([]content.Quiz, error) {
	if subjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: subject id", content.ErrMissingParameter)
	}
	return r.queryQuizzes(ctx, entquiz.SubjectID(subjectID))
}

// Quiz returns a quiz with its ordered questions and subject name.
func (r *ContentRepo) Quiz(ctx context.Context, id uuid.UUID) (*content.QuizWithQuestions, error) {
	q, err := r.client.Quiz.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, fmt.Errorf("quiz %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("query quiz: %w", err)
	}
	return r.withQuestions(ctx, toQuiz(q))
}

// NationalExam returns the national exam quiz for a subject slug.
func (r *ContentRepo) NationalExam(ctx context.Context, subjectSlug string) (*content.QuizWithQuestions, error) {
	name, ok := content.SubjectForSlug(subjectSlug)
	if !ok {
		return nil, fmt.Errorf("subject %q: %w", subjectSlug, ErrNotFound)
	}

	q, err := r.client.Quiz.Query().
		Where(entquiz.Title(content.NationalExamTitle(name))).
		Order(ent.Asc(entquiz.FieldCreatedAt)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, fmt.Errorf("national exam for %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("query national exam: %w", err)
	}
	return r.withQuestions(ctx, toQuiz(q))
}

// Feed returns up to content.FeedSubjectLimit questions from the subject
// named by slug. An unknown slug, or a subject without questions, falls
// back to up to content.FeedFallbackLimit national exam questions.
func (r *ContentRepo) Feed(ctx context.Context, subjectSlug string) (*content.QuizWithQuestions, error) {
	feed := &content.QuizWithQuestions{
		Quiz: content.Quiz{
			ID:         uuid.NewSHA1(uuid.NameSpaceURL, []byte("ababa:feed:"+subjectSlug)),
			Title:      content.FeedTitle,
			Difficulty: content.DifficultyMedium,
			CreatedAt:  time.Now().UTC(),
		},
	}

	if name, ok := content.SubjectForSlug(subjectSlug); ok {
		subjectIDs, err := r.client.Subject.Query().
			Where(subject.Name(name)).
			IDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("query subjects: %w", err)
		}
		if len(subjectIDs) > 0 {
			qs, err := r.questionsOf(ctx, entquiz.SubjectIDIn(subjectIDs...), content.FeedSubjectLimit)
			if err != nil {
				return nil, err
			}
			if len(qs) > 0 {
				feed.Questions = qs
				feed.SubjectName = name
				feed.QuestionsCount = len(qs)
				return feed, nil
			}
		}
	}

	qs, err := r.questionsOf(ctx, entquiz.TitleHasPrefix(content.NationalExamPrefix), content.FeedFallbackLimit)
	if err != nil {
		return nil, err
	}
	feed.Questions = qs
	feed.QuestionsCount = len(qs)
	return feed, nil
}

// CreateGrade returns the grade called name, creating it if needed.
func (r *ContentRepo) CreateGrade(ctx context.Context, name string) (content.Grade, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return content.Grade{}, fmt.Errorf("%w: grade name", content.ErrMissingParameter)
	}

	g, err := r.client.Grade.Query().Where(grade.Name(name)).Only(ctx)
	if err == nil {
		return toGrade(g), nil
	}
	if !ent.IsNotFound(err) {
		return content.Grade{}, fmt.Errorf("load grade %q: %w", name, err)
	}

	g, err = r.client.Grade.Create().
		SetName(name).
		Save(ctx)
	if err != nil {
		return content.Grade{}, fmt.Errorf("create grade %q: %w", name, err)
	}
	return toGrade(g), nil
}

// CreateSubject returns the subject with s.Name in s.GradeID, creating it
// if needed. An existing subject is returned unchanged.
func (r *ContentRepo) CreateSubject(ctx context.Context, s content.Subject) (content.Subject, error) {
	if s.GradeID == uuid.Nil || strings.TrimSpace(s.Name) == "" {
		return content.Subject{}, fmt.Errorf("%w: subject name and grade", content.ErrMissingParameter)
	}

	existing, err := r.client.Subject.Query().
		Where(subject.GradeID(s.GradeID), subject.Name(s.Name)).
		Only(ctx)
	if err == nil {
		return toSubject(existing), nil
	}
	if !ent.IsNotFound(err) {
		return content.Subject{}, fmt.Errorf("load subject %q: %w", s.Name, err)
	}

	created, err := r.client.Subject.Create().
		SetName(s.Name).
		SetIcon(s.Icon).
		SetColor(s.Color).
		SetGradeID(s.GradeID).
		SetStudents(s.Students).
		SetRating(s.Rating).
		Save(ctx)
	if err != nil {
		return content.Subject{}, fmt.Errorf("create subject %q: %w", s.Name, err)
	}
	return toSubject(created), nil
}

// CreateQuiz returns the quiz titled q.Title in q.SubjectID, creating it if
// needed. An empty difficulty defaults to Medium.
func (r *ContentRepo) CreateQuiz(ctx context.Context, q content.Quiz) (content.Quiz, error) {
	if q.SubjectID == uuid.Nil || strings.TrimSpace(q.Title) == "" {
		return content.Quiz{}, fmt.Errorf("%w: quiz title and subject", content.ErrMissingParameter)
	}
	if q.Difficulty == "" {
		q.Difficulty = content.DifficultyMedium
	}
	if !q.Difficulty.Valid() {
		return content.Quiz{}, fmt.Errorf("unknown difficulty %q", q.Difficulty)
	}

	existing, err := r.client.Quiz.Query().
		Where(entquiz.SubjectID(q.SubjectID), entquiz.Title(q.Title)).
		Only(ctx)
	if err == nil {
		return toQuiz(existing), nil
	}
	if !ent.IsNotFound(err) {
		return content.Quiz{}, fmt.Errorf("load quiz %q: %w", q.Title, err)
	}

	created, err := r.client.Quiz.Create().
		SetTitle(q.Title).
		SetDifficulty(entquiz.Difficulty(q.Difficulty)).
		SetSubjectID(q.SubjectID).
		Save(ctx)
	if err != nil {
		return content.Quiz{}, fmt.Errorf("create quiz %q: %w", q.Title, err)
	}
	return toQuiz(created), nil
}

// AddQuestions appends questions to a quiz. Questions whose text is already
// in the quiz are skipped. It returns the number of rows inserted and keeps
// the quiz's questions_count in step.
func (r *ContentRepo) AddQuestions(ctx context.Context, quizID uuid.UUID, questions []content.Question) (int, error) {
	if quizID == uuid.Nil {
		return 0, fmt.Errorf("%w: quiz id", content.ErrMissingParameter)
	}
	for i, q := range questions {
		if err := content.Validate(q); err != nil {
			return 0, fmt.Errorf("question %d: %w", i, err)
		}
	}

	existing, err := r.client.Question.Query().
		Where(question.QuizID(quizID)).
		All(ctx)
	if err != nil {
		return 0, fmt.Errorf("query questions: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, q := range existing {
		seen[q.Text] = true
	}

	tx, err := r.client.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	position := len(existing)
	inserted := 0
	now := time.Now().UTC()
	for _, q := range questions {
		if seen[q.Text] {
			continue
		}
		seen[q.Text] = true

		create := tx.Question.Create().
			SetQuizID(quizID).
			SetPosition(position).
			SetText(q.Text).
			SetOptions(q.Options).
			SetCorrectIndex(q.CorrectIndex).
			SetExplanation(q.Explanation).
			// Distinct timestamps keep creation order stable on coarse clocks.
			SetCreatedAt(now.Add(time.Duration(position) * time.Microsecond))
		if q.ID != uuid.Nil {
			create.SetID(q.ID)
		}
		if _, err := create.Save(ctx); err != nil {
			return 0, fmt.Errorf("insert question: %w", err)
		}
		position++
		inserted++
	}

	if err := tx.Quiz.UpdateOneID(quizID).SetQuestionsCount(position).Exec(ctx); err != nil {
		if ent.IsNotFound(err) {
			return 0, fmt.Errorf("quiz %s: %w", quizID, ErrNotFound)
		}
		return 0, fmt.Errorf("update question count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// SaveQuiz creates q under subjectID together with its questions.
func (r *ContentRepo) SaveQuiz(ctx context.Context, subjectID uuid.UUID, q *content.QuizWithQuestions) (*content.QuizWithQuestions, error) {
	if err := content.ValidateQuiz(q); err != nil {
		return nil, err
	}
	header := q.Quiz
	header.SubjectID = subjectID
	created, err := r.CreateQuiz(ctx, header)
	if err != nil {
		return nil, err
	}
	if _, err := r.AddQuestions(ctx, created.ID, q.Questions); err != nil {
		return nil, err
	}
	return r.Quiz(ctx, created.ID)
}

func (r *ContentRepo) querySubjects(ctx context.Context, where ...predicate.Subject) ([]content.Subject, error) {
	rows, err := r.client.Subject.Query().
		Where(where...).
		Order(ent.Asc(subject.FieldName)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}

	out := make([]content.Subject, 0, len(rows))
	for _, s := range rows {
		out = append(out, toSubject(s))
	}
	return out, nil
}

func (r *ContentRepo) queryQuizzes(ctx context.Context, where ...predicate.Quiz) ([]content.Quiz, error) {
	rows, err := r.client.Quiz.Query().
		Where(where...).
		Order(ent.Asc(entquiz.FieldTitle)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}

	out := make([]content.Quiz, 0, len(rows))
	for _, q := range rows {
		out = append(out, toQuiz(q))
	}
	return out, nil
}

// questionsOf returns the questions of every quiz matching quizWhere,
// ordered by creation time then id.
func (r *ContentRepo) questionsOf(ctx context.Context, quizWhere predicate.Quiz, limit int) ([]content.Question, error) {
	quizIDs, err := r.client.Quiz.Query().Where(quizWhere).IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("query quizzes: %w", err)
	}
	if len(quizIDs) == 0 {
		return nil, nil
	}

	query := r.client.Question.Query().
		Where(question.QuizIDIn(quizIDs...)).
		Order(ent.Asc(question.FieldCreatedAt), ent.Asc(question.FieldID))
	if limit > 0 {
		query = query.Limit(limit)
	}

	rows, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return toQuestions(rows), nil
}

func (r *ContentRepo) withQuestions(ctx context.Context, q content.Quiz) (*content.QuizWithQuestions, error) {
	rows, err := r.client.Question.Query().
		Where(question.QuizID(q.ID)).
		Order(ent.Asc(question.FieldPosition)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	out := &content.QuizWithQuestions{Quiz: q, Questions: toQuestions(rows)}

	s, err := r.client.Subject.Get(ctx, q.SubjectID)
	switch {
	case err == nil:
		out.SubjectName = s.Name
	case !ent.IsNotFound(err):
		return nil, fmt.Errorf("load subject name: %w", err)
	}
	return out, nil
}

func toGrade(g *ent.Grade) content.Grade {
	return content.Grade{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
}

func toSubject(s *ent.Subject) content.Subject {
	return content.Subject{
		ID:        s.ID,
		Name:      s.Name,
		Icon:      s.Icon,
		Color:     s.Color,
		GradeID:   s.GradeID,
		Students:  s.Students,
		Rating:    s.Rating,
		CreatedAt: s.CreatedAt,
	}
}

func toQuiz(q *ent.Quiz) content.Quiz {
	return content.Quiz{
		ID:             q.ID,
		Title:          q.Title,
		Difficulty:     content.Difficulty(q.Difficulty),
		QuestionsCount: q.QuestionsCount,
		SubjectID:      q.SubjectID,
		CreatedAt:      q.CreatedAt,
	}
}

func toQuestions(rows []*ent.Question) []content.Question {
	out := make([]content.Question, 0, len(rows))
	for _, q := range rows {
		out = append(out, content.Question{
			ID:           q.ID,
			QuizID:       q.QuizID,
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
			CreatedAt:    q.CreatedAt,
		})
	}
	return out
}
