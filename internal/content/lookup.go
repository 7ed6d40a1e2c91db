package content

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

const (
	// FeedSubjectLimit caps the feed drawn from a single subject.
	FeedSubjectLimit = 10

	// FeedFallbackLimit caps the feed drawn from national exam quizzes.
	FeedFallbackLimit = 20

	// FeedTitle is the title of the synthetic quiz a feed is served as.
	FeedTitle = "Quiz Feed"

	// NationalExamPrefix starts the title of every national exam quiz.
	NationalExamPrefix = "National Exam -"
)

// subjectSlugs maps URL-style subject keys to catalogue subject names.
var subjectSlugs = map[string]string{
	"mathematics": "Mathematics",
	"biology":     "Biology",
	"civics":      "Civics",
	"english":     "English",
}

// SubjectForSlug resolves a subject slug such as "mathematics".
func SubjectForSlug(slug string) (string, bool) {
	name, ok := subjectSlugs[slug]
	return name, ok
}

// SubjectSlugs returns the known slugs in sorted order.
func SubjectSlugs() []string {
	out := make([]string, 0, len(subjectSlugs))
	for k := range subjectSlugs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NationalExamTitle returns the quiz title used for a subject's national
// exam, e.g. "National Exam - Mathematics".
func NationalExamTitle(subjectName string) string {
	return NationalExamPrefix + " " + subjectName
}

// Lookup is the read side of the catalogue.
type Lookup interface {
	// Grades returns every grade ordered by name.
	Grades(ctx context.Context) ([]Grade, error)

	// Subjects returns the subjects of a grade.
	Subjects(ctx context.Context, gradeID uuid.UUID) ([]Subject, error)

	// Quizzes returns the quizzes of a subject, without questions.
	Quizzes(ctx context.Context, subjectID uuid.UUID) ([]Quiz, error)

	// Quiz returns a quiz with its ordered questions.
	Quiz(ctx context.Context, id uuid.UUID) (*QuizWithQuestions, error)

	// Feed returns a short-form question feed for a subject slug, falling
	// back to national exam questions.
	Feed(ctx context.Context, subjectSlug string) (*QuizWithQuestions, error)

	// NationalExam returns the national exam quiz for a subject slug.
	NationalExam(ctx context.Context, subjectSlug string) (*QuizWithQuestions, error)
}
