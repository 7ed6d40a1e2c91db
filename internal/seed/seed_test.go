package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBundledDataIsValid(t *testing.T) {
	s := openStore(t)
	sum, err := Load(context.Background(), s.ContentRepo())
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Grades)
	assert.Equal(t, 6, sum.Subjects)
	assert.Greater(t, sum.Quizzes, 6)
	assert.Greater(t, sum.Questions, 20)
}

func TestLoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	repo := s.ContentRepo()

	first, err := Load(ctx, repo)
	require.NoError(t, err)
	second, err := Load(ctx, repo)
	require.NoError(t, err)

	assert.Equal(t, first.Subjects, second.Subjects)
	assert.Zero(t, second.Questions)

	grades, err := repo.Grades(ctx)
	require.NoError(t, err)
	assert.Len(t, grades, 4)
}

func TestSeededNationalExams(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	repo := s.ContentRepo()
	_, err := Load(ctx, repo)
	require.NoError(t, err)

	for _, slug := range content.SubjectSlugs() {
		exam, err := repo.NationalExam(ctx, slug)
		require.NoError(t, err, slug)
		assert.Len(t, exam.Questions, 5, slug)
		assert.Equal(t, 5, exam.QuestionsCount, slug)
	}

	exam, err := repo.NationalExam(ctx, "mathematics")
	require.NoError(t, err)
	first := exam.Questions[0]
	assert.Equal(t, "What is value of x in equation 2x + 5 = 15?", first.Text)
	assert.Equal(t, "5", first.CorrectOption())
	assert.True(t, first.HasExplanation())
}

func TestLoadDataRejectsUnknownGrade(t *testing.T) {
	s := openStore(t)
	_, err := LoadData(context.Background(), s.ContentRepo(), []byte(`
grades: ["12"]
subjects:
  - name: Physics
    grade: "11"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown grade")
}

func TestLoadDataRejectsInvalidQuestion(t *testing.T) {
	s := openStore(t)
	_, err := LoadData(context.Background(), s.ContentRepo(), []byte(`
grades: ["12"]
subjects:
  - name: Physics
    grade: "12"
    quizzes:
      - title: Broken
        difficulty: Easy
        questions:
          - text: "Pick one"
            options: ["a", "b"]
            correct_index: 5
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}

func TestLoadDataBadYAML(t *testing.T) {
	s := openStore(t)
	_, err := LoadData(context.Background(), s.ContentRepo(), []byte("grades: [unterminated"))
	assert.Error(t, err)
}
