package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ababa/internal/content"
	"github.com/abhisek/ababa/internal/llm"
)

func validQuizJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Linear Equations Practice",
		"questions": [
			{
				"text": "What is value of x in equation 2x + 5 = 15?",
				"options": ["5", "7", "8", "10"],
				"correct_index": 0,
				"explanation": "Subtract 5 from both sides: 2x = 10. Then divide by 2: x = 5."
			},
			{
				"text": "Solve for y: 3y - 4 = 11",
				"options": ["3", "5", "7", "15"],
				"correct_index": 1,
				"explanation": "Add 4 to both sides: 3y = 15. Divide by 3: y = 5."
			}
		]
	}`)
}

func testInput() Input {
	return Input{Subject: "Mathematics", Grade: "Grade 12", Topic: "Linear equations", Count: 2}
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuizJSON()})
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Generate(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "Linear Equations Practice", q.Title)
	assert.Equal(t, content.DifficultyMedium, q.Difficulty)
	assert.Equal(t, "Mathematics", q.SubjectName)
	require.Len(t, q.Questions, 2)
	assert.Equal(t, "5", q.Questions[1].CorrectOption())
	assert.NoError(t, content.ValidateQuiz(q))

	call, ok := mock.LastCall()
	require.True(t, ok)
	assert.Same(t, QuizSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "Topic: Linear equations")
	assert.Contains(t, call.Messages[0].Content, "Number of questions: 2")
}

func TestGenerateRetriesWithFeedback(t *testing.T) {
	bad := json.RawMessage(`{
		"title": "Broken",
		"questions": [
			{"text": "Pick one", "options": ["a", "a", "b", "c"], "correct_index": 0, "explanation": "Because."},
			{"text": "Pick two", "options": ["a", "b", "c", "d"], "correct_index": 0, "explanation": "Because."}
		]
	}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: bad},
		llm.MockResponse{Content: validQuizJSON()},
	)
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Generate(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, "Linear Equations Practice", q.Title)
	assert.Equal(t, 2, mock.CallCount())

	call, _ := mock.LastCall()
	assert.Contains(t, call.Messages[0].Content, "previous attempt was rejected")
	assert.Contains(t, call.Messages[0].Content, `duplicate option "a"`)
}

func TestGenerateGivesUpAfterMaxRetries(t *testing.T) {
	bad := json.RawMessage(`{"title": "", "questions": []}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: bad},
		llm.MockResponse{Content: bad},
		llm.MockResponse{Content: bad},
	)
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), testInput())
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr), "got %v", err)
	assert.Equal(t, "structural", valErr.Validator)
	assert.Equal(t, 3, mock.CallCount())
}

func TestGenerateProviderErrorIsNotRetried(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), testInput())
	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateRejectsBadInput(t *testing.T) {
	gen := New(llm.NewMockProvider(), DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), Input{})
	assert.ErrorIs(t, err, content.ErrMissingParameter)

	_, err = gen.Generate(context.Background(), Input{Subject: "Biology", Difficulty: "Extreme"})
	assert.Error(t, err)
}

func TestGenerateCountDefaults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("stop")})
	cfg := DefaultConfig()
	gen := New(mock, cfg, nil)

	_, _ = gen.Generate(context.Background(), Input{Subject: "Civics", Count: 500})
	call, _ := mock.LastCall()
	assert.Contains(t, call.Messages[0].Content, "Number of questions: 20")
}

func TestValidators(t *testing.T) {
	base := func() *content.QuizWithQuestions {
		return &content.QuizWithQuestions{
			Quiz: content.Quiz{Title: "Cells"},
			Questions: []content.Question{{
				Text:         "Which organelle produces most of the cell's ATP?",
				Options:      []string{"Mitochondrion", "Ribosome", "Golgi apparatus", "Lysosome"},
				CorrectIndex: 0,
				Explanation:  "Mitochondria carry out aerobic respiration.",
			}},
		}
	}

	tests := []struct {
		name      string
		mutate    func(q *content.QuizWithQuestions)
		input     Input
		validator Validator
		wantFail  bool
	}{
		{"valid structural", func(*content.QuizWithQuestions) {}, Input{Count: 1}, &StructuralValidator{}, false},
		{"wrong count", func(*content.QuizWithQuestions) {}, Input{Count: 3}, &StructuralValidator{}, true},
		{"missing explanation", func(q *content.QuizWithQuestions) { q.Questions[0].Explanation = " " }, Input{}, &StructuralValidator{}, true},
		{"three options", func(q *content.QuizWithQuestions) { q.Questions[0].Options = q.Questions[0].Options[:3] }, Input{}, &OptionsValidator{}, true},
		{"index out of range", func(q *content.QuizWithQuestions) { q.Questions[0].CorrectIndex = 4 }, Input{}, &OptionsValidator{}, true},
		{"case-insensitive duplicate", func(q *content.QuizWithQuestions) { q.Questions[0].Options[1] = "mitochondrion." }, Input{}, &OptionsValidator{}, true},
		{"empty option", func(q *content.QuizWithQuestions) { q.Questions[0].Options[2] = "" }, Input{}, &OptionsValidator{}, true},
		{"answer leak", func(q *content.QuizWithQuestions) {
			q.Questions[0].Text = "The mitochondrion produces ATP. Which organelle produces ATP?"
		}, Input{}, &AnswerLeakValidator{}, true},
		{"short numeric answer is not a leak", func(q *content.QuizWithQuestions) {
			q.Questions[0].Text = "What is value of x in equation 2x + 5 = 15?"
			q.Questions[0].Options = []string{"5", "7", "8", "10"}
		}, Input{}, &AnswerLeakValidator{}, false},
		{"prior duplicate", func(*content.QuizWithQuestions) {}, Input{PriorQuestions: []string{"which organelle produces most of the cell's ATP"}}, &DuplicateValidator{}, true},
		{"internal duplicate", func(q *content.QuizWithQuestions) { q.Questions = append(q.Questions, q.Questions[0]) }, Input{}, &DuplicateValidator{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base()
			tt.mutate(q)
			err := tt.validator.Validate(q, tt.input)
			if tt.wantFail {
				require.NotNil(t, err)
				assert.True(t, err.Retryable)
				assert.Equal(t, tt.validator.Name(), err.Validator)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Validator: "options", Question: 2, Message: "duplicate option"}
	assert.Equal(t, `validator "options": question 3: duplicate option`, err.Error())

	err.Question = -1
	assert.Equal(t, `validator "options": duplicate option`, err.Error())
}

func TestBuildDedup(t *testing.T) {
	assert.Equal(t, "None", buildDedup(nil, 5))

	got := buildDedup([]string{"a", "b", "c"}, 2)
	assert.Equal(t, "1. b\n2. c", got)
	assert.False(t, strings.Contains(got, "a"))
}
