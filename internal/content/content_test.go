package content

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		q       Question
		wantErr bool
	}{
		{"valid", Question{Text: "2+2?", Options: []string{"3", "4"}, CorrectIndex: 1}, false},
		{"empty text", Question{Text: " ", Options: []string{"3", "4"}}, true},
		{"one option", Question{Text: "x", Options: []string{"3"}}, true},
		{"negative index", Question{Text: "x", Options: []string{"a", "b"}, CorrectIndex: -1}, true},
		{"index past end", Question{Text: "x", Options: []string{"a", "b"}, CorrectIndex: 2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.q)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidQuestion) {
				t.Fatalf("expected ErrInvalidQuestion, got %v", err)
			}
		})
	}
}

func TestValidateQuiz(t *testing.T) {
	q := &QuizWithQuestions{
		Quiz: Quiz{Title: "Algebra", Difficulty: DifficultyHard},
		Questions: []Question{
			{Text: "ok", Options: []string{"a", "b"}, CorrectIndex: 0},
			{Text: "bad", Options: []string{"a", "b"}, CorrectIndex: 5},
		},
	}
	if err := ValidateQuiz(q); err == nil {
		t.Fatal("expected error for question 1")
	}

	q.Questions = q.Questions[:1]
	if err := ValidateQuiz(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q.Difficulty = "Impossible"
	if err := ValidateQuiz(q); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestSubjectForSlug(t *testing.T) {
	if name, ok := SubjectForSlug("civics"); !ok || name != "Civics" {
		t.Fatalf("SubjectForSlug(civics) = %q, %v", name, ok)
	}
	if _, ok := SubjectForSlug("physics"); ok {
		t.Fatal("physics has no slug mapping")
	}
	if got := NationalExamTitle("Biology"); got != "National Exam - Biology" {
		t.Fatalf("NationalExamTitle = %q", got)
	}
	if len(SubjectSlugs()) != 4 {
		t.Fatalf("expected 4 slugs, got %v", SubjectSlugs())
	}
}

func TestCorrectOption(t *testing.T) {
	q := Question{Options: []string{"5", "7"}, CorrectIndex: 1}
	if q.CorrectOption() != "7" {
		t.Fatalf("CorrectOption = %q", q.CorrectOption())
	}
	q.CorrectIndex = 9
	if q.CorrectOption() != "" {
		t.Fatal("expected empty option for invalid index")
	}
	var nilQuiz *QuizWithQuestions
	if nilQuiz.Len() != 0 {
		t.Fatal("nil quiz should have zero length")
	}
}
