package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/ababa/internal/router"
)

func testResult() Result {
	return Result{
		Title: "National Exam - Mathematics",
		Items: []Item{
			{Text: "What is value of x in equation 2x + 5 = 15?", Answered: true, Correct: true, Chosen: "5", Answer: "5"},
			{Text: "Simplify 3(x + 2) - 2x.", Answered: true, Chosen: "x + 2", Answer: "x + 6"},
			{Text: "What is the slope of y = 4x - 1?"},
		},
	}
}

func TestResultCounts(t *testing.T) {
	r := testResult()
	if r.Answered() != 2 {
		t.Errorf("Answered = %d, want 2", r.Answered())
	}
	if r.Correct() != 1 {
		t.Errorf("Correct = %d, want 1", r.Correct())
	}
	if r.Accuracy() != 0.5 {
		t.Errorf("Accuracy = %v, want 0.5", r.Accuracy())
	}
	if (Result{}).Accuracy() != 0 {
		t.Error("empty result should have zero accuracy")
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult())
	view := s.View(100, 30)
	for _, want := range []string{"Quiz paused", "National Exam - Mathematics", "Answered: 2/3", "x + 6"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Complete(t *testing.T) {
	r := testResult()
	r.Items = r.Items[:2]
	view := New(r).View(100, 30)
	if !strings.Contains(view, "Quiz complete!") {
		t.Error("expected completion heading when every question is answered")
	}
}

func TestSummaryScreen_EnterGoesHome(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("Enter should pop to the root screen")
	}
}

func TestSummaryScreen_EscReturnsToQuiz(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Esc should pop back to the quiz")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult())
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
