package quiz

import "sort"

// Ledger maps question positions to the option chosen there. A position is
// present only once it has been answered. Recording a position again
// replaces the earlier answer; locking answered questions is left to the
// caller.
type Ledger struct {
	answers map[int]int
	total   int
}

// NewLedger creates an empty ledger for a quiz of total questions.
func NewLedger(total int) *Ledger {
	return &Ledger{answers: make(map[int]int), total: total}
}

// RecordAnswer stores optionIndex for position, overwriting any previous
// answer. It performs no range checks.
func (l *Ledger) RecordAnswer(position, optionIndex int) {
	l.answers[position] = optionIndex
}

// IsAnswered reports whether position has an answer.
func (l *Ledger) IsAnswered(position int) bool {
	_, ok := l.answers[position]
	return ok
}

// Answer returns the option recorded for position.
func (l *Ledger) Answer(position int) (int, bool) {
	opt, ok := l.answers[position]
	return opt, ok
}

// Count returns the number of answered positions.
func (l *Ledger) Count() int {
	return len(l.answers)
}

// Total returns the question count the ratio is computed against.
func (l *Ledger) Total() int {
	return l.total
}

// CompletionRatio returns answered/total, or 0 for an empty quiz.
func (l *Ledger) CompletionRatio() float64 {
	if l.total <= 0 {
		return 0
	}
	return float64(len(l.answers)) / float64(l.total)
}

// Positions returns the answered positions in ascending order.
func (l *Ledger) Positions() []int {
	out := make([]int, 0, len(l.answers))
	for p := range l.answers {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
