package quiz

import "errors"

var (
	// ErrNoActiveQuiz is returned by operations that need a loaded quiz.
	ErrNoActiveQuiz = errors.New("quiz: no active quiz")

	// ErrOutOfRange is returned for positions outside [0, questionCount)
	// and for option indexes outside a question's options.
	ErrOutOfRange = errors.New("quiz: out of range")

	// ErrAlreadyAnswered is returned under RejectResubmission.
	ErrAlreadyAnswered = errors.New("quiz: question already answered")

	// ErrNoConversation is returned by explanation operations while the
	// explanation surface is closed.
	ErrNoConversation = errors.New("quiz: explanation is not open")
)
