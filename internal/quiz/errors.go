package quiz

import "errors"

var (
	// ErrInsufficientData is returned when the pool has fewer than MinPoolSize entries.
	ErrInsufficientData = errors.New("quiz: not enough vocabulary entries")

	// ErrSessionFinished is returned when an answer is submitted after the last question.
	ErrSessionFinished = errors.New("quiz: session finished")

	// ErrNotStarted is returned when an answer is submitted before Start.
	ErrNotStarted = errors.New("quiz: session not started")

	// ErrInvalidChoice is returned when the chosen answer is not one of the
	// current question's options. The session is left unchanged.
	ErrInvalidChoice = errors.New("quiz: choice is not one of the options")
)
