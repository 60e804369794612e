package session

import "errors"

var (
	// ErrNoSession is returned by operations that require an active session.
	ErrNoSession = errors.New("no active session")

	// ErrNoCurrentQuestion is returned when the session points at a question
	// missing from the catalog.
	ErrNoCurrentQuestion = errors.New("no current question")

	// ErrEmptyReviewQueue is returned when review mode is started with no
	// missed questions. Nothing is mutated in that case.
	ErrEmptyReviewQueue = errors.New("no questions to review")

	// ErrNoQuestions is returned when the practice pool is empty.
	ErrNoQuestions = errors.New("no questions available for practice")
)
