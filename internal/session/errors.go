package session

import "errors"

// Invalid operation calls are signalled with sentinel errors. Callers in
// the presentation layer treat them as no-ops; none of them is ever
// fatal to the session.
var (
	ErrNotInProgress   = errors.New("session: not in progress")
	ErrNoQuestions     = errors.New("session: no questions")
	ErrAlreadyAnswered = errors.New("session: question already answered")
	ErrUnanswered      = errors.New("session: current question not answered")
	ErrAtStart         = errors.New("session: already at first question")
	ErrLastUnanswered  = errors.New("session: cannot skip the only remaining unanswered question")
	ErrNotCompleted    = errors.New("session: not completed")
	ErrNoHint          = errors.New("session: question has no hint")
	ErrBadSnapshot     = errors.New("session: snapshot failed validation")
)
