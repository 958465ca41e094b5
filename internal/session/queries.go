package session

import (
	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/report"
	"github.com/golftaweerak/sciquiz/internal/timer"
)

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Title returns the session title supplied at start.
func (e *Engine) Title() string { return e.title }

// Total returns the number of questions in the working order.
func (e *Engine) Total() int { return len(e.questions) }

// Score returns the number of correct answers recorded so far.
func (e *Engine) Score() int { return e.score }

// CurrentIndex returns the cursor position.
func (e *Engine) CurrentIndex() int { return e.idx }

// Current returns the question under the cursor, or nil before Start.
func (e *Engine) Current() *question.Question {
	if e.idx < 0 || e.idx >= len(e.questions) {
		return nil
	}
	return &e.questions[e.idx]
}

// CurrentAnswer returns the recorded answer for the question under the
// cursor, or nil if it has not been evaluated.
func (e *Engine) CurrentAnswer() *Answer {
	if e.idx < 0 || e.idx >= len(e.answers) {
		return nil
	}
	return e.answers[e.idx]
}

// AnsweredCount returns how many questions have recorded answers.
func (e *Engine) AnsweredCount() int {
	n := 0
	for _, a := range e.answers {
		if a != nil {
			n++
		}
	}
	return n
}

// unansweredCount is AnsweredCount's complement.
func (e *Engine) unansweredCount() int {
	return len(e.answers) - e.AnsweredCount()
}

// Finished reports the terminal condition: every question evaluated,
// regardless of where the cursor sits.
func (e *Engine) Finished() bool {
	return len(e.questions) > 0 && e.AnsweredCount() >= len(e.questions)
}

// TimerMode returns the session's timer mode.
func (e *Engine) TimerMode() timer.Mode { return e.timer.Mode() }

// TimeLeft returns the remaining seconds on the active countdown.
func (e *Engine) TimeLeft() int { return e.timer.TimeLeft() }

// TimerRunning reports whether a countdown is active.
func (e *Engine) TimerRunning() bool { return e.timer.Running() }

// TimerGeneration identifies the current countdown so the presentation
// layer can discard ticks scheduled for an earlier one.
func (e *Engine) TimerGeneration() int { return e.timer.Generation() }

// Report returns the final analytics, available once the session
// completed.
func (e *Engine) Report() (*report.Report, error) {
	if e.result == nil {
		return nil, ErrNotCompleted
	}
	return e.result, nil
}

// EnterReview switches a completed session into the read-only review
// sub-mode, starting at the first question.
func (e *Engine) EnterReview() error {
	if e.phase != PhaseCompleted {
		return ErrNotCompleted
	}
	e.phase = PhaseReviewing
	e.reviewIdx = 0
	return nil
}

// ExitReview returns from review to the completed state.
func (e *Engine) ExitReview() {
	if e.phase == PhaseReviewing {
		e.phase = PhaseCompleted
	}
}

// ReviewNext moves the review cursor forward, reporting whether it moved.
func (e *Engine) ReviewNext() bool {
	if e.phase != PhaseReviewing || e.reviewIdx >= len(e.questions)-1 {
		return false
	}
	e.reviewIdx++
	return true
}

// ReviewPrev moves the review cursor back, reporting whether it moved.
func (e *Engine) ReviewPrev() bool {
	if e.phase != PhaseReviewing || e.reviewIdx == 0 {
		return false
	}
	e.reviewIdx--
	return true
}

// ReviewCurrent returns the question and stored verdict under the review
// cursor. The answer is nil for questions a forced termination left
// unanswered.
func (e *Engine) ReviewCurrent() (*question.Question, *Answer, int) {
	if e.phase != PhaseReviewing || e.reviewIdx >= len(e.questions) {
		return nil, nil, 0
	}
	return &e.questions[e.reviewIdx], e.answers[e.reviewIdx], e.reviewIdx
}
