// Package session implements the quiz session state machine: question
// sequencing, answer evaluation, timing, checkpointing, and the handoff
// to post-session analytics. One Engine is created per session and
// passed to collaborators; there is no package-level state.
package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/golftaweerak/sciquiz/internal/evaluate"
	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/report"
	"github.com/golftaweerak/sciquiz/internal/timer"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseCompleted
	// PhaseReviewing is a read-only sub-mode of PhaseCompleted that
	// replays recorded verdicts without re-evaluation.
	PhaseReviewing
)

// TickEvent tells the caller what a timer tick caused.
type TickEvent int

const (
	// TickNone: nothing notable; either the tick was consumed or dropped.
	TickNone TickEvent = iota
	// TickQuestionExpired: a per-question countdown ran out and an empty
	// incorrect answer was recorded for the current question.
	TickQuestionExpired
	// TickSessionExpired: the overall countdown ran out and the session
	// completed immediately.
	TickSessionExpired
)

// Engine drives one quiz session. All mutation happens through its
// methods on a single goroutine (the presentation event loop), so no
// locking is needed: timer ticks and user input arrive as serialized
// events and race only logically, which the answered-check resolves.
type Engine struct {
	questions []question.Question
	answers   []*Answer
	idx       int
	score     int
	phase     Phase

	timer *timer.Service
	store SnapshotStore
	key   string
	title string

	perQuestionSecs int

	// accumulated holds whole seconds spent in earlier save/resume
	// segments; segmentStart anchors the segment currently running.
	accumulated  int
	segmentStart time.Time

	soundOn   bool
	hintsUsed map[int]bool

	reviewIdx int
	result    *report.Report

	rng *rand.Rand
	now func() time.Time
}

// Config carries the engine's collaborators. Store may be nil (an
// unpersisted throwaway session); Rand and Now default to the obvious
// sources and exist so tests can pin them.
type Config struct {
	Store SnapshotStore
	Rand  *rand.Rand
	Now   func() time.Time
	Sound bool
}

// New creates an engine in PhaseNotStarted.
func New(cfg Config) *Engine {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		phase:     PhaseNotStarted,
		timer:     timer.New(),
		store:     cfg.Store,
		soundOn:   cfg.Sound,
		hintsUsed: make(map[int]bool),
		rng:       rng,
		now:       now,
	}
}

// Start begins a fresh session: any prior snapshot under key is cleared,
// the questions are normalized and shuffled into a working copy, and the
// timer starts if a mode is configured. customSeconds overrides the
// default duration (per question or whole session depending on mode);
// zero means default.
func (e *Engine) Start(qs []question.Question, key, title string, mode timer.Mode, customSeconds int) error {
	if len(qs) == 0 {
		return ErrNoQuestions
	}

	if e.store != nil {
		_ = e.store.Clear(context.Background(), key)
	}

	working := question.Shuffle(question.NormalizeAll(qs), e.rng)

	e.questions = working
	e.answers = make([]*Answer, len(working))
	e.idx = 0
	e.score = 0
	e.key = key
	e.title = title
	e.hintsUsed = make(map[int]bool)
	e.result = nil
	e.accumulated = 0
	e.segmentStart = e.now()
	e.phase = PhaseInProgress

	if !mode.Valid() {
		mode = timer.ModeNone
	}
	e.perQuestionSecs = customSeconds
	if e.perQuestionSecs <= 0 {
		e.perQuestionSecs = timer.DefaultPerQuestionSeconds
	}
	switch mode {
	case timer.ModePerQuestion:
		e.timer.Start(mode, e.perQuestionSecs)
	case timer.ModeOverall:
		secs := customSeconds
		if secs <= 0 {
			secs = timer.DefaultPerQuestionSeconds * len(working)
		}
		e.timer.Start(mode, secs)
	default:
		e.timer.Start(timer.ModeNone, 0)
	}

	e.checkpoint()
	return nil
}

// Submit evaluates the learner's input for the current question. It is
// rejected once the question has a recorded answer, which also makes a
// submit that races a timeout a safe no-op.
func (e *Engine) Submit(resp evaluate.Response) error {
	if e.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if e.answers[e.idx] != nil {
		return ErrAlreadyAnswered
	}
	e.evaluateCurrent(resp)
	return nil
}

// Tick consumes one timer unit. The presentation layer calls this once
// per scheduled interval; ticks from a stopped or expired countdown are
// dropped inside the timer service.
func (e *Engine) Tick() TickEvent {
	if e.phase != PhaseInProgress {
		return TickNone
	}
	if !e.timer.Tick() {
		return TickNone
	}

	switch e.timer.Mode() {
	case timer.ModePerQuestion:
		// Timeout and manual submit share one evaluation path; if an
		// answer landed first this records nothing.
		if e.answers[e.idx] == nil {
			e.evaluateCurrent(evaluate.Response{})
		}
		return TickQuestionExpired
	case timer.ModeOverall:
		e.complete()
		return TickSessionExpired
	}
	return TickNone
}

// evaluateCurrent is the single evaluation path shared by user submits
// and per-question timeouts. An empty response evaluates to an empty,
// incorrect recorded answer.
func (e *Engine) evaluateCurrent(resp evaluate.Response) {
	q := &e.questions[e.idx]
	v := evaluate.Evaluate(q, resp)

	e.answers[e.idx] = &Answer{
		QuestionID:   q.ID,
		QuestionText: q.Text,
		Selected:     v.Selected,
		Correct:      v.Correct,
		IsCorrect:    v.IsCorrect,
		Category:     q.Category,
		Explanation:  q.Explanation,
	}
	if v.IsCorrect {
		e.score++
	}

	if e.timer.Mode() == timer.ModePerQuestion {
		e.timer.Stop()
	}
	e.checkpoint()
}

// Advance moves the cursor forward. Valid only once the current question
// is answered; on the last index it completes the session instead.
func (e *Engine) Advance() error {
	if e.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if e.answers[e.idx] == nil {
		return ErrUnanswered
	}
	if e.idx == len(e.questions)-1 {
		e.complete()
		return nil
	}
	e.idx++
	e.resetQuestionTimer()
	e.checkpoint()
	return nil
}

// Retreat moves the cursor back one question for read-only replay of its
// recorded verdict. Score and answers are untouched.
func (e *Engine) Retreat() error {
	if e.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if e.idx == 0 {
		return ErrAtStart
	}
	e.idx--
	e.resetQuestionTimer()
	e.checkpoint()
	return nil
}

// Skip relocates the current unanswered question to the end of the
// working order; the question that takes its place becomes current. A
// reordering, never a deletion: the skipped question comes back later.
// Refused when it is the only unanswered question left, which would
// otherwise loop forever.
func (e *Engine) Skip() error {
	if e.phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if e.answers[e.idx] != nil {
		return ErrAlreadyAnswered
	}
	if e.unansweredCount() <= 1 {
		return ErrLastUnanswered
	}

	q := e.questions[e.idx]
	e.questions = append(append(e.questions[:e.idx:e.idx], e.questions[e.idx+1:]...), q)

	a := e.answers[e.idx]
	e.answers = append(append(e.answers[:e.idx:e.idx], e.answers[e.idx+1:]...), a)

	// Hint usage is keyed by position; remap entries past the moved slot.
	remapped := make(map[int]bool, len(e.hintsUsed))
	for pos, used := range e.hintsUsed {
		switch {
		case pos < e.idx:
			remapped[pos] = used
		case pos == e.idx:
			remapped[len(e.questions)-1] = used
		default:
			remapped[pos-1] = used
		}
	}
	e.hintsUsed = remapped

	e.resetQuestionTimer()
	e.checkpoint()
	return nil
}

// resetQuestionTimer applies the per-question timer rule after the
// cursor moved: a fresh countdown for an unanswered question, no
// countdown while replaying an answered one. Overall mode is untouched
// by navigation.
func (e *Engine) resetQuestionTimer() {
	if e.timer.Mode() != timer.ModePerQuestion {
		return
	}
	if e.answers[e.idx] == nil {
		e.timer.Start(timer.ModePerQuestion, e.perQuestionSecs)
	} else {
		e.timer.Stop()
	}
}

// Resume restores a session from a validated snapshot. An invalid
// snapshot is rejected with ErrBadSnapshot and the caller starts fresh.
func (e *Engine) Resume(snap *Snapshot, key, title string) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	e.questions = make([]question.Question, len(snap.ShuffledQuestions))
	copy(e.questions, snap.ShuffledQuestions)
	e.answers = make([]*Answer, len(snap.UserAnswers))
	copy(e.answers, snap.UserAnswers)
	e.idx = snap.CurrentQuestionIndex
	e.score = snap.Score
	e.key = key
	e.title = title
	e.hintsUsed = make(map[int]bool)
	e.result = nil
	e.accumulated = snap.TotalTimeSpent
	e.segmentStart = e.now()

	e.perQuestionSecs = snap.InitialTime
	if e.perQuestionSecs <= 0 {
		e.perQuestionSecs = timer.DefaultPerQuestionSeconds
	}

	switch snap.TimerMode {
	case timer.ModeOverall:
		// Remaining time is recomputed from the persisted elapsed-time
		// accumulator: ticks between checkpoints are not persisted, so
		// the last saved timeLeft may overstate what is actually left.
		remaining := snap.InitialTime - snap.TotalTimeSpent
		if snap.TimeLeft < remaining {
			remaining = snap.TimeLeft
		}
		e.timer.Start(timer.ModeOverall, snap.InitialTime)
		e.timer.Stop()
		e.timer.Restart(remaining)
	case timer.ModePerQuestion:
		e.timer.Start(timer.ModePerQuestion, e.perQuestionSecs)
		e.timer.Stop()
		if e.answers[e.idx] == nil {
			remaining := snap.TimeLeft
			if remaining <= 0 {
				remaining = e.perQuestionSecs
			}
			e.timer.Restart(remaining)
		}
	default:
		e.timer.Start(timer.ModeNone, 0)
	}

	e.phase = PhaseInProgress
	if snap.Finished() {
		e.complete()
		return nil
	}
	// An overall countdown that was already spent terminates the
	// session on resume rather than granting untimed play.
	if snap.TimerMode == timer.ModeOverall && !e.timer.Running() {
		e.complete()
	}
	return nil
}

// complete transitions to PhaseCompleted and builds the final report.
func (e *Engine) complete() {
	e.rollSegment()

	timing := report.Timing{
		Mode:           e.timer.Mode(),
		TimeLeft:       e.timer.TimeLeft(),
		InitialTime:    e.timer.Initial(),
		TotalTimeSpent: e.accumulated,
	}
	e.timer.Stop()

	var answered []report.Answered
	for _, a := range e.answers {
		if a != nil {
			answered = append(answered, report.Answered{
				IsCorrect: a.IsCorrect,
				Category:  a.Category,
			})
		}
	}
	e.result = report.Build(answered, len(e.questions), timing, report.DefaultBands)
	e.phase = PhaseCompleted
	e.checkpoint()
}

// checkpoint persists the current snapshot. Write failures are logged by
// the store and swallowed here: losing a checkpoint is preferable to
// interrupting the session.
func (e *Engine) checkpoint() {
	e.rollSegment()
	if e.store == nil {
		return
	}
	_ = e.store.Save(context.Background(), e.key, e.capture())
}

// rollSegment folds the running time segment into the accumulator.
func (e *Engine) rollSegment() {
	now := e.now()
	if !e.segmentStart.IsZero() {
		e.accumulated += int(now.Sub(e.segmentStart).Seconds())
	}
	e.segmentStart = now
}

// capture builds the serializable projection of the current state.
func (e *Engine) capture() *Snapshot {
	qs := make([]question.Question, len(e.questions))
	copy(qs, e.questions)
	as := make([]*Answer, len(e.answers))
	copy(as, e.answers)

	idx := e.idx
	if idx >= len(qs) && len(qs) > 0 {
		idx = len(qs) - 1
	}

	return &Snapshot{
		CurrentQuestionIndex: idx,
		Score:                e.score,
		ShuffledQuestions:    qs,
		UserAnswers:          as,
		TimerMode:            e.timer.Mode(),
		TimeLeft:             e.timer.TimeLeft(),
		InitialTime:          e.timer.Initial(),
		TotalTimeSpent:       e.accumulated,
		LastAttemptTimestamp: e.now().UnixMilli(),
	}
}

// RequestHint returns the current question's hint and records that it
// was used. Questions without hints return ErrNoHint.
func (e *Engine) RequestHint() (string, error) {
	if e.phase != PhaseInProgress {
		return "", ErrNotInProgress
	}
	hint := e.questions[e.idx].Hint
	if hint == "" {
		return "", ErrNoHint
	}
	e.hintsUsed[e.idx] = true
	return hint, nil
}

// HintUsed reports whether a hint was shown for the current question.
func (e *Engine) HintUsed() bool { return e.hintsUsed[e.idx] }

// ToggleSound flips the sound preference and returns the new value.
func (e *Engine) ToggleSound() bool {
	e.soundOn = !e.soundOn
	return e.soundOn
}

// SoundEnabled reports the current sound preference.
func (e *Engine) SoundEnabled() bool { return e.soundOn }
