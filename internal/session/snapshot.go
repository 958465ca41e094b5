package session

import (
	"context"
	"fmt"

	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/timer"
)

// Snapshot is the serializable projection of a session, written to the
// store after every answer or navigation event. Field names match the
// persisted wire format.
type Snapshot struct {
	CurrentQuestionIndex int                 `json:"currentQuestionIndex"`
	Score                int                 `json:"score"`
	ShuffledQuestions    []question.Question `json:"shuffledQuestions"`
	UserAnswers          []*Answer           `json:"userAnswers"`
	TimerMode            timer.Mode          `json:"timerMode"`
	TimeLeft             int                 `json:"timeLeft"`
	InitialTime          int                 `json:"initialTime"`
	TotalTimeSpent       int                 `json:"totalTimeSpent"`
	LastAttemptTimestamp int64               `json:"lastAttemptTimestamp"`
}

// Validate checks the structural integrity rules a loaded snapshot must
// satisfy before it can seed a resumed session. Anything else is treated
// as corrupt and discarded by the store.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrBadSnapshot)
	}
	n := len(s.ShuffledQuestions)
	if n == 0 {
		return fmt.Errorf("%w: no questions", ErrBadSnapshot)
	}
	if len(s.UserAnswers) != n {
		return fmt.Errorf("%w: answers length %d != questions length %d",
			ErrBadSnapshot, len(s.UserAnswers), n)
	}
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= n {
		return fmt.Errorf("%w: index %d out of range [0,%d)",
			ErrBadSnapshot, s.CurrentQuestionIndex, n)
	}
	if !s.TimerMode.Valid() {
		return fmt.Errorf("%w: unrecognized timer mode %q", ErrBadSnapshot, s.TimerMode)
	}
	for i, q := range s.ShuffledQuestions {
		if !q.Type.Valid() {
			return fmt.Errorf("%w: question %d has unrecognized type %q",
				ErrBadSnapshot, i, q.Type)
		}
	}
	if s.Score < 0 || s.TimeLeft < 0 || s.InitialTime < 0 || s.TotalTimeSpent < 0 {
		return fmt.Errorf("%w: negative counter", ErrBadSnapshot)
	}
	return nil
}

// Finished reports whether every question has been evaluated. This is
// the terminal condition collaborators use for the resume-vs-restart
// prompt; it is independent of the cursor, which may still sit on the
// last question after its answer was submitted.
func (s *Snapshot) Finished() bool {
	answered := 0
	for _, a := range s.UserAnswers {
		if a != nil {
			answered++
		}
	}
	return answered >= len(s.ShuffledQuestions)
}

// SnapshotStore is the persistence contract the engine checkpoints
// through. Save failures are logged and swallowed by implementations;
// Load returns nil for both absent and corrupt state; Clear is
// idempotent.
type SnapshotStore interface {
	Save(ctx context.Context, key string, snap *Snapshot) error
	Load(ctx context.Context, key string) (*Snapshot, error)
	Clear(ctx context.Context, key string) error
}
