// Package timer implements the session countdown service. The service is
// tick-driven: the presentation layer feeds it one Tick per second (via a
// scheduled Bubble Tea command) and tests feed ticks directly, so the
// countdown logic itself stays deterministic.
package timer

// Mode selects the countdown behavior for a session.
type Mode string

const (
	// ModeNone disables timing entirely.
	ModeNone Mode = "none"
	// ModePerQuestion resets the countdown for every question shown.
	ModePerQuestion Mode = "perQuestion"
	// ModeOverall runs one countdown across the whole session.
	ModeOverall Mode = "overall"
)

// Valid reports whether m is a recognized timer mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeNone, ModePerQuestion, ModeOverall:
		return true
	}
	return false
}

// State is the timer lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Expired
)

// DefaultPerQuestionSeconds is the per-question countdown used when the
// caller supplies no override.
const DefaultPerQuestionSeconds = 90

// Service owns the countdown state. Ticks arriving while the service is
// not Running are ignored, which makes a late tick from an already
// stopped countdown harmless. The generation counter lets callers
// discard scheduled ticks that belong to a previous countdown.
type Service struct {
	mode     Mode
	state    State
	timeLeft int
	initial  int
	gen      int
}

// New returns an idle timer service.
func New() *Service {
	return &Service{mode: ModeNone, state: Idle}
}

// Start begins a fresh countdown of the given duration. Starting with
// ModeNone or a non-positive duration leaves the service idle.
func (s *Service) Start(mode Mode, seconds int) {
	s.gen++
	s.mode = mode
	if mode == ModeNone || seconds <= 0 {
		s.state = Idle
		s.timeLeft = 0
		s.initial = 0
		return
	}
	s.state = Running
	s.timeLeft = seconds
	s.initial = seconds
}

// Restart re-enters Running with a previously saved remaining duration,
// keeping the recorded initial duration. Used on session resume.
func (s *Service) Restart(remaining int) {
	s.gen++
	if s.mode == ModeNone || remaining <= 0 {
		s.state = Idle
		s.timeLeft = 0
		return
	}
	if s.initial < remaining {
		s.initial = remaining
	}
	s.state = Running
	s.timeLeft = remaining
}

// Stop moves a Running countdown back to Idle. Stopping is unconditional
// and immediate: any tick scheduled before the stop lands in a non-Running
// state and is dropped.
func (s *Service) Stop() {
	s.gen++
	if s.state == Running {
		s.state = Idle
	}
}

// Tick consumes one time unit. It is a no-op unless the service is
// Running. Returns true exactly once, on the transition to Expired.
func (s *Service) Tick() bool {
	if s.state != Running {
		return false
	}
	s.timeLeft--
	if s.timeLeft <= 0 {
		s.timeLeft = 0
		s.state = Expired
		return true
	}
	return false
}

// Mode returns the configured countdown mode.
func (s *Service) Mode() Mode { return s.mode }

// State returns the current lifecycle state.
func (s *Service) State() State { return s.state }

// Running reports whether the countdown is active.
func (s *Service) Running() bool { return s.state == Running }

// TimeLeft returns the remaining whole seconds.
func (s *Service) TimeLeft() int { return s.timeLeft }

// Initial returns the duration the current countdown started from.
func (s *Service) Initial() int { return s.initial }

// Generation identifies the current countdown. It increments on every
// Start, Restart, and Stop; a scheduled tick stamped with an older
// generation must be discarded by the caller.
func (s *Service) Generation() int { return s.gen }
