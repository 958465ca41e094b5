package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/golftaweerak/sciquiz/internal/evaluate"
	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/router"
	"github.com/golftaweerak/sciquiz/internal/screen"
	"github.com/golftaweerak/sciquiz/internal/screens/results"
	sess "github.com/golftaweerak/sciquiz/internal/session"
	"github.com/golftaweerak/sciquiz/internal/store"
	"github.com/golftaweerak/sciquiz/internal/ui/components"
	"github.com/golftaweerak/sciquiz/internal/ui/layout"
)

// QuizScreen implements screen.Screen for an active quiz. All quiz
// state lives in the engine; the screen only holds input widgets and
// presentation flags.
type QuizScreen struct {
	engine *sess.Engine
	st     *store.Store
	log    zerolog.Logger

	choices components.ChoiceList
	input   components.TextInput

	showingFeedback bool
	quitConfirm     bool
	hint            string
	notice          string

	// tickingGen is the timer generation whose tick chain is live, so
	// navigation never starts a second chain against the same countdown.
	tickingGen int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over an engine that has already been
// started or resumed.
func New(engine *sess.Engine, st *store.Store, log zerolog.Logger) *QuizScreen {
	s := &QuizScreen{engine: engine, st: st, log: log, tickingGen: -1}
	s.setupQuestion()
	// A resumed cursor may already sit on an answered question.
	if engine.CurrentAnswer() != nil {
		s.showingFeedback = true
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init()}
	if cmd := s.scheduleTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// scheduleTick starts a tick chain for the current countdown unless one
// is already running for it.
func (s *QuizScreen) scheduleTick() tea.Cmd {
	if !s.engine.TimerRunning() {
		return nil
	}
	gen := s.engine.TimerGeneration()
	if gen == s.tickingGen {
		return nil
	}
	s.tickingGen = gen
	return tickCmd(gen)
}

func (s *QuizScreen) Title() string {
	return s.engine.Title()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Save & exit"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "←", Description: "Back"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "S", Description: "Skip"},
	}
	if q := s.engine.Current(); q != nil && q.Hint != "" {
		key := "?"
		if s.usesTextInput() {
			key = "Ctrl+H"
		}
		hints = append(hints, layout.KeyHint{Key: key, Description: "Hint"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "←", Description: "Back"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
	return hints
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward everything else (blink, paste) to the text input.
	if !s.showingFeedback && !s.quitConfirm && s.usesTextInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != s.engine.TimerGeneration() {
		// Stale tick from a stopped or restarted timer.
		return s, nil
	}

	switch s.engine.Tick() {
	case sess.TickQuestionExpired:
		// An unanswered verdict was recorded; show it.
		s.showingFeedback = true
		s.hint = ""
		return s, nil
	case sess.TickSessionExpired:
		return s.finish()
	}

	if s.engine.TimerRunning() {
		return s, tickCmd(s.engine.TimerGeneration())
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	s.notice = ""

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			// Progress is checkpointed after every event; just leave.
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		switch key {
		case "enter":
			return s.advance()
		case "left":
			return s.retreat()
		case "esc":
			s.quitConfirm = true
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		return s.submit()
	case "left":
		return s.retreat()
	case "s", "S":
		if !s.usesTextInput() || key == "S" {
			return s.skip()
		}
	case "?":
		// Typable inside text answers; only a hotkey on choice questions.
		if !s.usesTextInput() {
			if hint, err := s.engine.RequestHint(); err == nil {
				s.hint = hint
			}
			return s, nil
		}
	case "ctrl+h":
		if hint, err := s.engine.RequestHint(); err == nil {
			s.hint = hint
		}
		return s, nil
	case "ctrl+s":
		s.toggleSound()
		return s, nil
	}

	// Forward to the active widget.
	if s.usesTextInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return s, cmd
}

// submit evaluates the current entry.
func (s *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	resp := s.response()
	if resp.Empty() {
		s.notice = "Enter an answer first (or skip with S)."
		return s, nil
	}

	if err := s.engine.Submit(resp); err != nil {
		s.log.Warn().Err(err).Msg("submit rejected")
		return s, nil
	}
	s.showingFeedback = true
	s.hint = ""
	return s, nil
}

// advance moves to the next question, or to the results screen after
// the last one.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if err := s.engine.Advance(); err != nil {
		return s, nil
	}
	if s.engine.Phase() == sess.PhaseCompleted {
		return s.finish()
	}
	return s.showCurrent()
}

func (s *QuizScreen) retreat() (screen.Screen, tea.Cmd) {
	if err := s.engine.Retreat(); err != nil {
		return s, nil
	}
	return s.showCurrent()
}

func (s *QuizScreen) skip() (screen.Screen, tea.Cmd) {
	if err := s.engine.Skip(); err != nil {
		s.notice = "Cannot skip the last unanswered question."
		return s, nil
	}
	return s.showCurrent()
}

// showCurrent refreshes widgets for the question under the cursor and
// restarts ticking when a countdown is active.
func (s *QuizScreen) showCurrent() (screen.Screen, tea.Cmd) {
	s.hint = ""
	s.showingFeedback = s.engine.CurrentAnswer() != nil
	if !s.showingFeedback {
		s.setupQuestion()
	}

	cmds := []tea.Cmd{s.input.Init()}
	if cmd := s.scheduleTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return s, tea.Batch(cmds...)
}

// finish records the outcome in history and swaps in the results screen.
func (s *QuizScreen) finish() (screen.Screen, tea.Cmd) {
	rep, err := s.engine.Report()
	if err != nil {
		s.log.Error().Err(err).Msg("report unavailable")
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}

	if s.st != nil {
		err := s.st.Results().Append(context.Background(), store.Result{
			Title:        s.engine.Title(),
			Score:        rep.Score,
			Total:        rep.Total,
			Percentage:   rep.Percentage,
			DurationSecs: int(rep.Elapsed.Seconds()),
		})
		if err != nil {
			s.log.Error().Err(err).Msg("record result")
		}
	}

	eng := s.engine
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: results.New(eng)}
	}
}

// setupQuestion builds the input widget for the current question.
func (s *QuizScreen) setupQuestion() {
	q := s.engine.Current()
	if q == nil {
		return
	}
	switch q.Type {
	case question.TypeSingleChoice:
		s.choices = components.NewChoiceList(q.Options, false)
	case question.TypeMultiSelect:
		s.choices = components.NewChoiceList(q.Options, true)
	case question.TypeFillNumeric:
		s.input = components.NewTextInput("Type a number...", true, 24)
	default:
		s.input = components.NewTextInput("Type your answer...", false, 40)
	}
}

// response builds the evaluator input from the active widget.
func (s *QuizScreen) response() evaluate.Response {
	if s.usesTextInput() {
		return evaluate.Response{Text: s.input.Value()}
	}
	return evaluate.Response{Choices: s.choices.Selected()}
}

func (s *QuizScreen) usesTextInput() bool {
	q := s.engine.Current()
	if q == nil {
		return false
	}
	return q.Type == question.TypeFillText || q.Type == question.TypeFillNumeric
}

func (s *QuizScreen) toggleSound() {
	on := s.engine.ToggleSound()
	if s.st != nil {
		if err := s.st.Prefs().SetBool(context.Background(), store.PrefSound, on); err != nil {
			s.log.Warn().Err(err).Msg("persist sound preference")
		}
	}
}
