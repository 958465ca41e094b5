package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/router"
	"github.com/golftaweerak/sciquiz/internal/screen"
	"github.com/golftaweerak/sciquiz/internal/screens/history"
	"github.com/golftaweerak/sciquiz/internal/screens/quiz"
	sess "github.com/golftaweerak/sciquiz/internal/session"
	"github.com/golftaweerak/sciquiz/internal/store"
	"github.com/golftaweerak/sciquiz/internal/timer"
	"github.com/golftaweerak/sciquiz/internal/ui/components"
	"github.com/golftaweerak/sciquiz/internal/ui/theme"
)

// SessionKey is the snapshot slot for the single interactive session.
const SessionKey = "default"

// Options carries everything the home screen needs to launch a quiz.
type Options struct {
	Store     *store.Store
	Log       zerolog.Logger
	BankTitle string
	Questions []question.Question
	TimerMode timer.Mode
	Seconds   int
	Sound     bool
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	opts    Options
	menu    components.Menu
	resume  *sess.Snapshot
	nQuests int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. A saved unfinished session, if any,
// surfaces as a Resume entry at the top of the menu.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts, nQuests: len(opts.Questions)}

	if opts.Store != nil {
		snap, err := opts.Store.Sessions().Load(context.Background(), SessionKey)
		if err != nil {
			opts.Log.Warn().Err(err).Msg("load saved session")
		} else if snap != nil && !snap.Finished() {
			h.resume = snap
		}
	}

	var items []components.MenuItem
	if h.resume != nil {
		items = append(items, components.MenuItem{
			Label:  "RESUME QUIZ",
			Action: h.resumeQuiz,
		})
	}
	items = append(items,
		components.MenuItem{Label: "NEW QUIZ", Action: h.startQuiz, Disabled: h.nQuests == 0},
		components.MenuItem{Label: "HISTORY", Disabled: opts.Store == nil, Action: func() tea.Cmd {
			st := opts.Store
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(st)}
			}
		}},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	return h
}

// startQuiz discards any saved session and begins a fresh one.
func (h *HomeScreen) startQuiz() tea.Cmd {
	engine := h.newEngine()
	err := engine.Start(h.opts.Questions, SessionKey, h.opts.BankTitle, h.opts.TimerMode, h.opts.Seconds)
	if err != nil {
		h.opts.Log.Error().Err(err).Msg("start quiz")
		return nil
	}
	return h.pushQuiz(engine)
}

// resumeQuiz restores the saved session.
func (h *HomeScreen) resumeQuiz() tea.Cmd {
	engine := h.newEngine()
	if err := engine.Resume(h.resume, SessionKey, h.opts.BankTitle); err != nil {
		h.opts.Log.Warn().Err(err).Msg("resume rejected, starting fresh")
		return h.startQuiz()
	}
	return h.pushQuiz(engine)
}

func (h *HomeScreen) newEngine() *sess.Engine {
	cfg := sess.Config{Sound: h.opts.Sound}
	if h.opts.Store != nil {
		cfg.Store = h.opts.Store.Sessions()
	}
	return sess.New(cfg)
}

func (h *HomeScreen) pushQuiz(engine *sess.Engine) tea.Cmd {
	st := h.opts.Store
	log := h.opts.Log
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quiz.New(engine, st, log)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("SciQuiz")
	subtitle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(h.opts.BankTitle)
	sections = append(sections, title+"\n"+subtitle)

	if h.resume != nil {
		progress := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(resumeSummary(h.resume))
		sections = append(sections, progress)
	}

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())
	sections = append(sections, menu)

	count := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(questionCount(h.nQuests))
	sections = append(sections, count)

	return "\n\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// resumeSummary describes the saved session for the menu.
func resumeSummary(snap *sess.Snapshot) string {
	answered := 0
	for _, a := range snap.UserAnswers {
		if a != nil {
			answered++
		}
	}
	return fmt.Sprintf("Saved session: %d/%d answered", answered, len(snap.ShuffledQuestions))
}

func questionCount(n int) string {
	return fmt.Sprintf("%d questions loaded", n)
}
