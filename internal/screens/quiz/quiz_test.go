package quiz

import (
	"math/rand"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/router"
	"github.com/golftaweerak/sciquiz/internal/screens/results"
	sess "github.com/golftaweerak/sciquiz/internal/session"
	"github.com/golftaweerak/sciquiz/internal/timer"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func choiceQuestions(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:            string(rune('a' + i)),
			Text:          "Pick A",
			Type:          question.TypeSingleChoice,
			Options:       []string{"A", "B"},
			Answer: question.AnswerKey{"A"},
			Category:      question.Category{Main: "Physics"},
		}
	}
	return qs
}

func testScreen(t *testing.T, qs []question.Question, mode timer.Mode, seconds int) (*QuizScreen, *sess.Engine) {
	t.Helper()
	engine := sess.New(sess.Config{Rand: rand.New(rand.NewSource(1))})
	if err := engine.Start(qs, "default", "Test", mode, seconds); err != nil {
		t.Fatalf("start engine: %v", err)
	}
	return New(engine, nil, zerolog.Nop()), engine
}

func TestSubmitShowsFeedback(t *testing.T) {
	s, engine := testScreen(t, choiceQuestions(2), timer.ModeNone, 0)

	s.handleKey(specialKey(tea.KeyEnter))

	if !s.showingFeedback {
		t.Error("expected feedback after submit")
	}
	if engine.CurrentAnswer() == nil {
		t.Error("expected a recorded answer")
	}
}

func TestEnterAdvancesAfterFeedback(t *testing.T) {
	s, engine := testScreen(t, choiceQuestions(2), timer.ModeNone, 0)

	s.handleKey(specialKey(tea.KeyEnter)) // submit
	s.handleKey(specialKey(tea.KeyEnter)) // advance

	if engine.CurrentIndex() != 1 {
		t.Errorf("index = %d, want 1", engine.CurrentIndex())
	}
	if s.showingFeedback {
		t.Error("expected fresh question after advance")
	}
}

func TestEmptyMultiSelectSubmitRefused(t *testing.T) {
	qs := []question.Question{{
		ID:            "m1",
		Text:          "Pick A and B",
		Type:          question.TypeMultiSelect,
		Options:       []string{"A", "B", "C"},
		Answer: question.AnswerKey{"A", "B"},
	}}
	s, engine := testScreen(t, qs, timer.ModeNone, 0)

	s.handleKey(specialKey(tea.KeyEnter))

	if s.showingFeedback {
		t.Error("empty submission should not record an answer")
	}
	if engine.CurrentAnswer() != nil {
		t.Error("expected no recorded answer")
	}
	if s.notice == "" {
		t.Error("expected a notice prompting for an answer")
	}

	// Mark an option, then submit.
	s.handleKey(keyPress(' '))
	s.handleKey(specialKey(tea.KeyEnter))
	if !s.showingFeedback {
		t.Error("expected feedback after marked submission")
	}
}

func TestLastAdvanceGoesToResults(t *testing.T) {
	s, engine := testScreen(t, choiceQuestions(1), timer.ModeNone, 0)

	s.handleKey(specialKey(tea.KeyEnter)) // submit
	_, cmd := s.handleKey(specialKey(tea.KeyEnter))

	if engine.Phase() != sess.PhaseCompleted {
		t.Fatalf("phase = %v, want completed", engine.Phase())
	}
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg := cmd()
	rep, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want ReplaceScreenMsg", msg)
	}
	if _, ok := rep.Screen.(*results.ResultsScreen); !ok {
		t.Errorf("replacement screen = %T, want ResultsScreen", rep.Screen)
	}
}

func TestStaleTickDropped(t *testing.T) {
	s, engine := testScreen(t, choiceQuestions(2), timer.ModePerQuestion, 10)

	before := engine.TimeLeft()
	s.handleTick(timerTickMsg{gen: engine.TimerGeneration() - 1})
	if engine.TimeLeft() != before {
		t.Errorf("stale tick consumed: left = %d, want %d", engine.TimeLeft(), before)
	}

	s.handleTick(timerTickMsg{gen: engine.TimerGeneration()})
	if engine.TimeLeft() != before-1 {
		t.Errorf("live tick ignored: left = %d, want %d", engine.TimeLeft(), before-1)
	}
}

func TestQuestionExpiryShowsUnansweredFeedback(t *testing.T) {
	s, engine := testScreen(t, choiceQuestions(2), timer.ModePerQuestion, 2)

	s.handleTick(timerTickMsg{gen: engine.TimerGeneration()})
	s.handleTick(timerTickMsg{gen: engine.TimerGeneration()})

	if !s.showingFeedback {
		t.Error("expected feedback after countdown expiry")
	}
	ans := engine.CurrentAnswer()
	if ans == nil {
		t.Fatal("expected an unanswered verdict")
	}
	if ans.IsCorrect || len(ans.Selected) != 0 {
		t.Errorf("verdict = %+v, want incorrect and empty", ans)
	}
}

func TestOverallExpiryReplacesWithResults(t *testing.T) {
	s, engine := testScreen(t, choiceQuestions(2), timer.ModeOverall, 1)

	_, cmd := s.handleTick(timerTickMsg{gen: engine.TimerGeneration()})

	if engine.Phase() != sess.PhaseCompleted {
		t.Fatalf("phase = %v, want completed", engine.Phase())
	}
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected ReplaceScreenMsg after session expiry")
	}
}

func TestQuitConfirmFlow(t *testing.T) {
	s, _ := testScreen(t, choiceQuestions(2), timer.ModeNone, 0)

	s.handleKey(specialKey(tea.KeyEscape))
	if !s.quitConfirm {
		t.Fatal("expected quit confirmation")
	}

	s.handleKey(keyPress('n'))
	if s.quitConfirm {
		t.Fatal("expected n to cancel")
	}

	s.handleKey(specialKey(tea.KeyEscape))
	_, cmd := s.handleKey(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg on confirmed quit")
	}
}

func TestRetreatReplaysAnsweredQuestion(t *testing.T) {
	s, engine := testScreen(t, choiceQuestions(2), timer.ModeNone, 0)

	s.handleKey(specialKey(tea.KeyEnter)) // submit q1
	s.handleKey(specialKey(tea.KeyEnter)) // advance to q2
	s.handleKey(specialKey(tea.KeyLeft))  // back to q1

	if engine.CurrentIndex() != 0 {
		t.Errorf("index = %d, want 0", engine.CurrentIndex())
	}
	if !s.showingFeedback {
		t.Error("expected read-only feedback replay on answered question")
	}
}

func TestSkipRotatesQuestion(t *testing.T) {
	s, engine := testScreen(t, choiceQuestions(3), timer.ModeNone, 0)

	first := engine.Current().ID
	s.handleKey(keyPress('s'))

	if engine.Current().ID == first {
		t.Error("expected a different question after skip")
	}
	if engine.Total() != 3 {
		t.Errorf("total = %d, want 3", engine.Total())
	}
}
