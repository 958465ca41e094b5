package results

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/golftaweerak/sciquiz/internal/router"
	"github.com/golftaweerak/sciquiz/internal/screen"
	sess "github.com/golftaweerak/sciquiz/internal/session"
	"github.com/golftaweerak/sciquiz/internal/ui/components"
	"github.com/golftaweerak/sciquiz/internal/ui/layout"
	"github.com/golftaweerak/sciquiz/internal/ui/theme"
)

// ResultsScreen displays the final report of a completed quiz and
// offers a read-only review of every question.
type ResultsScreen struct {
	engine    *sess.Engine
	reviewing bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for a completed engine.
func New(engine *sess.Engine) *ResultsScreen {
	return &ResultsScreen{engine: engine}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	if s.reviewing {
		return "Review"
	}
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	if s.reviewing {
		return []layout.KeyHint{
			{Key: "←→", Description: "Navigate"},
			{Key: "Esc", Description: "Back to results"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Review answers"},
		{Key: "Enter/Esc", Description: "Home"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.reviewing {
		switch kmsg.String() {
		case "left", "h":
			s.engine.ReviewPrev()
		case "right", "l", "enter":
			s.engine.ReviewNext()
		case "esc", "q":
			s.engine.ExitReview()
			s.reviewing = false
		}
		return s, nil
	}

	switch kmsg.String() {
	case "r", "R":
		if err := s.engine.EnterReview(); err == nil {
			s.reviewing = true
		}
	case "enter", "esc", "q":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.reviewing {
		return s.renderReview(width)
	}
	return s.renderReport(width)
}

func (s *ResultsScreen) renderReport(width int) string {
	rep, err := s.engine.Report()
	if err != nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	// Score line.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d / %d  (%.0f%%)", rep.Score, rep.Total, rep.Percentage)))
	b.WriteString("\n")

	// Band message.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(rep.Band))
	b.WriteString("\n")

	// Time taken.
	mins := int(rep.Elapsed.Minutes())
	secs := int(rep.Elapsed.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Time: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	// Category breakdown.
	if len(rep.Categories) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("By category")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		names := make([]string, 0, len(rep.Categories))
		for name := range rep.Categories {
			names = append(names, name)
		}
		sort.Strings(names)

		barWidth := min(width-20, 44)
		for _, name := range names {
			cs := rep.Categories[name]
			label := fmt.Sprintf("%-16s %d/%d", name, cs.Correct, cs.Total)
			bar := components.NewProgressBar(label, cs.Accuracy(), true, barWidth+len(label))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Best / worst topics.
	if rep.Topics.Best != "" || rep.Topics.Worst != "" {
		if rep.Topics.Best != "" {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Success).
					Render("Strongest topic: "+rep.Topics.Best)))
			b.WriteString("\n")
		}
		if rep.Topics.Worst != "" {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).
					Render("Needs work: "+rep.Topics.Worst)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *ResultsScreen) renderReview(width int) string {
	q, ans, idx := s.engine.ReviewCurrent()
	if q == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", idx+1, s.engine.Total())))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	switch {
	case ans == nil:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Not reached"))
	case ans.IsCorrect:
		b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).
			Render("Correct: " + strings.Join(ans.Selected, ", ")))
	case len(ans.Selected) == 0:
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).
			Render("Unanswered"))
	default:
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).
			Render("Your answer: " + strings.Join(ans.Selected, ", ")))
	}
	b.WriteString("\n")

	if ans == nil || !ans.IsCorrect {
		correct := q.Answer
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("Correct answer: " + strings.Join(correct, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n")
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
