package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/golftaweerak/sciquiz/internal/question"
	"github.com/golftaweerak/sciquiz/internal/timer"
	"github.com/golftaweerak/sciquiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

// renderQuestion renders the active question display.
func (s *QuizScreen) renderQuestion(width int) string {
	q := s.engine.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Category line.
	cat := q.Category.Main
	if len(q.Category.Specific) > 0 {
		cat += " · " + strings.Join(q.Category.Specific, ", ")
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(cat))
	b.WriteString("\n\n")

	// Question text.
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	// Input area.
	if s.usesTextInput() {
		answer := "Answer: " + s.input.View()
		if q.Unit != "" {
			answer += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.Unit)
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(answer))
	} else {
		block := s.choices.View(nil, nil)
		if q.Type == question.TypeMultiSelect {
			block += lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("\nSpace toggles, Enter submits")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	}
	b.WriteString("\n\n")

	if s.hint != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Italic(true).
			Render("Hint: " + s.hint))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(s.notice))
	}

	return b.String()
}

// renderFeedback shows the recorded verdict for the question under the
// cursor, both right after submission and when replaying an earlier
// question.
func (s *QuizScreen) renderFeedback(width int) string {
	q := s.engine.Current()
	ans := s.engine.CurrentAnswer()
	if q == nil || ans == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	switch {
	case ans.IsCorrect:
		b.WriteString(theme.Correct.Width(width).Align(lipgloss.Center).Render("Correct!"))
	case len(ans.Selected) == 0:
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Time's up, no answer"))
	default:
		b.WriteString(theme.Incorrect.Width(width).Align(lipgloss.Center).Render("Not quite"))
	}
	b.WriteString("\n")

	if !ans.IsCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Correct answer: " + strings.Join(ans.Correct, ", ")))
		b.WriteString("\n")
	}
	if len(ans.Selected) > 0 && !ans.IsCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Your answer: " + strings.Join(ans.Selected, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to continue..."))

	return b.String()
}

// renderInfoLine renders position, score, and countdown.
func (s *QuizScreen) renderInfoLine(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d/%d", s.engine.CurrentIndex()+1, s.engine.Total()))

	right := fmt.Sprintf("%s %d",
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
		s.engine.Score())
	if s.engine.TimerMode() != timer.ModeNone {
		right += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Render(formatClock(s.engine.TimeLeft()))
	}
	rightStyled := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(rightStyled) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + rightStyled
	}
	return line
}

// renderQuitConfirm renders the save-and-exit dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave the quiz?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your progress is saved and you can resume later."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, save and exit"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// formatClock renders seconds as m:ss.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
