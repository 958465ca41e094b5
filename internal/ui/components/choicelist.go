package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/golftaweerak/sciquiz/internal/ui/theme"
)

// ChoiceList is an option selector for choice questions. In multi mode
// space toggles options and any number may be marked; in single mode
// the cursor position is the selection.
type ChoiceList struct {
	Options []string
	Multi   bool
	Cursor  int
	marked  map[int]bool
}

// NewChoiceList creates a choice list over the given options.
func NewChoiceList(options []string, multi bool) ChoiceList {
	return ChoiceList{
		Options: options,
		Multi:   multi,
		marked:  make(map[int]bool),
	}
}

// Update handles keyboard navigation and toggling.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Multi {
			c.marked[c.Cursor] = !c.marked[c.Cursor]
		}
	}

	return c, nil
}

// Selected returns the chosen option texts: the marked set in multi
// mode, the cursor's option otherwise.
func (c ChoiceList) Selected() []string {
	if c.Multi {
		var out []string
		for i, opt := range c.Options {
			if c.marked[i] {
				out = append(out, opt)
			}
		}
		return out
	}
	if c.Cursor >= 0 && c.Cursor < len(c.Options) {
		return []string{c.Options[c.Cursor]}
	}
	return nil
}

// HasSelection reports whether anything is chosen.
func (c ChoiceList) HasSelection() bool {
	return len(c.Selected()) > 0
}

// View renders the list. correct and chosen are non-nil after
// submission and switch the list into feedback coloring.
func (c ChoiceList) View(correct, chosen map[string]bool) string {
	var s string
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor && correct == nil {
			prefix = "▸ "
		}

		mark := ""
		if c.Multi {
			if c.marked[i] {
				mark = "[x] "
			} else {
				mark = "[ ] "
			}
		}

		line := fmt.Sprintf("%s%s)  %s%s", prefix, optionLabel(i), mark, opt)

		switch {
		case correct != nil && correct[opt]:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case correct != nil && chosen[opt]:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case correct != nil:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == c.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

// optionLabel returns A, B, C... for option positions.
func optionLabel(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprint(i + 1)
}
