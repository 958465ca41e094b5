package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func menuKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: string(code)}
}

func TestMenuSkipsDisabledItems(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a"},
		{Label: "b", Disabled: true},
		{Label: "c"},
	})

	if m.Selected != 0 {
		t.Fatalf("initial selection = %d, want 0", m.Selected)
	}
	m, _ = m.Update(menuKey('j'))
	if m.Selected != 2 {
		t.Errorf("down over disabled item: selection = %d, want 2", m.Selected)
	}
	m, _ = m.Update(menuKey('k'))
	if m.Selected != 0 {
		t.Errorf("up over disabled item: selection = %d, want 0", m.Selected)
	}
}

func TestMenuInitialSelectionSkipsLeadingDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
	})
	if m.Selected != 1 {
		t.Errorf("initial selection = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsSelectedAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{
		{Label: "a", Action: func() tea.Cmd {
			ran = true
			return nil
		}},
	})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("enter should run the selected action")
	}
}
