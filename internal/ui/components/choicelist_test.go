package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.Msg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestChoiceListSingleSelection(t *testing.T) {
	c := NewChoiceList([]string{"Mantle", "Outer core", "Inner core"}, false)

	if got := c.Selected(); len(got) != 1 || got[0] != "Mantle" {
		t.Fatalf("initial selection = %v, want [Mantle]", got)
	}

	c, _ = c.Update(key("j"))
	if got := c.Selected(); len(got) != 1 || got[0] != "Outer core" {
		t.Fatalf("after down = %v, want [Outer core]", got)
	}

	c, _ = c.Update(key("k"))
	c, _ = c.Update(key("k")) // clamped at top
	if c.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", c.Cursor)
	}
}

func TestChoiceListMultiToggle(t *testing.T) {
	c := NewChoiceList([]string{"A", "B", "C"}, true)

	if c.HasSelection() {
		t.Fatal("multi list should start with no selection")
	}

	c, _ = c.Update(key(" "))
	c, _ = c.Update(key("j"))
	c, _ = c.Update(key(" "))
	got := c.Selected()
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("selected = %v, want [A B]", got)
	}

	// Toggle off.
	c, _ = c.Update(key(" "))
	got = c.Selected()
	if len(got) != 1 || got[0] != "A" {
		t.Fatalf("after untoggle = %v, want [A]", got)
	}
}

func TestChoiceListSpaceIgnoredInSingleMode(t *testing.T) {
	c := NewChoiceList([]string{"A", "B"}, false)
	c, _ = c.Update(key(" "))
	if got := c.Selected(); len(got) != 1 || got[0] != "A" {
		t.Fatalf("selected = %v, want [A]", got)
	}
}

func TestOptionLabel(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "A"}, {1, "B"}, {25, "Z"}, {26, "27"},
	}
	for _, tt := range tests {
		if got := optionLabel(tt.i); got != tt.want {
			t.Errorf("optionLabel(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}
