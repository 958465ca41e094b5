package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// timerTickMsg is sent every second to drive the countdown. The
// generation stamps which timer incarnation scheduled the tick so a
// tick queued before a stop or restart is dropped instead of counting
// against the new timer.
type timerTickMsg struct {
	gen int
}

// tickCmd returns a 1-second tick command for the given timer generation.
func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}
