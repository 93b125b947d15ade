// Package tui provides the Bubble Tea front end for the logic arcade.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the session clock. Gen names the play screen
// whose tick loop sent it; a screen ignores ticks from other loops.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a generation no earlier tick loop has used.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// frameDelta returns the wall time between two ticks, bounded so a stalled
// terminal cannot burn a whole countdown in one frame.
func frameDelta(last, now time.Time, interval time.Duration) time.Duration {
	if last.IsZero() {
		return interval
	}
	dt := now.Sub(last)
	if dt < 0 {
		return 0
	}
	return min(dt, 4*interval)
}
