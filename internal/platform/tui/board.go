package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/logic-arcade/internal/core"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

// Board layout constants
const (
	switchCellW = 7  // Width of one switch box including its gap
	switchBoxW  = 6  // Width of the box itself
	progressW   = 30 // Width of the countdown bar
)

// BoardView is everything DrawBoard needs for one frame.
type BoardView struct {
	PackTitle string
	Entry     registry.Entry
	Limits    puzzle.Limits // Budgets in effect after difficulty scaling
	Snap      puzzle.Snapshot
	Cursor    int
	ShowHint  bool
	Starred   bool
	Notice    string // One-line status such as a save failure
}

// DrawBoard renders a level onto the screen.
func DrawBoard(s *core.Screen, v BoardView) {
	s.Clear()
	w, h := s.Width(), s.Height()
	if w < 20 || h < 12 {
		s.DrawTextCentered(h/2, "Window too small", core.ColorYellow)
		return
	}

	s.DrawBox(core.NewRect(0, 0, w, h), core.ColorFrame)

	title := fmt.Sprintf("%s · Level %d · %s", v.PackTitle, v.Entry.ID, v.Entry.Name)
	if v.Starred {
		title += "  ★"
	}
	s.DrawTextCentered(1, title, core.ColorTitle)
	s.DrawTextCentered(3, formulaLine(v.Entry), core.ColorWhite)

	drawBulb(s, 5, v.Snap)
	drawSwitches(s, 10, v.Snap, v.Cursor)

	y := 15
	if line := budgetLine(v.Snap, v.Limits); line != "" {
		s.DrawTextCentered(y, line, budgetColor(v.Snap))
		y++
	}

	msg, color := phaseMessage(v.Snap, v.Entry.Win)
	s.DrawTextCentered(y+1, msg, color)

	if v.ShowHint && v.Entry.Hint != "" {
		s.DrawTextCentered(y+3, "Hint: "+v.Entry.Hint, core.ColorGray)
	}
	if v.Notice != "" {
		s.DrawTextCentered(h-2, v.Notice, core.ColorWarning)
	}
}

func formulaLine(e registry.Entry) string {
	switch e.Win {
	case puzzle.WinOff:
		return "Turn the bulb OFF:  " + e.Formula
	case puzzle.WinNever:
		return "Bulb = " + e.Formula
	default:
		return "Light the bulb:  " + e.Formula
	}
}

func drawBulb(s *core.Screen, y int, snap puzzle.Snapshot) {
	x := s.Width()/2 - 3
	frame := core.ColorBulbDark
	glyph, color := '○', core.ColorBulbDark
	if snap.Bulb {
		frame = core.ColorBulbGlow
		glyph, color = '●', core.ColorBulbLit
	}

	s.DrawBox(core.NewRect(x, y, 7, 3), frame)
	if snap.Bulb {
		s.DrawRect(core.NewRect(x+1, y+1, 5, 1), '░', core.ColorBulbGlow)
	}
	s.SetCell(x+3, y+1, glyph, color)
	s.DrawVLine(x+3, y+3, 1, '┴', frame)
}

func drawSwitches(s *core.Screen, y int, snap puzzle.Snapshot, cursor int) {
	n := len(snap.Switches)
	perRow := max((s.Width()-4)/switchCellW, 1)
	cols := min(n, perRow)
	left := (s.Width() - cols*switchCellW + 1) / 2

	for i := range n {
		row, col := i/perRow, i%perRow
		x := left + col*switchCellW
		top := y + row*4

		frame := core.ColorSwitchOff
		label, color := " off", core.ColorSwitchOff
		if snap.Switches[i] {
			label, color = " ON ", core.ColorSwitchOn
			frame = core.ColorGreen
		}
		if !snap.Enabled[i] {
			frame = core.ColorLocked
			if snap.Switches[i] {
				color = core.ColorGreen
			}
		}

		s.DrawBox(core.NewRect(x, top, switchBoxW, 3), frame)
		s.DrawText(x+1, top+1, label, color)

		keyColor := core.ColorGray
		if snap.Touched[i] {
			keyColor = core.ColorWhite
		}
		s.DrawText(x+2, top+3, SwitchKey(i), keyColor)
		if i == cursor && snap.Phase == puzzle.PhaseActive {
			s.SetCell(x+1, top+3, '▸', core.ColorTitle)
		}
	}
}

func budgetLine(snap puzzle.Snapshot, limits puzzle.Limits) string {
	var parts []string
	if snap.TogglesLeft != nil {
		parts = append(parts, fmt.Sprintf("Toggles %d/%d", snap.ToggleCount, limits.MaxToggles))
	}
	if snap.Progress != nil {
		left := time.Duration(float64(limits.TimeLimit) * (1 - *snap.Progress))
		parts = append(parts, fmt.Sprintf("%s %4.1fs", progressBar(*snap.Progress), left.Seconds()))
	}
	return strings.Join(parts, "   ")
}

func progressBar(p float64) string {
	filled := core.Clamp(int(p*progressW+0.5), 0, progressW)
	return "[" + strings.Repeat("█", progressW-filled) + strings.Repeat("·", filled) + "]"
}

func budgetColor(snap puzzle.Snapshot) core.Color {
	if snap.Progress != nil && *snap.Progress >= 0.75 {
		return core.ColorBrightRed
	}
	if snap.TogglesLeft != nil && *snap.TogglesLeft <= 1 {
		return core.ColorOrange
	}
	return core.ColorWhite
}

func phaseMessage(snap puzzle.Snapshot, win puzzle.WinPolarity) (string, core.Color) {
	switch snap.Phase {
	case puzzle.PhaseWinPending:
		return "Solved!", core.ColorBrightGreen
	case puzzle.PhaseWon:
		return "★ Level complete · Enter: next level", core.ColorBrightYellow
	case puzzle.PhaseLost:
		if snap.Progress != nil && *snap.Progress >= 1 {
			return "Out of time · R: try again", core.ColorFailure
		}
		return "Out of toggles · R: try again", core.ColorFailure
	}
	if win == puzzle.WinNever {
		return "Sandbox: flip the inputs and watch the output", core.ColorGray
	}
	return fmt.Sprintf("Toggles: %d", snap.ToggleCount), core.ColorGray
}

// DrawComingSoon renders the placeholder shown past the last campaign level.
func DrawComingSoon(s *core.Screen, id int) {
	s.Clear()
	w, h := s.Width(), s.Height()
	if w >= 2 && h >= 2 {
		s.DrawBox(core.NewRect(0, 0, w, h), core.ColorFrame)
	}
	s.DrawTextCentered(h/2-1, fmt.Sprintf("Level %d", id), core.ColorTitle)
	s.DrawTextCentered(h/2+1, "More levels coming soon", core.ColorWhite)
	s.DrawTextCentered(h/2+3, "Press any key", core.ColorGray)
}
