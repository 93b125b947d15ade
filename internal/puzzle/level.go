// Package puzzle implements the level engine: a switch vector wired through a
// circuit expression into a bulb, a win/lose state machine, and optional step
// and time budgets.
//
// The engine is single-threaded and runs on logical time. Callers drive it with
// Toggle, Reset and Advance from one goroutine (a Bubble Tea update loop or a
// Runner). It contains no rendering and no I/O.
package puzzle

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/logic-arcade/internal/circuit"
)

// ErrInvalidLevel is wrapped by Level.Validate failures.
var ErrInvalidLevel = errors.New("puzzle: invalid level")

// Phase is the win/lose state of one level attempt.
type Phase uint8

const (
	PhaseActive Phase = iota
	PhaseWinPending
	PhaseWon
	PhaseLost
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseWinPending:
		return "win_pending"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase can only be left through a reset.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "active":
		*p = PhaseActive
	case "win_pending":
		*p = PhaseWinPending
	case "won":
		*p = PhaseWon
	case "lost":
		*p = PhaseLost
	default:
		return fmt.Errorf("puzzle: unknown phase %q", text)
	}
	return nil
}

// WinPolarity says which bulb state solves a level.
type WinPolarity uint8

const (
	WinOn    WinPolarity = iota // bulb lit wins
	WinOff                      // bulb dark wins
	WinNever                    // sandbox, never wins
)

// Satisfied reports whether the bulb state meets the win condition.
func (w WinPolarity) Satisfied(bulb bool) bool {
	switch w {
	case WinOn:
		return bulb
	case WinOff:
		return !bulb
	default:
		return false
	}
}

// String returns the polarity name used in level files.
func (w WinPolarity) String() string {
	switch w {
	case WinOn:
		return "on"
	case WinOff:
		return "off"
	case WinNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseWinPolarity parses "on", "off" or "never".
func ParseWinPolarity(s string) (WinPolarity, error) {
	switch s {
	case "on", "":
		return WinOn, nil
	case "off":
		return WinOff, nil
	case "never":
		return WinNever, nil
	default:
		return WinOn, fmt.Errorf("puzzle: unknown win polarity %q", s)
	}
}

// Limits configures the exhaustible resources of a level.
// Zero values mean "not configured".
type Limits struct {
	MaxToggles int
	TimeLimit  time.Duration
}

// IsZero reports whether no budget is configured.
func (l Limits) IsZero() bool {
	return l.MaxToggles <= 0 && l.TimeLimit <= 0
}

// HasStepBudget reports whether a toggle budget is configured.
func (l Limits) HasStepBudget() bool {
	return l.MaxToggles > 0
}

// HasTimeBudget reports whether a countdown is configured.
func (l Limits) HasTimeBudget() bool {
	return l.TimeLimit > 0
}

// Level is everything the engine needs to run one puzzle.
type Level struct {
	ID         int
	Initial    []bool
	Expression circuit.Expression
	Win        WinPolarity
	Limits     Limits
}

// SwitchCount returns the number of switches.
func (l Level) SwitchCount() int {
	return len(l.Initial)
}

// Validate checks that the level can be played.
// A level whose initial state already satisfies the win condition is rejected.
func (l Level) Validate() error {
	if l.Expression == nil {
		return fmt.Errorf("%w: level %d has no expression", ErrInvalidLevel, l.ID)
	}
	if len(l.Initial) == 0 {
		return fmt.Errorf("%w: level %d has no switches", ErrInvalidLevel, l.ID)
	}
	if l.Limits.MaxToggles < 0 || l.Limits.TimeLimit < 0 {
		return fmt.Errorf("%w: level %d has negative limits", ErrInvalidLevel, l.ID)
	}
	if a := circuit.Arity(l.Expression); a > len(l.Initial) {
		return fmt.Errorf("%w: level %d reads switch %d of %d", ErrInvalidLevel, l.ID, a, len(l.Initial))
	}
	if l.Win.Satisfied(l.Expression.Evaluate(l.Initial)) {
		return fmt.Errorf("%w: level %d starts solved", ErrInvalidLevel, l.ID)
	}
	return nil
}

// Scale multiplies both budgets by factor. A configured step budget never
// drops below one toggle and a configured countdown never below one tick.
func (l Limits) Scale(factor float64) Limits {
	if factor <= 0 || factor == 1 {
		return l
	}
	out := l
	if l.HasStepBudget() {
		out.MaxToggles = max(int(math.Ceil(float64(l.MaxToggles)*factor)), 1)
	}
	if l.HasTimeBudget() {
		out.TimeLimit = max(time.Duration(float64(l.TimeLimit)*factor), DefaultTickPeriod)
	}
	return out
}
