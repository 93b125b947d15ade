// Package levels loads level packs and holds the built-in catalog.
// Level logic lives entirely in data: each level is a formula string that the
// circuit package parses into an expression.
package levels

import (
	"fmt"

	"github.com/vovakirdan/logic-arcade/internal/circuit"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

// ErrInvalidLevel is wrapped by every validation failure.
var ErrInvalidLevel = puzzle.ErrInvalidLevel

// Definition is one immutable level.
type Definition struct {
	ID          int
	Name        string
	Hint        string
	SwitchCount int
	Initial     []bool
	Formula     string
	Expression  circuit.Expression
	Win         puzzle.WinPolarity
	Limits      puzzle.Limits
}

// Level converts the definition for the engine.
func (d Definition) Level() puzzle.Level {
	return puzzle.Level{
		ID:         d.ID,
		Initial:    append([]bool(nil), d.Initial...),
		Expression: d.Expression,
		Win:        d.Win,
		Limits:     d.Limits,
	}
}

// Entry returns the menu view of the definition.
func (d Definition) Entry() registry.Entry {
	return registry.Entry{
		ID:       d.ID,
		Name:     d.Name,
		Hint:     d.Hint,
		Formula:  d.Formula,
		Switches: d.SwitchCount,
		Win:      d.Win,
		Limits:   d.Limits,
	}
}

// MinMoves returns the fewest toggles that solve the level, or -1 if it
// cannot be solved.
func (d Definition) MinMoves() int {
	if d.Win == puzzle.WinNever {
		return -1
	}
	return circuit.Distance(d.Expression, d.Initial, d.Win == puzzle.WinOn)
}

// Scaled returns a copy with budgets multiplied by factor. The step budget
// never drops below the minimum number of moves.
func (d Definition) Scaled(factor float64) Definition {
	out := d
	out.Initial = append([]bool(nil), d.Initial...)
	out.Limits = d.Limits.Scale(factor)
	if out.Limits.HasStepBudget() {
		out.Limits.MaxToggles = max(out.Limits.MaxToggles, d.MinMoves())
	}
	return out
}

// Validate checks the definition is playable.
func (d Definition) Validate() error {
	if d.ID < 1 {
		return fmt.Errorf("%w: id %d must be positive", ErrInvalidLevel, d.ID)
	}
	if d.SwitchCount != len(d.Initial) {
		return fmt.Errorf("%w: level %d declares %d switches but has %d initial values",
			ErrInvalidLevel, d.ID, d.SwitchCount, len(d.Initial))
	}
	if err := d.Level().Validate(); err != nil {
		return err
	}
	if d.Win == puzzle.WinNever {
		return nil
	}

	moves := d.MinMoves()
	if moves < 0 {
		return fmt.Errorf("%w: level %d cannot be solved", ErrInvalidLevel, d.ID)
	}
	if d.Limits.HasStepBudget() && d.Limits.MaxToggles < moves {
		return fmt.Errorf("%w: level %d allows %d toggles but needs %d",
			ErrInvalidLevel, d.ID, d.Limits.MaxToggles, moves)
	}
	return nil
}
