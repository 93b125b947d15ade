package puzzle

import "time"

// Governor tracks a level's step and time budgets. It raises failure
// independently of the circuit result; the session decides what to do with it.
// A governor with no limits never fails.
type Governor struct {
	limits  Limits
	toggles int
	elapsed time.Duration
	failed  bool
	halted  bool
}

// NewGovernor creates a governor for the given limits.
func NewGovernor(limits Limits) *Governor {
	return &Governor{limits: limits}
}

// Limits returns the configured budgets.
func (g *Governor) Limits() Limits {
	return g.limits
}

// OnToggle records a toggle. The toggle that arrives after the budget has been
// used up fails; the one that uses the last unit does not.
func (g *Governor) OnToggle() bool {
	if g.failed {
		return true
	}
	if !g.limits.HasStepBudget() {
		return false
	}
	if g.toggles >= g.limits.MaxToggles {
		g.failed = true
		return true
	}
	g.toggles++
	return false
}

// Tick accumulates elapsed time and reports failure once the countdown runs out.
// Ticks after Halt are ignored.
func (g *Governor) Tick(dt time.Duration) bool {
	if g.failed {
		return true
	}
	if g.halted || !g.limits.HasTimeBudget() {
		return false
	}
	g.elapsed += dt
	if g.elapsed >= g.limits.TimeLimit {
		g.failed = true
	}
	return g.failed
}

// Halt stops the countdown permanently until Reset.
func (g *Governor) Halt() {
	g.halted = true
}

// Halted reports whether the countdown was stopped.
func (g *Governor) Halted() bool {
	return g.halted
}

// Failed reports whether a budget has been exhausted.
func (g *Governor) Failed() bool {
	return g.failed
}

// Elapsed returns countdown time accumulated from ticks.
func (g *Governor) Elapsed() time.Duration {
	return g.elapsed
}

// Remaining returns the countdown time left, or zero without a time budget.
func (g *Governor) Remaining() time.Duration {
	if !g.limits.HasTimeBudget() {
		return 0
	}
	return max(g.limits.TimeLimit-g.elapsed, 0)
}

// Progress returns elapsed/limit in [0, 1] for a time-limited level.
// The second result is false when no countdown is configured.
func (g *Governor) Progress() (float64, bool) {
	if !g.limits.HasTimeBudget() {
		return 0, false
	}
	p := float64(g.elapsed) / float64(g.limits.TimeLimit)
	if p > 1 {
		p = 1
	}
	return p, true
}

// TogglesLeft returns the remaining step budget.
// The second result is false when no step budget is configured.
func (g *Governor) TogglesLeft() (int, bool) {
	if !g.limits.HasStepBudget() {
		return 0, false
	}
	return max(g.limits.MaxToggles-g.toggles, 0), true
}

// Reset restores full budgets and re-arms the countdown.
func (g *Governor) Reset() {
	g.toggles = 0
	g.elapsed = 0
	g.failed = false
	g.halted = false
}
