package puzzle

import (
	"context"
	"errors"
	"time"
)

// ErrRunnerStopped is returned by Runner calls after Run has returned.
var ErrRunnerStopped = errors.New("puzzle: runner stopped")

// Runner owns a session on a dedicated goroutine and drives it from the wall
// clock. Other goroutines talk to it through Toggle, Reset and Snapshot.
type Runner struct {
	session *Session
	period  time.Duration
	cmds    chan func()
	updates chan Snapshot
	done    chan struct{}
}

// NewRunner wraps s. The session must not be used directly afterwards.
func NewRunner(s *Session, period time.Duration) *Runner {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return &Runner{
		session: s,
		period:  period,
		cmds:    make(chan func()),
		updates: make(chan Snapshot, 1),
		done:    make(chan struct{}),
	}
}

// Run processes commands and ticks until ctx is cancelled, then closes the
// session.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)
	defer r.session.Close()

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	last := time.Now()
	seen := r.session.Version()
	r.publish()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-r.cmds:
			fn()
		case now := <-ticker.C:
			r.session.Advance(now.Sub(last))
			last = now
		}
		if v := r.session.Version(); v != seen {
			seen = v
			r.publish()
		}
	}
}

// publish replaces any unread snapshot with the latest one.
func (r *Runner) publish() {
	snap := r.session.Snapshot()
	select {
	case <-r.updates:
	default:
	}
	r.updates <- snap
}

// Updates delivers the latest snapshot after every state change. Slow readers
// only see the most recent state.
func (r *Runner) Updates() <-chan Snapshot {
	return r.updates
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) do(ctx context.Context, fn func()) error {
	reply := make(chan struct{})
	cmd := func() {
		fn()
		close(reply)
	}
	select {
	case r.cmds <- cmd:
	case <-r.done:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return nil
	case <-r.done:
		return ErrRunnerStopped
	}
}

// Toggle flips a switch and reports whether the toggle was applied.
func (r *Runner) Toggle(ctx context.Context, index int) (bool, error) {
	var ok bool
	err := r.do(ctx, func() { ok = r.session.Toggle(index) })
	return ok, err
}

// Reset restarts the level.
func (r *Runner) Reset(ctx context.Context) error {
	return r.do(ctx, r.session.Reset)
}

// Snapshot returns the current state.
func (r *Runner) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := r.do(ctx, func() { snap = r.session.Snapshot() })
	return snap, err
}
