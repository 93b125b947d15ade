package puzzle

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultWinDelay is how long a solved board is shown before the win is confirmed.
	DefaultWinDelay = 1500 * time.Millisecond
	// DefaultTickPeriod is the countdown resolution of time-limited levels.
	DefaultTickPeriod = 100 * time.Millisecond
)

// validTransitions lists the phase changes a session may make on its own.
// Reset is the only way out of a terminal phase and is handled separately.
var validTransitions = map[Phase][]Phase{
	PhaseActive:     {PhaseWinPending, PhaseLost},
	PhaseWinPending: {PhaseWon},
	PhaseWon:        {},
	PhaseLost:       {},
}

func canTransition(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Options configures a session.
type Options struct {
	// ID overrides the generated session id.
	ID string
	// WinDelay defaults to DefaultWinDelay.
	WinDelay time.Duration
	// TickPeriod defaults to DefaultTickPeriod.
	TickPeriod time.Duration
	// Manager receives the completion of a confirmed win. May be nil.
	Manager LevelManager
	// Observer receives every event. May be nil.
	Observer Observer
}

// Session is one attempt at one level. It owns the switches, evaluates the
// circuit, and drives the phase machine. All methods must be called from a
// single goroutine.
type Session struct {
	id    string
	level Level
	opts  Options

	sched     *Scheduler
	governor  *Governor
	countdown TaskID

	switches []Switch
	bulb     bool
	toggles  int
	phase    Phase
	epoch    uint64
	closed   bool
	version  uint64

	startedAt time.Duration
	endedAt   time.Duration
	ended     bool
}

// NewSession validates level and starts an attempt in PhaseActive.
func NewSession(level Level, opts Options) (*Session, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}
	if opts.WinDelay <= 0 {
		opts.WinDelay = DefaultWinDelay
	}
	if opts.TickPeriod <= 0 {
		opts.TickPeriod = DefaultTickPeriod
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}

	s := &Session{
		id:    opts.ID,
		level: level,
		opts:  opts,
		sched: NewScheduler(),
	}
	if !level.Limits.IsZero() {
		s.governor = NewGovernor(level.Limits)
	}
	s.start()
	return s, nil
}

// start (re)initializes the attempt state and arms the countdown.
func (s *Session) start() {
	s.switches = newSwitches(s.level.Initial)
	s.toggles = 0
	s.phase = PhaseActive
	s.startedAt = s.sched.Now()
	s.endedAt = 0
	s.ended = false
	s.bulb = s.evaluate()

	s.countdown = 0
	if s.governor != nil {
		s.governor.Reset()
		if s.governor.Limits().HasTimeBudget() {
			s.armCountdown()
		}
	}
	s.version++
}

func (s *Session) evaluate() bool {
	return s.level.Expression.Evaluate(values(s.switches))
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Level returns the level being played.
func (s *Session) Level() Level { return s.level }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Bulb returns the current circuit output.
func (s *Session) Bulb() bool { return s.bulb }

// Epoch counts resets. Deferred work is bound to the epoch it was scheduled in.
func (s *Session) Epoch() uint64 { return s.epoch }

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// Version changes whenever observable state changes.
func (s *Session) Version() uint64 { return s.version }

// Now returns the session's logical clock.
func (s *Session) Now() time.Duration { return s.sched.Now() }

// ToggleCount returns the toggles made in this attempt.
func (s *Session) ToggleCount() int { return s.toggles }

// Switches returns a copy of the switch vector.
func (s *Session) Switches() []Switch {
	return append([]Switch(nil), s.switches...)
}

// Elapsed returns time spent in the current attempt. The clock stops when the
// attempt leaves PhaseActive.
func (s *Session) Elapsed() time.Duration {
	if s.ended {
		return s.endedAt - s.startedAt
	}
	return s.sched.Now() - s.startedAt
}

// Governor returns the resource governor, or nil when the level has no limits.
func (s *Session) Governor() *Governor { return s.governor }

// Toggle flips switch index. It returns false and changes nothing when the
// session is closed, not active, the index is out of range, or the switch is
// disabled.
func (s *Session) Toggle(index int) bool {
	if s.closed || s.phase != PhaseActive {
		return false
	}
	if index < 0 || index >= len(s.switches) {
		return false
	}
	if !s.switches[index].Toggle() {
		return false
	}

	s.toggles++
	s.bulb = s.evaluate()
	s.version++
	s.emit(Event{Kind: EventToggled, Index: index})

	if s.governor != nil && s.governor.OnToggle() {
		s.lose()
		return true
	}
	if s.level.Win.Satisfied(s.bulb) {
		s.beginWin()
	}
	return true
}

// Advance moves logical time forward, running the countdown and any pending
// win confirmation.
func (s *Session) Advance(dt time.Duration) {
	if s.closed {
		return
	}
	s.sched.Advance(dt)
}

// Reset cancels pending work and restores the level's initial state.
func (s *Session) Reset() {
	if s.closed {
		return
	}
	prev := s.Snapshot()
	s.sched.CancelAll()
	s.epoch++
	s.start()
	s.emit(Event{Kind: EventReset, Previous: &prev})
}

// Close makes the session inert. Pending work is dropped and every later call
// is a no-op.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.sched.CancelAll()
	s.closed = true
	s.lockSwitches()
	s.version++
	s.emit(Event{Kind: EventClosed})
}

func (s *Session) transition(to Phase) bool {
	if !canTransition(s.phase, to) {
		return false
	}
	s.phase = to
	s.version++
	return true
}

// beginWin locks the board and schedules confirmation after the win delay.
func (s *Session) beginWin() {
	if !s.transition(PhaseWinPending) {
		return
	}
	s.endAttempt()
	epoch := s.epoch
	s.sched.After(s.opts.WinDelay, func() { s.confirmWin(epoch) })
	s.emit(Event{Kind: EventPhase})
}

func (s *Session) confirmWin(epoch uint64) {
	if s.closed || epoch != s.epoch || !s.transition(PhaseWon) {
		return
	}
	s.emit(Event{Kind: EventPhase})

	if s.opts.Manager == nil {
		return
	}
	if err := s.opts.Manager.MarkLevelAsCompleted(s.level.ID); err != nil {
		s.emit(Event{Kind: EventCompletionError, Error: err.Error()})
		return
	}
	s.emit(Event{Kind: EventCompleted})
}

func (s *Session) lose() {
	if !s.transition(PhaseLost) {
		return
	}
	s.endAttempt()
	s.emit(Event{Kind: EventPhase})
}

// endAttempt freezes the board and the clock, and drops the countdown task.
func (s *Session) endAttempt() {
	s.lockSwitches()
	s.endedAt = s.sched.Now()
	s.ended = true
	if s.governor != nil {
		s.governor.Halt()
	}
	if s.countdown != 0 {
		s.sched.Cancel(s.countdown)
		s.countdown = 0
	}
}

func (s *Session) lockSwitches() {
	for i := range s.switches {
		s.switches[i].Enabled = false
	}
}

// armCountdown schedules the countdown. A remainder shorter than one period
// becomes a single final tick that lands exactly on the limit.
func (s *Session) armCountdown() {
	epoch := s.epoch
	period := s.opts.TickPeriod
	if left := s.governor.Remaining(); left < period {
		s.countdown = s.sched.After(left, func() { s.onTick(epoch, left) })
		return
	}
	s.countdown = s.sched.Every(period, func() { s.onTick(epoch, period) })
}

func (s *Session) onTick(epoch uint64, dt time.Duration) {
	if s.closed || epoch != s.epoch || s.phase != PhaseActive || s.governor == nil {
		return
	}
	failed := s.governor.Tick(dt)
	s.version++
	if failed {
		s.lose()
		return
	}
	if left := s.governor.Remaining(); dt == s.opts.TickPeriod && left < s.opts.TickPeriod {
		s.sched.Cancel(s.countdown)
		s.armCountdown()
	}
}

func (s *Session) emit(e Event) {
	if s.opts.Observer == nil {
		return
	}
	e.SessionID = s.id
	e.LevelID = s.level.ID
	e.Epoch = s.epoch
	e.At = s.sched.Now()
	e.Phase = s.phase
	if e.Kind != EventToggled {
		e.Index = -1
	}
	e.Snapshot = s.Snapshot()
	s.opts.Observer.OnEvent(e)
}
