package puzzle

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/logic-arcade/internal/circuit"
)

type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type failingManager struct{}

func (failingManager) MarkLevelAsCompleted(int) error { return errors.New("disk full") }
func (failingManager) HasStarForLevel(int) bool       { return false }

func level(id int, formula string, initial []bool, win WinPolarity, limits Limits) Level {
	return Level{
		ID:         id,
		Initial:    initial,
		Expression: circuit.MustParse(formula),
		Win:        win,
		Limits:     limits,
	}
}

func newTestSession(t *testing.T, lvl Level, opts Options) *Session {
	t.Helper()
	s, err := NewSession(lvl, opts)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func TestAndLevelWin(t *testing.T) {
	mgr := NewMemoryManager()
	rec := &recorder{}
	s := newTestSession(t, level(1, "a && b", []bool{false, false}, WinOn, Limits{}), Options{
		Manager:  mgr,
		Observer: rec,
	})

	if !s.Toggle(0) {
		t.Fatal("first toggle should apply")
	}
	if s.Bulb() || s.Phase() != PhaseActive {
		t.Fatalf("after one toggle: bulb=%v phase=%v", s.Bulb(), s.Phase())
	}

	s.Toggle(1)
	if !s.Bulb() {
		t.Fatal("bulb should be lit")
	}
	if s.Phase() != PhaseWinPending {
		t.Fatalf("phase = %v, want win_pending", s.Phase())
	}
	for _, sw := range s.Switches() {
		if sw.Enabled {
			t.Errorf("switch %d should be disabled during win_pending", sw.ID)
		}
	}
	if s.Toggle(0) {
		t.Error("toggle during win_pending should be rejected")
	}

	s.Advance(DefaultWinDelay - time.Millisecond)
	if s.Phase() != PhaseWinPending {
		t.Fatalf("phase = %v before delay elapsed", s.Phase())
	}
	if mgr.Marks(1) != 0 {
		t.Fatal("level marked before delay elapsed")
	}

	s.Advance(time.Millisecond)
	if s.Phase() != PhaseWon {
		t.Fatalf("phase = %v, want won", s.Phase())
	}
	if !mgr.HasStarForLevel(1) {
		t.Error("level should have a star")
	}
	if rec.count(EventCompleted) != 1 {
		t.Errorf("expected 1 completed event, got %d", rec.count(EventCompleted))
	}
}

func TestWinFiresOnce(t *testing.T) {
	mgr := NewMemoryManager()
	s := newTestSession(t, level(3, "a", []bool{false}, WinOn, Limits{}), Options{Manager: mgr})

	s.Toggle(0)
	for i := 0; i < 100; i++ {
		s.Advance(100 * time.Millisecond)
	}
	if mgr.Marks(3) != 1 {
		t.Errorf("expected exactly one completion, got %d", mgr.Marks(3))
	}
	if s.Toggle(0) {
		t.Error("toggle after win should be rejected")
	}
}

func TestStepBudget(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, level(15, "a && b", []bool{false, false}, WinOn, Limits{MaxToggles: 4}), Options{Observer: rec})

	for i := 0; i < 4; i++ {
		if !s.Toggle(0) {
			t.Fatalf("toggle %d should apply", i+1)
		}
		if s.Phase() != PhaseActive {
			t.Fatalf("phase after toggle %d = %v", i+1, s.Phase())
		}
	}
	if left, _ := s.Governor().TogglesLeft(); left != 0 {
		t.Errorf("TogglesLeft = %d, want 0", left)
	}

	if !s.Toggle(0) {
		t.Fatal("fifth toggle should still flip the switch")
	}
	if s.Phase() != PhaseLost {
		t.Fatalf("phase = %v, want lost", s.Phase())
	}
	if !s.Switches()[0].Value {
		t.Error("failing toggle should have flipped switch 0")
	}
	if s.Toggle(1) {
		t.Error("toggle after loss should be rejected")
	}
	if s.ToggleCount() != 5 {
		t.Errorf("ToggleCount = %d, want 5", s.ToggleCount())
	}

	// The toggle event precedes the phase change.
	last := rec.events[len(rec.events)-1]
	prev := rec.events[len(rec.events)-2]
	if prev.Kind != EventToggled || last.Kind != EventPhase || last.Phase != PhaseLost {
		t.Errorf("unexpected event tail: %v then %v", prev.Kind, last.Kind)
	}
}

func TestStepBudgetAllowsWinOnLastToggle(t *testing.T) {
	s := newTestSession(t, level(15, "a && b", []bool{false, false}, WinOn, Limits{MaxToggles: 2}), Options{})

	s.Toggle(0)
	s.Toggle(1)
	if s.Phase() != PhaseWinPending {
		t.Errorf("phase = %v, want win_pending", s.Phase())
	}
}

func TestTimeBudget(t *testing.T) {
	s := newTestSession(t, level(20, "a && b", []bool{false, false}, WinOn, Limits{TimeLimit: time.Second}), Options{})

	s.Advance(900 * time.Millisecond)
	if s.Phase() != PhaseActive {
		t.Fatalf("phase = %v at 0.9s", s.Phase())
	}
	p, ok := s.Governor().Progress()
	if !ok || p < 0.89 || p > 0.91 {
		t.Errorf("Progress = %v (%v), want 0.9", p, ok)
	}

	s.Advance(100 * time.Millisecond)
	if s.Phase() != PhaseLost {
		t.Fatalf("phase = %v, want lost at limit", s.Phase())
	}
	if s.Elapsed() != time.Second {
		t.Errorf("Elapsed = %v, want 1s", s.Elapsed())
	}

	s.Advance(time.Second)
	if s.Elapsed() != time.Second {
		t.Errorf("clock should stop after loss, got %v", s.Elapsed())
	}
}

func TestCountdownTaskDroppedAfterAttempt(t *testing.T) {
	lost := newTestSession(t, level(21, "a && b", []bool{false, false}, WinOn, Limits{TimeLimit: 300 * time.Millisecond}), Options{})
	lost.Advance(300 * time.Millisecond)
	if lost.Phase() != PhaseLost {
		t.Fatalf("phase = %v, want lost", lost.Phase())
	}
	if n := lost.sched.Pending(); n != 0 {
		t.Errorf("pending tasks after loss = %d, want 0", n)
	}
	if fired := lost.sched.Advance(10 * time.Second); fired != 0 {
		t.Errorf("%d tasks fired after loss", fired)
	}

	won := newTestSession(t, level(22, "a", []bool{false}, WinOn, Limits{TimeLimit: time.Second}), Options{})
	won.Advance(200 * time.Millisecond)
	won.Toggle(0)
	if n := won.sched.Pending(); n != 1 {
		t.Errorf("pending tasks during win_pending = %d, want only the win confirmation", n)
	}
	won.Advance(DefaultWinDelay)
	if won.Phase() != PhaseWon {
		t.Fatalf("phase = %v, want won", won.Phase())
	}
	if n := won.sched.Pending(); n != 0 {
		t.Errorf("pending tasks after win = %d, want 0", n)
	}

	won.Reset()
	if n := won.sched.Pending(); n != 1 {
		t.Errorf("reset should re-arm the countdown, pending = %d", n)
	}
}

func TestTimeLimitBetweenTicks(t *testing.T) {
	s := newTestSession(t, level(23, "a && b", []bool{false, false}, WinOn, Limits{TimeLimit: 250 * time.Millisecond}), Options{})

	s.Advance(249 * time.Millisecond)
	if s.Phase() != PhaseActive {
		t.Fatalf("phase = %v at 249ms, want active", s.Phase())
	}
	s.Advance(time.Millisecond)
	if s.Phase() != PhaseLost {
		t.Fatalf("phase = %v at 250ms, want lost", s.Phase())
	}
	if s.Elapsed() != 250*time.Millisecond || s.Governor().Elapsed() != 250*time.Millisecond {
		t.Errorf("Elapsed = %v, governor %v, want 250ms", s.Elapsed(), s.Governor().Elapsed())
	}

	short := newTestSession(t, level(24, "a && b", []bool{false, false}, WinOn, Limits{TimeLimit: 40 * time.Millisecond}), Options{})
	short.Advance(40 * time.Millisecond)
	if short.Phase() != PhaseLost {
		t.Errorf("limit shorter than a tick: phase = %v, want lost", short.Phase())
	}
}

func TestCountdownStopsOnWin(t *testing.T) {
	mgr := NewMemoryManager()
	s := newTestSession(t, level(30, "a", []bool{false}, WinOn, Limits{TimeLimit: 2 * time.Second}), Options{Manager: mgr})

	s.Advance(time.Second)
	s.Toggle(0)
	if s.Phase() != PhaseWinPending {
		t.Fatalf("phase = %v, want win_pending", s.Phase())
	}

	s.Advance(1900 * time.Millisecond)
	if s.Phase() != PhaseWon {
		t.Fatalf("phase = %v, want won; countdown must not fire during win_pending", s.Phase())
	}
	if s.Governor().Elapsed() != time.Second {
		t.Errorf("governor elapsed = %v, want 1s", s.Governor().Elapsed())
	}
	if mgr.Marks(30) != 1 {
		t.Errorf("expected one completion, got %d", mgr.Marks(30))
	}
}

func TestInvertedPolarity(t *testing.T) {
	s := newTestSession(t, level(2, "!a", []bool{false}, WinOff, Limits{}), Options{})

	if !s.Bulb() {
		t.Fatal("!a with a=false should light the bulb")
	}
	s.Toggle(0)
	if s.Bulb() {
		t.Fatal("bulb should be dark")
	}
	if s.Phase() != PhaseWinPending {
		t.Errorf("phase = %v, want win_pending", s.Phase())
	}
}

func TestNeverWins(t *testing.T) {
	s := newTestSession(t, level(101, "a", []bool{false}, WinNever, Limits{}), Options{})

	for i := 0; i < 5; i++ {
		s.Toggle(0)
	}
	s.Advance(10 * time.Second)
	if s.Phase() != PhaseActive {
		t.Errorf("sandbox phase = %v, want active", s.Phase())
	}
}

func TestResetCancelsPendingWin(t *testing.T) {
	mgr := NewMemoryManager()
	rec := &recorder{}
	s := newTestSession(t, level(1, "a && b", []bool{false, false}, WinOn, Limits{}), Options{
		Manager:  mgr,
		Observer: rec,
	})

	s.Toggle(0)
	s.Toggle(1)
	s.Advance(time.Second)
	s.Reset()

	s.Advance(time.Second)
	if s.Phase() != PhaseActive {
		t.Fatalf("stale win timer changed phase to %v", s.Phase())
	}
	if mgr.Marks(1) != 0 {
		t.Fatal("stale win timer marked the level")
	}

	s.Toggle(0)
	s.Toggle(1)
	s.Advance(DefaultWinDelay)
	if s.Phase() != PhaseWon || mgr.Marks(1) != 1 {
		t.Errorf("second attempt: phase=%v marks=%d", s.Phase(), mgr.Marks(1))
	}
	if rec.count(EventReset) != 1 {
		t.Errorf("expected 1 reset event, got %d", rec.count(EventReset))
	}
}

func TestResetRestoresState(t *testing.T) {
	s := newTestSession(t, level(15, "a && b", []bool{false, true}, WinOn, Limits{MaxToggles: 1, TimeLimit: time.Second}), Options{})

	s.Toggle(1)
	s.Toggle(1)
	if s.Phase() != PhaseLost {
		t.Fatalf("phase = %v, want lost", s.Phase())
	}

	s.Reset()
	if s.Phase() != PhaseActive {
		t.Errorf("phase = %v after reset", s.Phase())
	}
	if s.Epoch() != 1 {
		t.Errorf("Epoch = %d, want 1", s.Epoch())
	}
	if s.ToggleCount() != 0 || s.Elapsed() != 0 {
		t.Errorf("counters not reset: toggles=%d elapsed=%v", s.ToggleCount(), s.Elapsed())
	}
	for i, sw := range s.Switches() {
		if sw.Value != s.Level().Initial[i] || sw.HasBeenToggled || !sw.Enabled {
			t.Errorf("switch %d not restored: %+v", i, sw)
		}
	}
	if left, _ := s.Governor().TogglesLeft(); left != 1 {
		t.Errorf("TogglesLeft = %d after reset, want 1", left)
	}

	// The countdown is re-armed for the new attempt.
	s.Advance(time.Second)
	if s.Phase() != PhaseLost {
		t.Errorf("phase = %v, countdown should run after reset", s.Phase())
	}
}

func TestCloseIsInert(t *testing.T) {
	mgr := NewMemoryManager()
	s := newTestSession(t, level(1, "a", []bool{false}, WinOn, Limits{}), Options{Manager: mgr})

	s.Toggle(0)
	s.Close()
	s.Advance(10 * time.Second)

	if mgr.Marks(1) != 0 {
		t.Error("closed session confirmed a win")
	}
	if s.Toggle(0) {
		t.Error("toggle on closed session should be rejected")
	}
	s.Reset()
	if s.Phase() != PhaseWinPending {
		t.Errorf("reset on closed session changed phase to %v", s.Phase())
	}
	if !s.Snapshot().Closed {
		t.Error("snapshot should report closed")
	}
}

func TestCompletionFailure(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, level(1, "a", []bool{false}, WinOn, Limits{}), Options{
		Manager:  failingManager{},
		Observer: rec,
	})

	s.Toggle(0)
	s.Advance(DefaultWinDelay)

	if s.Phase() != PhaseWon {
		t.Errorf("phase = %v, want won despite storage failure", s.Phase())
	}
	if rec.count(EventCompletionError) != 1 {
		t.Errorf("expected a completion_failed event, got %d", rec.count(EventCompletionError))
	}
	if rec.count(EventCompleted) != 0 {
		t.Error("completed event should not be sent on failure")
	}
}

func TestOutOfRangeToggle(t *testing.T) {
	s := newTestSession(t, level(1, "a && b", []bool{false, false}, WinOn, Limits{}), Options{})

	if s.Toggle(-1) || s.Toggle(2) {
		t.Error("out-of-range toggles should be rejected")
	}
	if s.ToggleCount() != 0 {
		t.Errorf("ToggleCount = %d, want 0", s.ToggleCount())
	}
}

func TestNewSessionRejectsInvalidLevels(t *testing.T) {
	tests := []struct {
		name string
		lvl  Level
	}{
		{name: "starts solved", lvl: level(1, "a", []bool{true}, WinOn, Limits{})},
		{name: "starts solved inverted", lvl: level(2, "!a", []bool{true}, WinOff, Limits{})},
		{name: "too few switches", lvl: level(3, "a && c", []bool{false, false}, WinOn, Limits{})},
		{name: "no switches", lvl: level(4, "1", nil, WinOn, Limits{})},
		{name: "negative budget", lvl: level(5, "a", []bool{false}, WinOn, Limits{MaxToggles: -1})},
		{name: "no expression", lvl: Level{ID: 6, Initial: []bool{false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.lvl, Options{})
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("NewSession() error = %v, want ErrInvalidLevel", err)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestSession(t, level(27, "a && b", []bool{false, false}, WinOn, Limits{MaxToggles: 4, TimeLimit: 2 * time.Second}), Options{ID: "fixed"})

	s.Toggle(1)
	s.Advance(500 * time.Millisecond)
	snap := s.Snapshot()

	if snap.SessionID != "fixed" || snap.LevelID != 27 {
		t.Errorf("identity = %q/%d", snap.SessionID, snap.LevelID)
	}
	if !snap.Switches[1] || !snap.Touched[1] || snap.Touched[0] {
		t.Errorf("switch state = %v touched = %v", snap.Switches, snap.Touched)
	}
	if snap.TogglesLeft == nil || *snap.TogglesLeft != 3 {
		t.Errorf("TogglesLeft = %v, want 3", snap.TogglesLeft)
	}
	if snap.Progress == nil || *snap.Progress != 0.25 {
		t.Errorf("Progress = %v, want 0.25", snap.Progress)
	}
	if snap.ElapsedMs != 500 {
		t.Errorf("ElapsedMs = %d, want 500", snap.ElapsedMs)
	}
}

func TestSwitchToggle(t *testing.T) {
	sw := NewSwitch(0, false)
	if !sw.Toggle() || !sw.Value || !sw.HasBeenToggled {
		t.Fatalf("enabled toggle failed: %+v", sw)
	}
	sw.Enabled = false
	if sw.Toggle() || !sw.Value {
		t.Errorf("disabled switch changed: %+v", sw)
	}
}
