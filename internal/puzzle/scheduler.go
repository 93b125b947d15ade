package puzzle

import "time"

// TaskID identifies a scheduled task. Zero is never issued.
type TaskID uint64

type task struct {
	id    TaskID
	due   time.Duration
	every time.Duration
	seq   uint64
	fn    func()
}

// Scheduler runs deferred work on a logical clock. Time only moves when
// Advance is called, so tests never sleep and replays are deterministic.
// Tasks due at the same instant fire in the order they were scheduled.
type Scheduler struct {
	now    time.Duration
	nextID TaskID
	seq    uint64
	tasks  []*task
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current logical time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	return s.add(d, 0, fn)
}

// Every schedules fn to run every period, first firing one period from now.
func (s *Scheduler) Every(period time.Duration, fn func()) TaskID {
	if period <= 0 {
		return 0
	}
	return s.add(period, period, fn)
}

func (s *Scheduler) add(delay, every time.Duration, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	s.tasks = append(s.tasks, &task{
		id:    s.nextID,
		due:   s.now + delay,
		every: every,
		seq:   s.seq,
		fn:    fn,
	})
	return s.nextID
}

// Cancel removes a pending task. Returns false if it already ran or never existed.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	s.tasks = nil
}

// Pending returns the number of scheduled tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock forward by dt, running every task that falls due.
// Tasks may schedule or cancel other tasks while running.
// Returns the number of task executions.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0

	for {
		i := s.nextDue(target)
		if i < 0 {
			break
		}
		t := s.tasks[i]
		s.now = t.due

		if t.every > 0 {
			// Re-arm before running so the task can cancel itself.
			s.seq++
			t.due += t.every
			t.seq = s.seq
		} else {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		}

		t.fn()
		fired++
	}

	s.now = target
	return fired
}

// nextDue returns the index of the earliest task due at or before target, or -1.
func (s *Scheduler) nextDue(target time.Duration) int {
	best := -1
	for i, t := range s.tasks {
		if t.due > target {
			continue
		}
		if best < 0 || t.due < s.tasks[best].due ||
			(t.due == s.tasks[best].due && t.seq < s.tasks[best].seq) {
			best = i
		}
	}
	return best
}
