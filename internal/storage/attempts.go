package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

// Outcome is how an attempt ended.
type Outcome string

const (
	OutcomeWon       Outcome = "won"
	OutcomeLost      Outcome = "lost"
	OutcomeAbandoned Outcome = "abandoned"
)

// Attempt is one finished try at a level.
type Attempt struct {
	ID        int64
	SessionID string
	Epoch     uint64
	Pack      string
	LevelID   int
	Outcome   Outcome
	Toggles   int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// RecordAttempt saves an attempt and returns its row id.
func (s *Store) RecordAttempt(a Attempt) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO attempts (session_id, epoch, pack, level_id, outcome, toggles, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.SessionID, int64(a.Epoch), a.Pack, a.LevelID, string(a.Outcome), a.Toggles, a.Elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save attempt: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Attempts returns the most recent attempts at one level, newest first.
func (s *Store) Attempts(pack string, levelID int, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, epoch, pack, level_id, outcome, toggles, elapsed_ms, created_at
		 FROM attempts
		 WHERE pack = ? AND level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		pack, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var (
			a         Attempt
			epoch     int64
			outcome   string
			elapsedMs int64
			createdAt any
		)
		if err := rows.Scan(&a.ID, &a.SessionID, &epoch, &a.Pack, &a.LevelID, &outcome, &a.Toggles, &elapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.Epoch = uint64(epoch)
		a.Outcome = Outcome(outcome)
		a.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		a.CreatedAt = parseTime(createdAt)
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return attempts, nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Pack        string
	LevelID     int
	Attempts    int
	Wins        int
	Losses      int
	BestToggles int           // fewest toggles in a win, 0 without wins
	BestTime    time.Duration // fastest win, 0 without wins
	LastPlayed  time.Time
}

// Stats returns per-level statistics for a pack, keyed by level id.
func (s *Store) Stats(pack string) (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN outcome = 'won' THEN toggles END), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'won' THEN elapsed_ms END), 0),
		        MAX(created_at)
		 FROM attempts
		 WHERE pack = ?
		 GROUP BY level_id`,
		pack,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		st := LevelStats{Pack: pack}
		var bestMs int64
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Attempts, &st.Wins, &st.Losses, &st.BestToggles, &bestMs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestTime = time.Duration(bestMs) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// Recorder is a puzzle.Observer that writes one attempt row when a session
// wins or loses, or is reset or closed mid-attempt after at least one toggle.
type Recorder struct {
	store *Store
	pack  string

	// OnError receives write failures. Optional.
	OnError func(error)
}

// Recorder returns an attempt recorder for pack.
func (s *Store) Recorder(pack string) *Recorder {
	return &Recorder{store: s, pack: pack}
}

// OnEvent implements puzzle.Observer.
func (r *Recorder) OnEvent(e puzzle.Event) {
	snap := e.Snapshot
	var outcome Outcome
	switch {
	case e.Kind == puzzle.EventPhase && e.Phase == puzzle.PhaseWon:
		outcome = OutcomeWon
	case e.Kind == puzzle.EventPhase && e.Phase == puzzle.PhaseLost:
		outcome = OutcomeLost
	case e.Kind == puzzle.EventClosed && e.Phase == puzzle.PhaseActive && e.Snapshot.ToggleCount > 0:
		outcome = OutcomeAbandoned
	case e.Kind == puzzle.EventReset && e.Previous != nil &&
		e.Previous.Phase == puzzle.PhaseActive && e.Previous.ToggleCount > 0:
		outcome = OutcomeAbandoned
		snap = *e.Previous
	default:
		return
	}

	_, err := r.store.RecordAttempt(Attempt{
		SessionID: e.SessionID,
		Epoch:     snap.Epoch,
		Pack:      r.pack,
		LevelID:   e.LevelID,
		Outcome:   outcome,
		Toggles:   snap.ToggleCount,
		Elapsed:   time.Duration(snap.ElapsedMs) * time.Millisecond,
	})
	if err != nil && r.OnError != nil {
		r.OnError(err)
	}
}

var _ puzzle.Observer = (*Recorder)(nil)
