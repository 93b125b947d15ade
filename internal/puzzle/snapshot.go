package puzzle

// Snapshot is an immutable copy of session state for rendering and transport.
type Snapshot struct {
	SessionID   string   `json:"session_id"`
	LevelID     int      `json:"level_id"`
	Epoch       uint64   `json:"epoch"`
	Switches    []bool   `json:"switches"`
	Enabled     []bool   `json:"enabled"`
	Touched     []bool   `json:"touched"`
	Bulb        bool     `json:"bulb"`
	Phase       Phase    `json:"phase"`
	Win         string   `json:"win"`
	ToggleCount int      `json:"toggle_count"`
	ElapsedMs   int64    `json:"elapsed_ms"`
	Progress    *float64 `json:"progress,omitempty"`
	TogglesLeft *int     `json:"toggles_left,omitempty"`
	Closed      bool     `json:"closed,omitempty"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:   s.id,
		LevelID:     s.level.ID,
		Epoch:       s.epoch,
		Switches:    make([]bool, len(s.switches)),
		Enabled:     make([]bool, len(s.switches)),
		Touched:     make([]bool, len(s.switches)),
		Bulb:        s.bulb,
		Phase:       s.phase,
		Win:         s.level.Win.String(),
		ToggleCount: s.toggles,
		ElapsedMs:   s.Elapsed().Milliseconds(),
		Closed:      s.closed,
	}
	for i, sw := range s.switches {
		snap.Switches[i] = sw.Value
		snap.Enabled[i] = sw.Enabled
		snap.Touched[i] = sw.HasBeenToggled
	}
	if s.governor != nil {
		if p, ok := s.governor.Progress(); ok {
			snap.Progress = &p
		}
		if n, ok := s.governor.TogglesLeft(); ok {
			snap.TogglesLeft = &n
		}
	}
	return snap
}
