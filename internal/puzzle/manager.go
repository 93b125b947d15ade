package puzzle

import "sync"

// LevelManager records level completion. The session calls it exactly once
// per confirmed win.
type LevelManager interface {
	MarkLevelAsCompleted(levelID int) error
	HasStarForLevel(levelID int) bool
}

// MemoryManager is an in-process LevelManager, used when no database is
// configured and in tests.
type MemoryManager struct {
	mu    sync.Mutex
	marks map[int]int
}

// NewMemoryManager creates an empty manager.
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{marks: make(map[int]int)}
}

// MarkLevelAsCompleted awards a star. Repeated marks keep the star.
func (m *MemoryManager) MarkLevelAsCompleted(levelID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marks[levelID]++
	return nil
}

// HasStarForLevel reports whether the level has been completed.
func (m *MemoryManager) HasStarForLevel(levelID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.marks[levelID] > 0
}

// Marks returns how many times the level was marked complete.
func (m *MemoryManager) Marks(levelID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.marks[levelID]
}

// ResetAllStars clears every star.
func (m *MemoryManager) ResetAllStars() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.marks)
	return nil
}
