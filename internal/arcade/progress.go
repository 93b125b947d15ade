package arcade

import (
	"sync"

	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

// MemoryProgress keeps stars in memory, one manager per pack. It stands in
// for the database for the lifetime of the process and is safe for
// concurrent use by SSH sessions.
type MemoryProgress struct {
	mu    sync.Mutex
	packs map[string]*puzzle.MemoryManager
}

// NewMemoryProgress creates empty progress.
func NewMemoryProgress() *MemoryProgress {
	return &MemoryProgress{packs: make(map[string]*puzzle.MemoryManager)}
}

// Pack returns the manager for pack, creating it on first use.
func (p *MemoryProgress) Pack(pack string) *puzzle.MemoryManager {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.packs[pack]
	if !ok {
		m = puzzle.NewMemoryManager()
		p.packs[pack] = m
	}
	return m
}

// ResetAllStars clears the stars of every pack.
func (p *MemoryProgress) ResetAllStars() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range p.packs {
		m.ResetAllStars() //nolint:errcheck // Never fails
	}
	return nil
}
