package levels

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/logic-arcade/internal/puzzle"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

// Pack is a validated, ordered set of level definitions.
type Pack struct {
	name  string
	title string
	defs  []Definition
	byID  map[int]int

	// FilePath is set for packs loaded from disk.
	FilePath string
}

// NewPack validates defs and orders them by id.
func NewPack(name, title string, defs []Definition) (*Pack, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: pack has no name", ErrInvalidLevel)
	}
	if title == "" {
		title = name
	}

	sorted := append([]Definition(nil), defs...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	p := &Pack{
		name:  name,
		title: title,
		defs:  sorted,
		byID:  make(map[int]int, len(sorted)),
	}
	for i, d := range sorted {
		if _, dup := p.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: pack %s has duplicate level id %d", ErrInvalidLevel, name, d.ID)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("pack %s: %w", name, err)
		}
		p.byID[d.ID] = i
	}
	return p, nil
}

// Name returns the pack identifier.
func (p *Pack) Name() string { return p.name }

// Title returns the display title.
func (p *Pack) Title() string { return p.title }

// Len returns the number of levels.
func (p *Pack) Len() int { return len(p.defs) }

// Definitions returns the levels in id order.
func (p *Pack) Definitions() []Definition {
	return append([]Definition(nil), p.defs...)
}

// Definition returns one level by id.
func (p *Pack) Definition(id int) (Definition, bool) {
	i, ok := p.byID[id]
	if !ok {
		return Definition{}, false
	}
	return p.defs[i], true
}

// Entries implements registry.Pack.
func (p *Pack) Entries() []registry.Entry {
	out := make([]registry.Entry, len(p.defs))
	for i, d := range p.defs {
		out[i] = d.Entry()
	}
	return out
}

// Level implements registry.Pack.
func (p *Pack) Level(id int) (puzzle.Level, bool) {
	d, ok := p.Definition(id)
	if !ok {
		return puzzle.Level{}, false
	}
	return d.Level(), true
}

// Next returns the id that follows id in play order.
func (p *Pack) Next(id int) (int, bool) {
	i, ok := p.byID[id]
	if !ok || i+1 >= len(p.defs) {
		return 0, false
	}
	return p.defs[i+1].ID, true
}
