package levels

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/logic-arcade/internal/puzzle"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

// ErrUnknownLevel is returned when a pack has no level with the requested id.
var ErrUnknownLevel = errors.New("levels: unknown level")

// Source resolves levels from registered packs with the difficulty factor
// applied to their budgets.
type Source struct {
	Factor float64
}

// Level returns pack/id ready for puzzle.NewSession.
func (s Source) Level(pack string, id int) (puzzle.Level, error) {
	p, err := registry.Get(pack)
	if err != nil {
		return puzzle.Level{}, err
	}

	if lp, ok := p.(*Pack); ok {
		d, ok := lp.Definition(id)
		if !ok {
			return puzzle.Level{}, fmt.Errorf("%w: %s/%d", ErrUnknownLevel, pack, id)
		}
		return d.Scaled(s.Factor).Level(), nil
	}

	lvl, ok := p.Level(id)
	if !ok {
		return puzzle.Level{}, fmt.Errorf("%w: %s/%d", ErrUnknownLevel, pack, id)
	}
	lvl.Limits = lvl.Limits.Scale(s.Factor)
	return lvl, nil
}

// RegisterLoaded adds packs read from disk to the registry. Packs whose name
// is already taken are returned as skipped instead of replacing the original.
func RegisterLoaded(packs []*Pack) (skipped []*Pack) {
	for _, p := range packs {
		if registry.Exists(p.Name()) {
			skipped = append(skipped, p)
			continue
		}
		registry.Register(p)
	}
	return skipped
}
