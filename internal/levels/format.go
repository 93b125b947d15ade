package levels

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/logic-arcade/internal/circuit"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

// packFile is the YAML layout of a level pack.
type packFile struct {
	Pack   string      `yaml:"pack"`
	Title  string      `yaml:"title"`
	Levels []levelFile `yaml:"levels"`
}

type levelFile struct {
	ID       int         `yaml:"id"`
	Name     string      `yaml:"name"`
	Hint     string      `yaml:"hint,omitempty"`
	Switches int         `yaml:"switches"`
	Initial  []bool      `yaml:"initial"`
	Formula  string      `yaml:"formula"`
	Win      string      `yaml:"win,omitempty"`
	Limits   *limitsFile `yaml:"limits,omitempty"`
}

type limitsFile struct {
	MaxToggles int     `yaml:"max_toggles,omitempty"`
	TimeLimit  float64 `yaml:"time_limit,omitempty"` // seconds
}

// Parse validates data against the pack schema, then builds and checks every
// definition.
func Parse(data []byte) (*Pack, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var f packFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("levels: cannot decode pack: %w", err)
	}

	defs := make([]Definition, 0, len(f.Levels))
	for _, lf := range f.Levels {
		d, err := lf.definition()
		if err != nil {
			return nil, fmt.Errorf("levels: pack %s: %w", f.Pack, err)
		}
		defs = append(defs, d)
	}

	p, err := NewPack(f.Pack, f.Title, defs)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	return p, nil
}

func (lf levelFile) definition() (Definition, error) {
	expr, err := circuit.Parse(lf.Formula)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: level %d: %w", ErrInvalidLevel, lf.ID, err)
	}
	win, err := puzzle.ParseWinPolarity(lf.Win)
	if err != nil {
		return Definition{}, fmt.Errorf("%w: level %d: %w", ErrInvalidLevel, lf.ID, err)
	}

	d := Definition{
		ID:          lf.ID,
		Name:        lf.Name,
		Hint:        lf.Hint,
		SwitchCount: lf.Switches,
		Initial:     lf.Initial,
		Formula:     lf.Formula,
		Expression:  expr,
		Win:         win,
	}
	if lf.Limits != nil {
		d.Limits = puzzle.Limits{
			MaxToggles: lf.Limits.MaxToggles,
			TimeLimit:  time.Duration(lf.Limits.TimeLimit * float64(time.Second)),
		}
	}
	return d, nil
}
