package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader handles loading level packs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new pack loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all pack files.
// Invalid files are reported together; valid packs are still returned.
// Packs are sorted by name for deterministic ordering.
func (l *Loader) LoadAll() ([]*Pack, error) {
	var (
		packs []*Pack
		bad   []string
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		p, err := LoadFile(path)
		if err != nil {
			bad = append(bad, err.Error())
			return nil
		}
		packs = append(packs, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(packs, func(i, j int) bool {
		return packs[i].Name() < packs[j].Name()
	})

	if len(bad) > 0 {
		return packs, fmt.Errorf("%w: %s", ErrInvalidLevel, strings.Join(bad, "; "))
	}
	return packs, nil
}

// LoadFile loads and validates a single pack file.
func LoadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.FilePath = path
	return p, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
