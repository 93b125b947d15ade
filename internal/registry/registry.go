// Package registry provides a global registry of level packs.
// Packs register themselves in init() functions, allowing the front ends
// to discover them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

// ErrUnknownPack is returned by Get for names that were never registered.
var ErrUnknownPack = errors.New("registry: unknown pack")

// Pack is an ordered collection of playable levels.
type Pack interface {
	// Name returns a unique identifier (e.g., "campaign").
	// Used for CLI flags and the WebSocket HELLO message.
	Name() string

	// Title returns a human-readable name for display.
	Title() string

	// Entries lists the levels in play order.
	Entries() []Entry

	// Level returns the engine view of one level.
	Level(id int) (puzzle.Level, bool)
}

// Entry describes a level for menus and listings.
type Entry struct {
	ID       int
	Name     string
	Hint     string
	Formula  string
	Switches int
	Win      puzzle.WinPolarity
	Limits   puzzle.Limits
}

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	Name  string
	Title string
	Count int
}

var (
	packs = make(map[string]Pack)
	mu    sync.RWMutex
)

// Register adds a pack to the registry.
// Panics if a pack with the same name is already registered.
func Register(p Pack) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := packs[p.Name()]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", p.Name()))
	}
	packs[p.Name()] = p
}

// List returns information about all registered packs, sorted by name.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(packs))
	for name, p := range packs {
		result = append(result, PackInfo{
			Name:  name,
			Title: p.Title(),
			Count: len(p.Entries()),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Get returns a pack by name.
func Get(name string) (Pack, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := packs[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPack, name)
	}
	return p, nil
}

// Exists checks if a pack with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := packs[name]
	return ok
}
