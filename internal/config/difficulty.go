package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the valid presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParseDifficulty validates a preset name.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// LimitFactor returns the multiplier applied to step and time budgets.
// Easy levels get more room; fixed plays levels exactly as authored.
func LimitFactor(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.75
	default:
		return 1.0
	}
}
