// Package config provides YAML-based settings loading, environment
// overrides, and difficulty presets for the arcade front ends.
package config

import "time"

// Settings is the user-facing configuration. It is loaded once in main and
// passed down explicitly; the puzzle engine never reads it.
type Settings struct {
	Language   string           `yaml:"language" env:"LOGIC_LANGUAGE"`
	Difficulty DifficultyPreset `yaml:"difficulty" env:"LOGIC_DIFFICULTY"`
	SeenIntro  bool             `yaml:"seen_intro" env:"LOGIC_SEEN_INTRO"`
	TickRate   int              `yaml:"tick_rate" env:"LOGIC_TPS"`
	Timing     Timing           `yaml:"timing"`
	Paths      Paths            `yaml:"paths"`
	Server     Server           `yaml:"server"`
}

// Timing holds engine timing in milliseconds.
type Timing struct {
	WinDelayMs        int `yaml:"win_delay_ms" env:"LOGIC_WIN_DELAY_MS"`
	CountdownPeriodMs int `yaml:"countdown_period_ms" env:"LOGIC_COUNTDOWN_PERIOD_MS"`
}

// Paths locates files on disk. Empty JournalDir disables the journal;
// empty LevelsDir uses only the built-in packs.
type Paths struct {
	DB         string `yaml:"db" env:"LOGIC_DB"`
	JournalDir string `yaml:"journal_dir" env:"LOGIC_JOURNAL_DIR"`
	LevelsDir  string `yaml:"levels_dir" env:"LOGIC_LEVELS_DIR"`
}

// Server configures `logic serve`. An empty address disables that listener.
type Server struct {
	SSHAddr string `yaml:"ssh_addr" env:"LOGIC_SSH_ADDR"`
	WSAddr  string `yaml:"ws_addr" env:"LOGIC_WS_ADDR"`
	HostKey string `yaml:"host_key" env:"LOGIC_HOST_KEY"`
}

// WinDelay returns the win confirmation delay.
func (t Timing) WinDelay() time.Duration {
	return time.Duration(t.WinDelayMs) * time.Millisecond
}

// CountdownPeriod returns the countdown tick period.
func (t Timing) CountdownPeriod() time.Duration {
	return time.Duration(t.CountdownPeriodMs) * time.Millisecond
}

// TickInterval returns the front-end frame interval.
func (s Settings) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return 100 * time.Millisecond
	}
	return time.Second / time.Duration(s.TickRate)
}
