package core

import "time"

// RuntimeConfig contains the settings a front end needs to run sessions.
// It is derived from config.Settings in main and never read by the engine.
type RuntimeConfig struct {
	ScreenW         int           // Screen width in characters
	ScreenH         int           // Screen height in characters
	TickRate        int           // Frames per second (default 10)
	WinDelay        time.Duration // Delay before a solved board counts as won
	CountdownPeriod time.Duration // Countdown resolution of timed levels
	LimitFactor     float64       // Difficulty multiplier for step and time budgets
	Pack            string        // Level pack to play
	Language        string        // BCP 47 tag used to format numbers
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:         80,
		ScreenH:         24,
		TickRate:        10,
		WinDelay:        1500 * time.Millisecond,
		CountdownPeriod: 100 * time.Millisecond,
		LimitFactor:     1.0,
		Pack:            "campaign",
		Language:        "en",
	}
}

// TickInterval returns the wall-clock time between frames.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return 100 * time.Millisecond
	}
	return time.Second / time.Duration(c.TickRate)
}
