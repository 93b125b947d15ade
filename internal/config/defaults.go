package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Language:   "en",
		Difficulty: DifficultyNormal,
		TickRate:   10,
		Timing: Timing{
			WinDelayMs:        1500,
			CountdownPeriodMs: 100,
		},
		Paths: Paths{
			DB: "~/.logic-arcade/progress.db",
		},
		Server: Server{
			SSHAddr: ":2222",
			HostKey: ".ssh/logic_host_ed25519",
		},
	}
}
