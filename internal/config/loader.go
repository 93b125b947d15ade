package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the settings file name in every search location.
const SettingsFile = "settings.yaml"

// Load reads settings, applies LOGIC_* environment overrides, and normalizes
// the result.
// Search order: customPath -> ~/.logic-arcade/settings.yaml -> ./configs/settings.yaml -> embedded default
func Load(customPath string) (Settings, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg, nil); err != nil {
		return cfg, err
	}
	return Normalize(cfg)
}

func loadFile(customPath string) (Settings, error) {
	cfg := DefaultSettings()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandPath(customPath))
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserSettingsPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultSettings()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", SettingsFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultSettings()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSettingsYAML, &cfg); err != nil {
		return DefaultSettings(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ApplyEnv overrides fields from LOGIC_* variables. A nil environ reads the
// process environment.
func ApplyEnv(cfg *Settings, environ map[string]string) error {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Normalize validates the difficulty, canonicalizes the language tag, and
// replaces non-positive timings with defaults.
func Normalize(cfg Settings) (Settings, error) {
	def := DefaultSettings()

	if cfg.Difficulty == "" {
		cfg.Difficulty = def.Difficulty
	}
	preset, err := ParseDifficulty(string(cfg.Difficulty))
	if err != nil {
		return cfg, err
	}
	cfg.Difficulty = preset

	cfg.Language = NormalizeLanguage(cfg.Language).String()

	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.Timing.WinDelayMs <= 0 {
		cfg.Timing.WinDelayMs = def.Timing.WinDelayMs
	}
	if cfg.Timing.CountdownPeriodMs <= 0 {
		cfg.Timing.CountdownPeriodMs = def.Timing.CountdownPeriodMs
	}
	return cfg, nil
}

// Save writes settings as YAML, creating parent directories.
// An empty path writes to the user settings location.
func Save(path string, cfg Settings) error {
	if path == "" {
		path = UserSettingsPath()
		if path == "" {
			return fmt.Errorf("config: cannot locate home directory")
		}
	}
	path = ExpandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: cannot encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return nil
}

// MarkIntroSeen sets seen_intro in the settings file found by the search
// order and writes it back. Environment overrides are not persisted.
func MarkIntroSeen(customPath string) error {
	cfg, err := loadFile(customPath)
	if err != nil {
		return err
	}
	cfg.SeenIntro = true
	return Save(customPath, cfg)
}

// UserSettingsPath returns ~/.logic-arcade/settings.yaml, or "" without a home.
func UserSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".logic-arcade", SettingsFile)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
