package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search order only sees files the test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Difficulty != DifficultyNormal {
		t.Errorf("Difficulty = %q, want normal", cfg.Difficulty)
	}
	if cfg.Timing.WinDelay() != 1500*time.Millisecond {
		t.Errorf("WinDelay = %v, want 1.5s", cfg.Timing.WinDelay())
	}
	if cfg.Timing.CountdownPeriod() != 100*time.Millisecond {
		t.Errorf("CountdownPeriod = %v, want 100ms", cfg.Timing.CountdownPeriod())
	}
	if cfg.Language != "en" {
		t.Errorf("Language = %q, want en", cfg.Language)
	}
	if cfg.SeenIntro {
		t.Error("SeenIntro should default to false")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", SettingsFile), "difficulty: easy\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Difficulty != DifficultyEasy {
		t.Errorf("local config: Difficulty = %q, want easy", cfg.Difficulty)
	}

	writeFile(t, filepath.Join(home, ".logic-arcade", SettingsFile), "difficulty: hard\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Difficulty != DifficultyHard {
		t.Errorf("user config: Difficulty = %q, want hard", cfg.Difficulty)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "difficulty: fixed\nlanguage: zh\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Difficulty != DifficultyFixed || cfg.Language != "zh-Hans" {
		t.Errorf("custom config: Difficulty = %q Language = %q", cfg.Difficulty, cfg.Language)
	}
	if cfg.TickRate != 10 {
		t.Error("fields missing from the file should keep defaults")
	}
}

func TestLoadCustomErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := Load(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(work, "bad.yaml")
	writeFile(t, bad, "difficulty: [unclosed\n")
	if _, err := Load(bad); err == nil {
		t.Error("malformed custom file should fail")
	}

	unknown := filepath.Join(work, "unknown.yaml")
	writeFile(t, unknown, "difficulty: nightmare\n")
	if _, err := Load(unknown); err == nil {
		t.Error("unknown difficulty should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("LOGIC_DIFFICULTY", "hard")
	t.Setenv("LOGIC_WIN_DELAY_MS", "250")
	t.Setenv("LOGIC_DB", "/tmp/other.db")
	t.Setenv("LOGIC_LANGUAGE", "zh-CN")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Difficulty != DifficultyHard {
		t.Errorf("Difficulty = %q, want hard", cfg.Difficulty)
	}
	if cfg.Timing.WinDelayMs != 250 {
		t.Errorf("WinDelayMs = %d, want 250", cfg.Timing.WinDelayMs)
	}
	if cfg.Paths.DB != "/tmp/other.db" {
		t.Errorf("Paths.DB = %q", cfg.Paths.DB)
	}
	if cfg.Language != "zh-Hans" {
		t.Errorf("Language = %q, want zh-Hans", cfg.Language)
	}
}

func TestApplyEnvMap(t *testing.T) {
	cfg := DefaultSettings()
	err := ApplyEnv(&cfg, map[string]string{
		"LOGIC_SEEN_INTRO": "true",
		"LOGIC_WS_ADDR":    ":8080",
	})
	if err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if !cfg.SeenIntro || cfg.Server.WSAddr != ":8080" {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	if err := ApplyEnv(&cfg, map[string]string{"LOGIC_TPS": "fast"}); err == nil {
		t.Error("non-numeric LOGIC_TPS should fail")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "en"},
		{in: "en-GB", want: "en"},
		{in: "zh", want: "zh-Hans"},
		{in: "zh-Hans-CN", want: "zh-Hans"},
		{in: "fr", want: "en"},
		{in: "not a tag", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeLanguage(tt.in).String(); got != tt.want {
				t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeFillsTimings(t *testing.T) {
	cfg, err := Normalize(Settings{})
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}
	if cfg.Difficulty != DifficultyNormal || cfg.TickRate != 10 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timing.WinDelayMs != 1500 || cfg.Timing.CountdownPeriodMs != 100 {
		t.Errorf("timings not filled: %+v", cfg.Timing)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", SettingsFile)

	cfg := DefaultSettings()
	cfg.SeenIntro = true
	cfg.Difficulty = DifficultyEasy
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !loaded.SeenIntro || loaded.Difficulty != DifficultyEasy {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestMarkIntroSeen(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, SettingsFile)
	writeFile(t, path, "difficulty: hard\ntick_rate: 20\n")
	t.Setenv("LOGIC_TPS", "40")

	if err := MarkIntroSeen(path); err != nil {
		t.Fatalf("MarkIntroSeen() failed: %v", err)
	}

	os.Unsetenv("LOGIC_TPS")
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !loaded.SeenIntro {
		t.Error("SeenIntro should be saved")
	}
	if loaded.Difficulty != DifficultyHard || loaded.TickRate != 20 {
		t.Errorf("file settings changed: Difficulty = %q TickRate = %d", loaded.Difficulty, loaded.TickRate)
	}
}

func TestLimitFactor(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		want   float64
	}{
		{DifficultyEasy, 1.5},
		{DifficultyNormal, 1.0},
		{DifficultyHard, 0.75},
		{DifficultyFixed, 1.0},
	}
	for _, tt := range tests {
		if got := LimitFactor(tt.preset); got != tt.want {
			t.Errorf("LimitFactor(%s) = %v, want %v", tt.preset, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := isolate(t)

	if got := ExpandPath("~/x.db"); got != filepath.Join(home, "x.db") {
		t.Errorf("ExpandPath(~/x.db) = %q", got)
	}
	if got := ExpandPath("/abs/x.db"); got != "/abs/x.db" {
		t.Errorf("ExpandPath(/abs/x.db) = %q", got)
	}
}
