package main

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/logic-arcade/internal/config"
	"github.com/vovakirdan/logic-arcade/internal/journal"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		flagConfig, flagDBPath, flagDifficulty, flagJournal = "", "", "", ""
		flagTPS = 0
	})
}

func TestLoadSettingsFlagsWin(t *testing.T) {
	resetFlags(t)
	t.Setenv("LOGIC_DIFFICULTY", "easy")

	db := filepath.Join(t.TempDir(), "p.db")
	flagDBPath = db
	flagTPS = 30
	flagDifficulty = "hard"
	flagJournal = "/tmp/j"

	cfg, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings() failed: %v", err)
	}
	if cfg.Paths.DB != db || cfg.TickRate != 30 || cfg.Paths.JournalDir != "/tmp/j" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Difficulty != config.DifficultyHard {
		t.Errorf("Difficulty = %q, flag should beat env", cfg.Difficulty)
	}
}

func TestLoadSettingsBadDifficulty(t *testing.T) {
	resetFlags(t)
	flagDifficulty = "nightmare"
	if _, err := loadSettings(); err == nil {
		t.Error("unknown difficulty flag should fail")
	}
}

func TestSetupOpensStore(t *testing.T) {
	resetFlags(t)
	flagDBPath = filepath.Join(t.TempDir(), "progress.db")
	flagJournal = t.TempDir()

	env, err := setup(false)
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	defer env.Close()

	if env.Services.Store == nil || env.Services.Fallback != nil {
		t.Error("setup should use the database when it opens")
	}
	if env.Services.Journal == nil {
		t.Error("--journal should enable the journal")
	}
	if env.Runtime.WinDelay != 1500*time.Millisecond || env.Runtime.LimitFactor != 1 {
		t.Errorf("unexpected runtime %+v", env.Runtime)
	}
}

func TestBudget(t *testing.T) {
	tests := []struct {
		limits puzzle.Limits
		want   string
	}{
		{limits: puzzle.Limits{}, want: "-"},
		{limits: puzzle.Limits{MaxToggles: 4}, want: "4 moves"},
		{limits: puzzle.Limits{MaxToggles: 4, TimeLimit: 15 * time.Second}, want: "4 moves, 15s"},
	}
	for _, tt := range tests {
		if got := budget(registry.Entry{Limits: tt.limits}); got != tt.want {
			t.Errorf("budget(%+v) = %q, want %q", tt.limits, got, tt.want)
		}
	}
}

func TestFormatEntry(t *testing.T) {
	e := journal.Entry{
		Time: time.Date(2026, 10, 15, 14, 3, 7, 0, time.UTC),
		Pack: "campaign",
		Event: puzzle.Event{
			Kind:     puzzle.EventToggled,
			LevelID:  3,
			Index:    1,
			Snapshot: puzzle.Snapshot{Switches: []bool{false, true}, Bulb: true},
		},
	}
	line := formatEntry(e)
	for _, want := range []string{"14:03:07.000", "campaign", "toggled", "switch 1 -> on, bulb 1"} {
		if !strings.Contains(line, want) {
			t.Errorf("formatEntry() = %q, missing %q", line, want)
		}
	}
}
