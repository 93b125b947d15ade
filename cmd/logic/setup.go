package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/logic-arcade/internal/arcade"
	"github.com/vovakirdan/logic-arcade/internal/config"
	"github.com/vovakirdan/logic-arcade/internal/core"
	"github.com/vovakirdan/logic-arcade/internal/journal"
	"github.com/vovakirdan/logic-arcade/internal/levels"
	"github.com/vovakirdan/logic-arcade/internal/storage"
)

// environment is everything a command needs to run sessions.
type environment struct {
	Settings config.Settings
	Runtime  core.RuntimeConfig
	Services arcade.Services

	closers []io.Closer
}

// Close releases the store, the journal and the log file.
func (e *environment) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
	e.closers = nil
}

// loadSettings reads the settings file and applies the global flags on top.
func loadSettings() (config.Settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDBPath != "" {
		cfg.Paths.DB = flagDBPath
	}
	if flagTPS > 0 {
		cfg.TickRate = flagTPS
	}
	if flagJournal != "" {
		cfg.Paths.JournalDir = flagJournal
	}
	if flagDifficulty != "" {
		d, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		cfg.Difficulty = d
	}
	return cfg, nil
}

// setup builds the environment. Interactive commands log to a file so the
// terminal UI is not overwritten.
func setup(interactive bool) (*environment, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, err
	}

	env := &environment{Settings: cfg}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	env.Runtime = core.RuntimeConfig{
		ScreenW:         width,
		ScreenH:         height,
		TickRate:        cfg.TickRate,
		WinDelay:        cfg.Timing.WinDelay(),
		CountdownPeriod: cfg.Timing.CountdownPeriod(),
		LimitFactor:     config.LimitFactor(cfg.Difficulty),
		Pack:            levels.CampaignPack,
		Language:        cfg.Language,
	}

	logger := env.newLogger(interactive)
	env.Services = arcade.Services{
		Logger:          logger,
		Levels:          levels.Source{Factor: env.Runtime.LimitFactor},
		WinDelay:        env.Runtime.WinDelay,
		CountdownPeriod: env.Runtime.CountdownPeriod,
	}

	store, err := storage.Open(cfg.Paths.DB)
	if err != nil {
		// Continue without storage - stars last for this run only
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		env.Services.Fallback = arcade.NewMemoryProgress()
	} else {
		env.Services.Store = store
		env.closers = append(env.closers, store)
	}

	if dir := cfg.Paths.JournalDir; dir != "" {
		w := journal.NewWriter(config.ExpandPath(dir), "session")
		env.Services.Journal = w
		env.closers = append(env.closers, w)
	}

	if dir := cfg.Paths.LevelsDir; dir != "" {
		packs, err := levels.NewLoader(config.ExpandPath(dir)).LoadAll()
		if err != nil {
			logger.Warn("cannot load level packs", "dir", dir, "error", err)
		}
		registerPacks(logger, packs)
	}

	return env, nil
}

// mustSetup is setup for commands that cannot run without it.
func mustSetup(interactive bool) *environment {
	env, err := setup(interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return env
}

func (e *environment) newLogger(interactive bool) *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "logic",
	}
	if !interactive {
		return log.NewWithOptions(os.Stderr, opts)
	}

	path := filepath.Join(filepath.Dir(config.UserSettingsPath()), "logic.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.NewWithOptions(io.Discard, opts)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.NewWithOptions(io.Discard, opts)
	}
	e.closers = append(e.closers, f)
	return log.NewWithOptions(f, opts)
}

func registerPacks(logger *log.Logger, packs []*levels.Pack) {
	for _, p := range levels.RegisterLoaded(packs) {
		logger.Warn("pack name already taken, skipping", "pack", p.Name())
	}
}
