// Package arcade wires the puzzle engine to the collaborators every front end
// shares: the star store, attempt history, the session journal, and logging.
package arcade

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/logic-arcade/internal/journal"
	"github.com/vovakirdan/logic-arcade/internal/levels"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
	"github.com/vovakirdan/logic-arcade/internal/storage"
)

// Services holds the shared collaborators. Every field is optional.
type Services struct {
	Store    *storage.Store  // Stars and attempt history
	Journal  *journal.Writer // Compressed event journal
	Logger   *log.Logger
	Fallback *MemoryProgress // Used when Store is nil
	Levels   levels.Source

	WinDelay        time.Duration
	CountdownPeriod time.Duration
}

// Manager returns the level manager for pack.
func (s Services) Manager(pack string) puzzle.LevelManager {
	if s.Store != nil {
		return s.Store.Progress(pack)
	}
	if s.Fallback != nil {
		return s.Fallback.Pack(pack)
	}
	return nil
}

// HasStar reports whether pack/id has been completed.
func (s Services) HasStar(pack string, id int) bool {
	m := s.Manager(pack)
	return m != nil && m.HasStarForLevel(id)
}

// NewSession starts pack/id with every configured observer attached.
// Extra observers run after the built-in ones.
func (s Services) NewSession(pack string, id int, extra ...puzzle.Observer) (*puzzle.Session, error) {
	lvl, err := s.Levels.Level(pack, id)
	if err != nil {
		return nil, err
	}

	var obs puzzle.Observers
	if s.Store != nil {
		rec := s.Store.Recorder(pack)
		rec.OnError = s.warn("cannot record attempt", pack)
		obs = append(obs, rec)
	}
	if s.Journal != nil {
		j := journal.New(s.Journal, pack)
		j.OnError = s.warn("cannot write journal", pack)
		obs = append(obs, j)
	}
	if s.Logger != nil {
		obs = append(obs, LogObserver(s.Logger, pack))
	}
	obs = append(obs, extra...)

	return puzzle.NewSession(lvl, puzzle.Options{
		WinDelay:   s.WinDelay,
		TickPeriod: s.CountdownPeriod,
		Manager:    s.Manager(pack),
		Observer:   obs,
	})
}

func (s Services) warn(msg, pack string) func(error) {
	return func(err error) {
		if s.Logger != nil {
			s.Logger.Warn(msg, "pack", pack, "error", err)
		}
	}
}

// LogObserver logs session events. Toggles and resets are debug noise; phase
// changes and completions are info.
func LogObserver(l *log.Logger, pack string) puzzle.Observer {
	return puzzle.ObserverFunc(func(e puzzle.Event) {
		kv := []any{"pack", pack, "level", e.LevelID, "session", e.SessionID, "epoch", e.Epoch}
		switch e.Kind {
		case puzzle.EventToggled:
			l.Debug("switch toggled", append(kv, "index", e.Index, "bulb", e.Snapshot.Bulb)...)
		case puzzle.EventReset:
			l.Debug("level reset", kv...)
		case puzzle.EventPhase:
			l.Info("phase changed", append(kv, "phase", e.Phase, "toggles", e.Snapshot.ToggleCount)...)
		case puzzle.EventCompleted:
			l.Info("star awarded", kv...)
		case puzzle.EventCompletionError:
			l.Warn("cannot save star", append(kv, "error", e.Error)...)
		case puzzle.EventClosed:
			l.Debug("session closed", append(kv, "phase", e.Phase)...)
		}
	})
}
