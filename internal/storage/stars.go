package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

// Star is one completed level.
type Star struct {
	Pack        string
	LevelID     int
	CompletedAt time.Time
}

// MarkCompleted awards a star. Completing a level again keeps the first
// completion time.
func (s *Store) MarkCompleted(pack string, levelID int) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO stars (pack, level_id) VALUES (?, ?)",
		pack, levelID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot mark level %s/%d: %w", pack, levelID, err)
	}
	return nil
}

// HasStar reports whether the level has been completed.
func (s *Store) HasStar(pack string, levelID int) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM stars WHERE pack = ? AND level_id = ?",
		pack, levelID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query star: %w", err)
	}
	return n > 0, nil
}

// Stars lists completed levels of a pack ordered by level id.
// An empty pack lists every pack.
func (s *Store) Stars(pack string) ([]Star, error) {
	query := `SELECT pack, level_id, completed_at FROM stars`
	args := []any{}
	if pack != "" {
		query += ` WHERE pack = ?`
		args = append(args, pack)
	}
	query += ` ORDER BY pack, level_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stars: %w", err)
	}
	defer rows.Close()

	var stars []Star
	for rows.Next() {
		var st Star
		var completedAt any
		if err := rows.Scan(&st.Pack, &st.LevelID, &completedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.CompletedAt = parseTime(completedAt)
		stars = append(stars, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stars, nil
}

// ResetAllStars deletes every star. Attempt history is kept.
func (s *Store) ResetAllStars() error {
	if _, err := s.db.Exec("DELETE FROM stars"); err != nil {
		return fmt.Errorf("storage: cannot reset stars: %w", err)
	}
	return nil
}

// PackProgress binds the store to one pack so it can serve as the engine's
// level manager.
type PackProgress struct {
	store *Store
	pack  string
}

// Progress returns the level manager for pack.
func (s *Store) Progress(pack string) *PackProgress {
	return &PackProgress{store: s, pack: pack}
}

// MarkLevelAsCompleted implements puzzle.LevelManager.
func (p *PackProgress) MarkLevelAsCompleted(levelID int) error {
	return p.store.MarkCompleted(p.pack, levelID)
}

// HasStarForLevel implements puzzle.LevelManager. Read errors count as no star.
func (p *PackProgress) HasStarForLevel(levelID int) bool {
	ok, err := p.store.HasStar(p.pack, levelID)
	return err == nil && ok
}

// ResetAllStars clears every star in every pack.
func (p *PackProgress) ResetAllStars() error {
	return p.store.ResetAllStars()
}

var _ puzzle.LevelManager = (*PackProgress)(nil)
