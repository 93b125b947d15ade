package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/logic-arcade/internal/circuit"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsStars(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.MarkCompleted("campaign", 7); err != nil {
		t.Fatalf("MarkCompleted() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	ok, err := store.HasStar("campaign", 7)
	if err != nil || !ok {
		t.Errorf("HasStar() = %v, %v after reopen", ok, err)
	}
}

func TestStars(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []int{3, 1, 3} {
		if err := store.MarkCompleted("campaign", id); err != nil {
			t.Fatalf("MarkCompleted(%d) failed: %v", id, err)
		}
	}
	if err := store.MarkCompleted("extra", 1); err != nil {
		t.Fatalf("MarkCompleted() failed: %v", err)
	}

	stars, err := store.Stars("campaign")
	if err != nil {
		t.Fatalf("Stars() failed: %v", err)
	}
	if len(stars) != 2 {
		t.Fatalf("Expected 2 stars, got %d", len(stars))
	}
	if stars[0].LevelID != 1 || stars[1].LevelID != 3 {
		t.Errorf("Stars should be ordered by level, got %d, %d", stars[0].LevelID, stars[1].LevelID)
	}
	if stars[0].CompletedAt.IsZero() {
		t.Error("CompletedAt should be set")
	}

	all, err := store.Stars("")
	if err != nil {
		t.Fatalf("Stars(\"\") failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 stars across packs, got %d", len(all))
	}

	if ok, _ := store.HasStar("extra", 3); ok {
		t.Error("stars must be scoped to their pack")
	}

	if err := store.ResetAllStars(); err != nil {
		t.Fatalf("ResetAllStars() failed: %v", err)
	}
	all, _ = store.Stars("")
	if len(all) != 0 {
		t.Errorf("Expected no stars after reset, got %d", len(all))
	}
}

func TestPackProgressIsLevelManager(t *testing.T) {
	store := openTestStore(t)
	var mgr puzzle.LevelManager = store.Progress("campaign")

	if mgr.HasStarForLevel(3) {
		t.Fatal("fresh store should have no stars")
	}

	lvl := puzzle.Level{
		ID:         3,
		Initial:    []bool{false, false},
		Expression: circuit.MustParse("a && b"),
	}
	s, err := puzzle.NewSession(lvl, puzzle.Options{Manager: mgr})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.Toggle(0)
	s.Toggle(1)
	s.Advance(puzzle.DefaultWinDelay)

	if !mgr.HasStarForLevel(3) {
		t.Error("winning the session should award a star")
	}
}

func TestAttemptsAndStats(t *testing.T) {
	store := openTestStore(t)

	attempts := []Attempt{
		{SessionID: "s1", Pack: "campaign", LevelID: 15, Outcome: OutcomeLost, Toggles: 5, Elapsed: 4 * time.Second},
		{SessionID: "s1", Epoch: 1, Pack: "campaign", LevelID: 15, Outcome: OutcomeWon, Toggles: 4, Elapsed: 3 * time.Second},
		{SessionID: "s2", Pack: "campaign", LevelID: 15, Outcome: OutcomeWon, Toggles: 2, Elapsed: 5 * time.Second},
		{SessionID: "s3", Pack: "campaign", LevelID: 16, Outcome: OutcomeAbandoned, Toggles: 1},
	}
	for _, a := range attempts {
		if _, err := store.RecordAttempt(a); err != nil {
			t.Fatalf("RecordAttempt() failed: %v", err)
		}
	}

	got, err := store.Attempts("campaign", 15, 10)
	if err != nil {
		t.Fatalf("Attempts() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 attempts, got %d", len(got))
	}
	if got[0].SessionID != "s2" {
		t.Errorf("Attempts should be newest first, got %s", got[0].SessionID)
	}
	if got[1].Epoch != 1 || got[1].Elapsed != 3*time.Second {
		t.Errorf("unexpected attempt %+v", got[1])
	}

	stats, err := store.Stats("campaign")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	st := stats[15]
	if st == nil {
		t.Fatal("missing stats for level 15")
	}
	if st.Attempts != 3 || st.Wins != 2 || st.Losses != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", st.Attempts, st.Wins, st.Losses)
	}
	if st.BestToggles != 2 {
		t.Errorf("BestToggles = %d, want 2", st.BestToggles)
	}
	if st.BestTime != 3*time.Second {
		t.Errorf("BestTime = %v, want 3s", st.BestTime)
	}
	if stats[16].Wins != 0 || stats[16].BestToggles != 0 {
		t.Errorf("level 16 stats = %+v", stats[16])
	}
}

func TestRecorder(t *testing.T) {
	store := openTestStore(t)

	lvl := puzzle.Level{
		ID:         15,
		Initial:    []bool{false, false},
		Expression: circuit.MustParse("a && b"),
		Limits:     puzzle.Limits{MaxToggles: 1},
	}
	s, err := puzzle.NewSession(lvl, puzzle.Options{Observer: store.Recorder("campaign")})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	s.Toggle(0)
	s.Toggle(1) // over budget
	s.Reset()
	s.Toggle(0)
	s.Close() // abandoned mid-attempt

	got, err := store.Attempts("campaign", 15, 10)
	if err != nil {
		t.Fatalf("Attempts() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 attempts, got %d", len(got))
	}
	if got[0].Outcome != OutcomeAbandoned || got[0].Epoch != 1 || got[0].Toggles != 1 {
		t.Errorf("latest attempt = %+v", got[0])
	}
	if got[1].Outcome != OutcomeLost || got[1].Toggles != 2 {
		t.Errorf("first attempt = %+v", got[1])
	}
}

func TestRecorderResetMidAttempt(t *testing.T) {
	store := openTestStore(t)

	lvl := puzzle.Level{
		ID:         4,
		Initial:    []bool{false, false},
		Expression: circuit.MustParse("a && b"),
	}
	s, err := puzzle.NewSession(lvl, puzzle.Options{Observer: store.Recorder("campaign")})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	s.Toggle(0)
	s.Advance(700 * time.Millisecond)
	s.Reset() // abandoned after one toggle
	s.Reset() // nothing toggled, nothing recorded
	s.Toggle(0)
	s.Toggle(1)
	s.Advance(2 * time.Second)
	s.Reset() // after a win
	s.Close()

	got, err := store.Attempts("campaign", 4, 10)
	if err != nil {
		t.Fatalf("Attempts() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 attempts, got %d: %+v", len(got), got)
	}
	if got[0].Outcome != OutcomeWon || got[0].Epoch != 2 || got[0].Toggles != 2 {
		t.Errorf("latest attempt = %+v", got[0])
	}
	first := got[1]
	if first.Outcome != OutcomeAbandoned || first.Epoch != 0 || first.Toggles != 1 {
		t.Errorf("reset attempt = %+v", first)
	}
	if first.Elapsed != 700*time.Millisecond {
		t.Errorf("reset attempt Elapsed = %v, want 700ms", first.Elapsed)
	}
}
