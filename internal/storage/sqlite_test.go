package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-blast/internal/games/blast"
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
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore("blast", 1, 10); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if hs, _ := store.HighScore("blast", 1); hs != 10 {
		t.Errorf("expected 10, got %d", hs)
	}
}

func TestStoreScoresByLevel(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		level, score int
	}{
		{1, 100}, {1, 50}, {1, 200}, {2, 500},
	}
	for _, s := range saves {
		if _, err := store.SaveScore("blast", s.level, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("blast", 1, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w || scores[i].Level != 1 {
			t.Errorf("score %d: expected level 1 score %d, got %+v", i, w, scores[i])
		}
	}

	all, err := store.TopScores("blast", 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 || all[0].Score != 500 {
		t.Errorf("level 0 should span all levels, got %+v", all)
	}
	if all[0].CreatedAt.IsZero() {
		t.Error("created_at was not parsed")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore("blast", 1, i*10); err != nil {
			t.Fatal(err)
		}
	}

	scores, err := store.TopScores("blast", 1, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 5 {
		t.Errorf("expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("expected top score 190, got %d", scores[0].Score)
	}

	scores, _ = store.TopScores("blast", 1, 0)
	if len(scores) != 10 {
		t.Errorf("zero limit should default to 10, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	hs, err := store.HighScore("blast", 3)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if hs != 0 {
		t.Errorf("expected 0 with no scores, got %d", hs)
	}

	store.SaveScore("blast", 3, 40)
	store.SaveScore("blast", 3, 90)
	store.SaveScore("blast", 4, 300)

	if hs, _ = store.HighScore("blast", 3); hs != 90 {
		t.Errorf("expected level high score 90, got %d", hs)
	}
	if hs, _ = store.HighScore("blast", 0); hs != 300 {
		t.Errorf("expected overall high score 300, got %d", hs)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blast", 1, 100)
	store.SaveScore("other", 1, 100)

	if err := store.ClearScores("blast"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("blast", 0, 10); len(scores) != 0 {
		t.Errorf("expected no scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", 0, 10); len(scores) != 1 {
		t.Error("clearing one game should not touch another")
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LevelStats(2)
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if empty.Plays != 0 || empty.Wins != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unplayed level should be zero, got %+v", empty)
	}

	results := []LevelResult{
		{Level: 2, Won: false, MovesLeft: 0, Score: 300},
		{Level: 2, Won: true, MovesLeft: 4, Score: 900},
		{Level: 2, Won: true, MovesLeft: 7, Score: 800},
		{Level: 3, Won: true, MovesLeft: 9, Score: 100},
	}
	for _, r := range results {
		if err := store.RecordResult(r); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	stats, err := store.LevelStats(2)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Plays != 3 || stats.Wins != 2 || stats.BestScore != 900 || stats.BestMoves != 7 {
		t.Errorf("unexpected stats %+v", stats)
	}

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[3].Wins != 1 || all[3].BestMoves != 9 {
		t.Errorf("unexpected AllLevelStats %+v", all)
	}
}

func TestStoreSaveGame(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LoadGame(1); err != nil || ok {
		t.Fatalf("expected no save, got ok=%v err=%v", ok, err)
	}

	if err := store.SaveGame(1, "first"); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if err := store.SaveGame(1, "second"); err != nil {
		t.Fatalf("SaveGame() overwrite failed: %v", err)
	}
	store.SaveGame(4, "other")

	payload, ok, err := store.LoadGame(1)
	if err != nil || !ok || payload != "second" {
		t.Errorf("LoadGame(1) = %q, %v, %v", payload, ok, err)
	}

	levels, err := store.SavedLevels()
	if err != nil {
		t.Fatal(err)
	}
	if len(levels) != 2 || levels[0] != 1 || levels[1] != 4 {
		t.Errorf("SavedLevels() = %v", levels)
	}

	if err := store.DeleteSave(1); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if err := store.DeleteSave(1); err != nil {
		t.Errorf("deleting a missing save should not fail: %v", err)
	}
	if _, ok, _ := store.LoadGame(1); ok {
		t.Error("save still present after delete")
	}
}

func TestStoreUnlockedLevel(t *testing.T) {
	store := openTestStore(t)

	n, err := store.UnlockedLevel()
	if err != nil || n != 1 {
		t.Fatalf("fresh store should unlock level 1, got %d, %v", n, err)
	}

	steps := []struct {
		set, want int
	}{
		{3, 3},
		{2, 3}, // never lowered
		{5, 5},
	}
	for _, s := range steps {
		if err := store.SetUnlockedLevel(s.set); err != nil {
			t.Fatalf("SetUnlockedLevel(%d) failed: %v", s.set, err)
		}
		if n, _ := store.UnlockedLevel(); n != s.want {
			t.Errorf("after SetUnlockedLevel(%d): expected %d, got %d", s.set, s.want, n)
		}
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.blast/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".blast", "test.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestSaveResult(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveResult(blast.Result{Level: 2, Won: true, MovesLeft: 3, Score: 450}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	stats, err := store.LevelStats(2)
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Plays != 1 || stats.Wins != 1 || stats.BestMoves != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}

	high, err := store.HighScore(blast.ID, 2)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 450 {
		t.Errorf("expected high score 450, got %d", high)
	}
}
