package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		game, player string
		score        int
	}{
		{"runner", "ana", 10},
		{"runner", "bo", 5},
		{"runner", "ana", 20},
		{"runner_tap", "bo", 50},
	}
	for _, s := range saves {
		if _, err := store.SaveScore(s.game, s.player, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("runner", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []struct {
		player string
		score  int
	}{{"ana", 20}, {"ana", 10}, {"bo", 5}}
	for i, w := range want {
		if scores[i].Player != w.player || scores[i].Score != w.score {
			t.Errorf("scores[%d] = %s/%d, want %s/%d", i, scores[i].Player, scores[i].Score, w.player, w.score)
		}
	}

	tapScores, err := store.TopScores("runner_tap", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(tapScores) != 1 {
		t.Errorf("Expected 1 runner_tap score, got %d", len(tapScores))
	}
}

func TestStoreAnonymousPlayer(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore("runner", "  ", 3); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, _ := store.TopScores("runner", 1)
	if len(scores) != 1 || scores[0].Player != AnonymousPlayer {
		t.Errorf("scores = %+v, want one anonymous entry", scores)
	}
}

func TestStoreRejectsNegativeScore(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore("runner", "ana", -1); err == nil {
		t.Error("SaveScore() accepted a negative score")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "p", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("runner", "ana", 100)
	store.SaveScore("runner", "bo", 300)
	store.SaveScore("runner", "ana", 200)

	high, err = store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	best, err := store.PlayerBest("runner", "ana")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if best != 200 {
		t.Errorf("Expected ana's best of 200, got %d", best)
	}

	best, _ = store.PlayerBest("runner", "nobody")
	if best != 0 {
		t.Errorf("Expected 0 for unknown player, got %d", best)
	}

	mine, err := store.PlayerScores("runner", "ana", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(mine) != 2 || mine[0].Score != 200 {
		t.Errorf("PlayerScores() = %+v", mine)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("runner", "ana", 100)
	store.SaveScore("runner", "ana", 200)
	store.SaveScore("runner_rush", "ana", 300)

	if err := store.ClearScores("runner"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	runnerScores, _ := store.TopScores("runner", 10)
	if len(runnerScores) != 0 {
		t.Errorf("Expected 0 runner scores after clear, got %d", len(runnerScores))
	}

	rushScores, _ := store.TopScores("runner_rush", 10)
	if len(rushScores) != 1 {
		t.Errorf("runner_rush scores should not be affected by clearing runner")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", "p", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("runner", "ana", 4)
	store.SaveScore("runner", "bo", 8)
	store.SaveScore("runner", "ana", 6)
	store.SaveScore("runner_tap", "bo", 1)

	stats, err := store.GetGameStats("runner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 || stats.HighScore != 8 || stats.TotalScore != 18 || stats.AvgScore != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["runner_tap"].HighScore != 1 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestStoreMigratesLegacyScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO scores (game_id, score) VALUES ('runner', 42);
	`)
	db.Close()
	if err != nil {
		t.Fatalf("legacy schema failed: %v", err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed on legacy database: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("runner", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 42 || scores[0].Player != AnonymousPlayer {
		t.Errorf("legacy scores = %+v", scores)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
