package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		name  string
		score int
	}{{"ann", 100}, {"bob", 50}, {"cid", 200}} {
		if _, err := store.SaveScore("classic", s.name, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("zen", "dee", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	expected := []struct {
		name  string
		score int
	}{{"cid", 200}, {"ann", 100}, {"bob", 50}}
	for i, e := range expected {
		if scores[i].Name != e.name || scores[i].Score != e.score {
			t.Errorf("scores[%d] = %s/%d, expected %s/%d", i, scores[i].Name, scores[i].Score, e.name, e.score)
		}
		if scores[i].GameID != "classic" {
			t.Errorf("scores[%d].GameID = %q, expected classic", i, scores[i].GameID)
		}
	}

	zenScores, err := store.TopScores("zen", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(zenScores) != 1 {
		t.Errorf("Expected 1 zen score, got %d", len(zenScores))
	}
}

func TestStoreSaveScoreRank(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name     string
		score    int
		expected int
	}{
		{"a", 100, 1},
		{"b", 300, 1},
		{"c", 200, 2},
		{"d", 200, 3}, // ties keep the earlier entry first
		{"e", 50, 5},
	}
	for _, tt := range tests {
		rank, err := store.SaveScore("classic", tt.name, tt.score)
		if err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
		if rank != tt.expected {
			t.Errorf("SaveScore(%s, %d) rank = %d, expected %d", tt.name, tt.score, rank, tt.expected)
		}
	}
}

func TestStoreTruncatesToTopTen(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 12; i++ {
		if _, err := store.SaveScore("classic", "p", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("classic", 100)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != MaxScores {
		t.Fatalf("len(scores) = %d, expected %d", len(scores), MaxScores)
	}
	if scores[0].Score != 120 {
		t.Errorf("top score = %d, expected 120", scores[0].Score)
	}
	if scores[MaxScores-1].Score != 30 {
		t.Errorf("lowest kept score = %d, expected 30", scores[MaxScores-1].Score)
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Errorf("scores not sorted descending at %d: %v", i, scores)
		}
	}

	// A score below the cut does not make the list.
	rank, err := store.SaveScore("classic", "late", 5)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if rank != 0 {
		t.Errorf("rank for truncated score = %d, expected 0", rank)
	}

	// A tie with the lowest entry loses to the earlier one.
	rank, err = store.SaveScore("classic", "tie", 30)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if rank != 0 {
		t.Errorf("rank for tied score = %d, expected 0", rank)
	}

	scores, _ = store.TopScores("classic", 100)
	if len(scores) != MaxScores {
		t.Errorf("len(scores) = %d after extra saves, expected %d", len(scores), MaxScores)
	}
}

func TestStoreQualifies(t *testing.T) {
	store := openTestStore(t)

	ok, err := store.Qualifies("classic", 0)
	if err != nil {
		t.Fatalf("Qualifies() failed: %v", err)
	}
	if !ok {
		t.Error("Qualifies() on empty list = false, expected true")
	}

	for i := 1; i <= MaxScores; i++ {
		store.SaveScore("classic", "p", i*10)
	}

	tests := []struct {
		score    int
		expected bool
	}{
		{5, false},
		{10, false},
		{11, true},
		{1000, true},
	}
	for _, tt := range tests {
		ok, err := store.Qualifies("classic", tt.score)
		if err != nil {
			t.Fatalf("Qualifies() failed: %v", err)
		}
		if ok != tt.expected {
			t.Errorf("Qualifies(%d) = %v, expected %v", tt.score, ok, tt.expected)
		}
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
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	store.SaveScore("classic", "a", 100)
	store.SaveScore("classic", "b", 300)
	store.SaveScore("classic", "c", 200)

	high, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("classic", "a", 100)
	store.SaveScore("classic", "b", 200)
	store.SaveScore("zen", "c", 300)

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classicScores, _ := store.TopScores("classic", 10)
	if len(classicScores) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classicScores))
	}

	zenScores, _ := store.TopScores("zen", 10)
	if len(zenScores) != 1 {
		t.Errorf("Zen scores should not be affected by clearing classic")
	}
}

func TestStoreAchievements(t *testing.T) {
	store := openTestStore(t)

	ids, err := store.UnlockedAchievements()
	if err != nil {
		t.Fatalf("UnlockedAchievements() failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no achievements, got %v", ids)
	}

	for _, id := range []string{"firstSlice", "comboMaster", "firstSlice"} {
		if err := store.UnlockAchievement(id); err != nil {
			t.Fatalf("UnlockAchievement(%s) failed: %v", id, err)
		}
	}

	ids, err = store.UnlockedAchievements()
	if err != nil {
		t.Fatalf("UnlockedAchievements() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "firstSlice" || ids[1] != "comboMaster" {
		t.Errorf("UnlockedAchievements() = %v, expected [firstSlice comboMaster]", ids)
	}

	entries, err := store.Achievements()
	if err != nil {
		t.Fatalf("Achievements() failed: %v", err)
	}
	for _, e := range entries {
		if e.UnlockedAt.IsZero() {
			t.Errorf("achievement %s has no unlock time", e.ID)
		}
	}

	if err := store.ResetAchievements(); err != nil {
		t.Fatalf("ResetAchievements() failed: %v", err)
	}
	ids, _ = store.UnlockedAchievements()
	if len(ids) != 0 {
		t.Errorf("Expected no achievements after reset, got %v", ids)
	}
}

func TestStoreAchievementsPersistAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.UnlockAchievement("bombDefuser")
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	ids, err := store.UnlockedAchievements()
	if err != nil {
		t.Fatalf("UnlockedAchievements() failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "bombDefuser" {
		t.Errorf("UnlockedAchievements() = %v, expected [bombDefuser]", ids)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{
		GameID:        "classic",
		Player:        "ann",
		Score:         420,
		MaxCombo:      7,
		ObjectsSliced: 33,
		Level:         3,
		Duration:      90 * time.Second,
		EndReason:     "lives_exhausted",
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveRun() returned empty id")
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunByID() returned nil")
	}
	if run.Score != 420 || run.MaxCombo != 7 || run.ObjectsSliced != 33 || run.Level != 3 {
		t.Errorf("RunByID() = %+v, fields do not match", run)
	}
	if run.Duration != 90*time.Second {
		t.Errorf("Duration = %v, expected 90s", run.Duration)
	}
	if run.EndReason != "lives_exhausted" {
		t.Errorf("EndReason = %q, expected lives_exhausted", run.EndReason)
	}

	missing, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("RunByID(nope) = %+v, expected nil", missing)
	}

	if _, err := store.SaveRun(RunRecord{ID: "fixed", GameID: "zen", Score: 10, EndReason: "quit"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(RecentRuns) = %d, expected 2", len(runs))
	}
	if runs[0].ID != "fixed" {
		t.Errorf("most recent run = %s, expected fixed", runs[0].ID)
	}

	classicRuns, _ := store.RecentRuns("classic", 10)
	if len(classicRuns) != 1 || classicRuns[0].ID != id {
		t.Errorf("RecentRuns(classic) = %v, expected only %s", classicRuns, id)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveRun(RunRecord{GameID: "classic", Score: 100, MaxCombo: 4, ObjectsSliced: 10, Duration: time.Minute, EndReason: "lives_exhausted"})
	store.SaveRun(RunRecord{GameID: "classic", Score: 300, MaxCombo: 9, ObjectsSliced: 20, Duration: time.Minute, EndReason: "bomb_sliced"})
	store.SaveRun(RunRecord{GameID: "arcade", Score: 50, MaxCombo: 2, ObjectsSliced: 5, Duration: time.Minute, EndReason: "time_up"})

	stats, err = store.GetGameStats("classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, expected 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, expected 400", stats.TotalScore)
	}
	if stats.BestCombo != 9 {
		t.Errorf("BestCombo = %d, expected 9", stats.BestCombo)
	}
	if stats.TotalSliced != 30 {
		t.Errorf("TotalSliced = %d, expected 30", stats.TotalSliced)
	}
	if stats.PlayTime != 2*time.Minute {
		t.Errorf("PlayTime = %v, expected 2m", stats.PlayTime)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(GetAllGamesStats) = %d, expected 2", len(all))
	}
	if all["arcade"] == nil || all["arcade"].HighScore != 50 {
		t.Errorf("arcade stats = %+v", all["arcade"])
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
