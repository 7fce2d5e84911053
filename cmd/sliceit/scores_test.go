package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/sliceit/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestShowRun(t *testing.T) {
	store := openTestStore(t)
	id, err := store.SaveRun(storage.RunRecord{
		GameID:    "arcade",
		Player:    "kim",
		Score:     640,
		MaxCombo:  9,
		Level:     4,
		Duration:  61 * time.Second,
		EndReason: "time_up",
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	var out bytes.Buffer
	if err := showRun(&out, store, id); err != nil {
		t.Fatalf("showRun() failed: %v", err)
	}
	for _, want := range []string{id, "arcade", "kim", "640", "x9", "1m1s", "time_up"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	if err := showRun(&out, store, "missing"); err == nil {
		t.Error("showRun() with an unknown id should fail")
	}
}

func TestClearScoresKeepsOtherModes(t *testing.T) {
	store := openTestStore(t)
	for _, mode := range []string{"classic", "zen"} {
		if _, err := store.SaveScore(mode, "ann", 100); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	var out bytes.Buffer
	if err := clearScores(&out, store, "classic"); err != nil {
		t.Fatalf("clearScores() failed: %v", err)
	}
	if !strings.Contains(out.String(), "classic") {
		t.Errorf("output = %q, expected the cleared mode", out.String())
	}

	if scores, _ := store.TopScores("classic", storage.MaxScores); len(scores) != 0 {
		t.Errorf("classic scores = %d after clear, expected 0", len(scores))
	}
	if scores, _ := store.TopScores("zen", storage.MaxScores); len(scores) != 1 {
		t.Errorf("zen scores = %d, expected 1", len(scores))
	}
}
