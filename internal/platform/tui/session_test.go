package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm, cmd
}

func TestSessionNavigation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store := openTestStore(t)
	m := NewSessionModel(testServices(store), testConfig())

	if len(m.menu.items) == 0 {
		t.Fatal("menu has no modes")
	}
	if m.menu.items[0].GameID != "classic" {
		t.Errorf("first mode = %q, expected classic", m.menu.items[0].GameID)
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v after tab, expected scores", m.screen)
	}
	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v after esc, expected menu", m.screen)
	}
	if cmd != nil {
		t.Error("returning to the menu should not quit the program")
	}

	m, _ = updateSession(t, m, runes("a"))
	if m.screen != screenAchievements {
		t.Fatalf("screen = %v after a, expected achievements", m.screen)
	}
	if len(m.achievements.rows) != 10 {
		t.Errorf("achievement rows = %d, expected 10", len(m.achievements.rows))
	}
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v after esc, expected menu", m.screen)
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v after enter, expected game", m.screen)
	}
	if m.gameModel.game.ID() != "classic" {
		t.Errorf("game = %q, expected classic", m.gameModel.game.ID())
	}

	// Pause, then leave.
	m, _ = updateSession(t, m, runes("p"))
	m, _ = updateSession(t, m, TickMsg{Loop: m.gameModel.loop})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v after leaving, expected menu", m.screen)
	}

	m, cmd = updateSession(t, m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestAchievementRowsReflectStore(t *testing.T) {
	store := openTestStore(t)
	if err := store.UnlockAchievement("firstSlice"); err != nil {
		t.Fatalf("UnlockAchievement() failed: %v", err)
	}

	rows, err := LoadAchievementRows(store)
	if err != nil {
		t.Fatalf("LoadAchievementRows() failed: %v", err)
	}
	unlocked := 0
	for _, r := range rows {
		if r.Unlocked {
			unlocked++
			if r.ID != "firstSlice" {
				t.Errorf("unexpected unlocked row %q", r.ID)
			}
			if r.UnlockedAt == "" {
				t.Error("unlocked row has no time")
			}
		}
	}
	if unlocked != 1 {
		t.Errorf("unlocked = %d, expected 1", unlocked)
	}

	rows, err = LoadAchievementRows(nil)
	if err != nil || len(rows) != 10 {
		t.Errorf("LoadAchievementRows(nil) = %d rows, %v", len(rows), err)
	}
}
