package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/sliceit/internal/registry"
)

// AchievementEntry is an unlocked achievement.
type AchievementEntry struct {
	ID         string
	UnlockedAt time.Time
}

// Ensure Store implements AchievementStore
var _ registry.AchievementStore = (*Store)(nil)

// UnlockAchievement records id as unlocked. Unlocking twice is a no-op.
func (s *Store) UnlockAchievement(id string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO achievements (id) VALUES (?)", id)
	if err != nil {
		return fmt.Errorf("storage: cannot unlock achievement %s: %w", id, err)
	}
	return nil
}

// UnlockedAchievements returns every unlocked id in unlock order.
func (s *Store) UnlockedAchievements() ([]string, error) {
	entries, err := s.Achievements()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// Achievements returns every unlocked achievement with its unlock time.
func (s *Store) Achievements() ([]AchievementEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, unlocked_at FROM achievements ORDER BY unlocked_at ASC, rowid ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	var entries []AchievementEntry
	for rows.Next() {
		var e AchievementEntry
		var unlockedAt any
		if err := rows.Scan(&e.ID, &unlockedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UnlockedAt = parseTime(unlockedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ResetAchievements deletes every unlocked achievement.
func (s *Store) ResetAchievements() error {
	if _, err := s.db.Exec("DELETE FROM achievements"); err != nil {
		return fmt.Errorf("storage: cannot reset achievements: %w", err)
	}
	return nil
}
