package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// MaxScores is the length of every mode's high-score list.
const MaxScores = 10

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Name      string
	Score     int
	CreatedAt time.Time
}

// SaveScore records a score and truncates the mode's list to the top MaxScores.
// Ties keep the earlier entry first. It returns the 1-based rank of the new
// entry, or 0 if it did not make the list.
func (s *Store) SaveScore(gameID, name string, score int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		"INSERT INTO scores (game_id, name, score) VALUES (?, ?, ?)",
		gameID, name, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM scores
		 WHERE game_id = ? AND id NOT IN (
			SELECT id FROM scores WHERE game_id = ?
			ORDER BY score DESC, id ASC
			LIMIT ?
		 )`,
		gameID, gameID, MaxScores,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot truncate scores: %w", err)
	}

	var kept bool
	if err := tx.QueryRow("SELECT EXISTS (SELECT 1 FROM scores WHERE id = ?)", id).Scan(&kept); err != nil {
		return 0, fmt.Errorf("storage: cannot rank score: %w", err)
	}

	rank := 0
	if kept {
		err = tx.QueryRow(
			`SELECT COUNT(*) + 1 FROM scores
			 WHERE game_id = ? AND (score > ? OR (score = ? AND id < ?))`,
			gameID, score, score, id,
		).Scan(&rank)
		if err != nil {
			return 0, fmt.Errorf("storage: cannot rank score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return rank, nil
}

// Qualifies reports whether score would enter the mode's high-score list.
func (s *Store) Qualifies(gameID string, score int) (bool, error) {
	var count int
	var lowest sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), MIN(score) FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&count, &lowest)
	if err != nil {
		return false, fmt.Errorf("storage: cannot check score: %w", err)
	}
	if count < MaxScores || !lowest.Valid {
		return true, nil
	}
	return int64(score) > lowest.Int64, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending, earlier entries first on ties.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = MaxScores
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, name, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Name, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
