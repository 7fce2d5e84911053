package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/sliceit/internal/registry"
)

// RunRecord is the history entry written at the end of every run.
type RunRecord struct {
	ID            string
	GameID        string
	Player        string
	Score         int
	MaxCombo      int
	ObjectsSliced int
	Level         int
	Duration      time.Duration
	EndReason     string
	CreatedAt     time.Time
}

// RunFromSummary builds a history record for a finished run.
func RunFromSummary(gameID, player string, sum registry.RunSummary) RunRecord {
	return RunRecord{
		GameID:        gameID,
		Player:        player,
		Score:         sum.Score,
		MaxCombo:      sum.MaxCombo,
		ObjectsSliced: sum.ObjectsSliced,
		Level:         sum.Level,
		Duration:      sum.Duration,
		EndReason:     sum.EndReason,
	}
}

// SaveRun appends a run to the history and returns its id.
// A new UUID is generated when the record has none.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, game_id, player, score, max_combo, objects_sliced, level, duration_ms, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.GameID,
		r.Player,
		r.Score,
		r.MaxCombo,
		r.ObjectsSliced,
		r.Level,
		r.Duration.Milliseconds(),
		r.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

// RunByID retrieves a run by its id. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, game_id, player, score, max_combo, objects_sliced, level, duration_ms, end_reason, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, optionally for one game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, score, max_combo, objects_sliced, level, duration_ms, end_reason, created_at
		 FROM runs
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (RunRecord, error) {
	var r RunRecord
	var durationMS int64
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.GameID,
		&r.Player,
		&r.Score,
		&r.MaxCombo,
		&r.ObjectsSliced,
		&r.Level,
		&durationMS,
		&r.EndReason,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string
	GamesCount  int
	HighScore   int
	AvgScore    float64
	TotalScore  int64
	BestCombo   int
	TotalSliced int64
	PlayTime    time.Duration
	LastPlayed  time.Time
}

const statsColumns = `game_id, COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(SUM(score), 0), COALESCE(MAX(max_combo), 0), COALESCE(SUM(objects_sliced), 0),
	COALESCE(SUM(duration_ms), 0), MAX(created_at)`

func scanStats(sc rowScanner) (*GameStats, error) {
	var st GameStats
	var playMS int64
	var lastPlayed any
	err := sc.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore,
		&st.TotalScore, &st.BestCombo, &st.TotalSliced, &playMS, &lastPlayed)
	if err != nil {
		return nil, err
	}
	st.PlayTime = time.Duration(playMS) * time.Millisecond
	st.LastPlayed = parseTime(lastPlayed)
	return &st, nil
}

// GetGameStats retrieves aggregated run statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	row := s.db.QueryRow(
		`SELECT `+statsColumns+` FROM runs WHERE game_id = ? GROUP BY game_id`,
		gameID,
	)
	stats, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &GameStats{GameID: gameID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(`SELECT ` + statsColumns + ` FROM runs GROUP BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.GameID] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
