// Package storage provides SQLite-based persistence for scores, level
// results, saved games and campaign progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vovakirdan/tui-blast/internal/games/blast"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Level     int
	Score     int
	CreatedAt time.Time
}

// LevelResult is the outcome of one finished level.
type LevelResult struct {
	Level     int
	Won       bool
	MovesLeft int
	Score     int
}

// LevelStats aggregates the results of a level.
type LevelStats struct {
	Level      int
	Plays      int
	Wins       int
	BestScore  int
	BestMoves  int // most moves left on a win
	LastPlayed time.Time
}

const keyUnlocked = "unlocked_level"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, level, score DESC);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			won INTEGER NOT NULL,
			moves_left INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level);

		CREATE TABLE IF NOT EXISTS saves (
			level INTEGER PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS progress (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a score for a game and level.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, level, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, level, score) VALUES (?, ?, ?)",
		gameID, level, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top scores for a game, highest first.
// Level 0 returns scores across all levels.
func (s *Store) TopScores(gameID string, level, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level, score, created_at
		 FROM scores
		 WHERE game_id = ? AND (? = 0 OR level = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, level, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Level, &e.Score, &createdAt); err != nil {
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

// HighScore returns the best score for a game and level (0 for all levels).
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string, level int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ? AND (? = 0 OR level = ?)",
		gameID, level, level,
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

// RecordResult stores the outcome of a finished level.
func (s *Store) RecordResult(r LevelResult) error {
	_, err := s.db.Exec(
		"INSERT INTO level_results (level, won, moves_left, score) VALUES (?, ?, ?, ?)",
		r.Level, r.Won, r.MovesLeft, r.Score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record result: %w", err)
	}
	return nil
}

// SaveResult implements blast.Saver.
// It books the level result and the level score together.
func (s *Store) SaveResult(r blast.Result) error {
	if err := s.RecordResult(LevelResult(r)); err != nil {
		return err
	}
	_, err := s.SaveScore(blast.ID, r.Level, r.Score)
	return err
}

// Ensure Store implements blast.Saver
var _ blast.Saver = (*Store)(nil)

// LevelStats returns aggregated results for one level.
// A level never played returns zero counts.
func (s *Store) LevelStats(level int) (LevelStats, error) {
	stats := LevelStats{Level: level}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MAX(CASE WHEN won THEN moves_left END), 0),
		        MAX(created_at)
		 FROM level_results WHERE level = ?`,
		level,
	).Scan(&stats.Plays, &stats.Wins, &stats.BestScore, &stats.BestMoves, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllLevelStats returns stats for every level that has results, keyed by level.
func (s *Store) AllLevelStats() (map[int]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), SUM(won), MAX(score),
		        COALESCE(MAX(CASE WHEN won THEN moves_left END), 0),
		        MAX(created_at)
		 FROM level_results
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.Level, &ls.Plays, &ls.Wins, &ls.BestScore, &ls.BestMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.Level] = ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SaveGame stores the saved-game payload for a level, replacing any
// previous save.
func (s *Store) SaveGame(level int, payload string) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (level, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(level) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		level, payload,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}
	return nil
}

// LoadGame returns the saved payload for a level. ok is false when the
// level has no save.
func (s *Store) LoadGame(level int) (payload string, ok bool, err error) {
	err = s.db.QueryRow("SELECT payload FROM saves WHERE level = ?", level).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot load game: %w", err)
	}
	return payload, true, nil
}

// DeleteSave removes the save for a level. Missing saves are not an error.
func (s *Store) DeleteSave(level int) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE level = ?", level); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	return nil
}

// SavedLevels returns the levels that have a saved game, ascending.
func (s *Store) SavedLevels() ([]int, error) {
	rows, err := s.db.Query("SELECT level FROM saves ORDER BY level")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var levels []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		levels = append(levels, n)
	}
	return levels, rows.Err()
}

// UnlockedLevel returns the highest unlocked level. Level 1 is always unlocked.
func (s *Store) UnlockedLevel() (int, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM progress WHERE key = ?", keyUnlocked).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 1, fmt.Errorf("storage: cannot read progress: %w", err)
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 1, nil
	}
	return n, nil
}

// SetUnlockedLevel raises the highest unlocked level to n.
// Lower values leave the progress unchanged.
func (s *Store) SetUnlockedLevel(n int) error {
	current, err := s.UnlockedLevel()
	if err != nil {
		return err
	}
	if n <= current {
		return nil
	}

	_, err = s.db.Exec(
		`INSERT INTO progress (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		keyUnlocked, strconv.Itoa(n),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write progress: %w", err)
	}
	return nil
}

// parseTime converts a SQLite datetime column, which the driver may return
// as time.Time or as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
