// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/verbroulette/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for best scores, challenge runs and trophies.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS best_scores (
			mode_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS challenge_runs (
			id INTEGER PRIMARY KEY,
			mode_id TEXT NOT NULL,
			completed INTEGER NOT NULL,
			target INTEGER NOT NULL,
			success INTEGER NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			unlocked_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_challenge_runs_mode ON challenge_runs(mode_id, ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// BestScores returns the best completed count per challenge mode.
func (s *Store) BestScores(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT mode_id, score FROM best_scores`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	scores := map[string]int{}
	for rows.Next() {
		var modeID string
		var score int
		if err := rows.Scan(&modeID, &score); err != nil {
			return nil, err
		}
		scores[modeID] = score
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}

// SaveBestScore stores score for modeID unless a higher score is already stored.
func (s *Store) SaveBestScore(ctx context.Context, modeID string, score int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO best_scores (mode_id, score, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(mode_id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > best_scores.score`,
		modeID, score, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// InsertRun appends a completed challenge to the run history.
func (s *Store) InsertRun(ctx context.Context, run model.ChallengeRun) (int64, error) {
	success := 0
	if run.Success {
		success = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO challenge_runs (mode_id, completed, target, success, ended_at)
		 VALUES (?, ?, ?, ?, ?)`,
		run.ModeID,
		run.Completed,
		run.Target,
		success,
		run.EndedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns challenge runs in chronological order. An empty modeID
// matches every mode; last > 0 keeps only the most recent runs per query.
func (s *Store) ListRuns(ctx context.Context, modeID string, last int) ([]model.ChallengeRun, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if modeID != "" {
		clauses = append(clauses, "mode_id = ?")
		args = append(args, modeID)
	}
	limit := ""
	if last > 0 {
		limit = "LIMIT ?"
		args = append(args, last)
	}
	query := fmt.Sprintf(`SELECT mode_id, completed, target, success, ended_at FROM (
		SELECT id, mode_id, completed, target, success, ended_at
		FROM challenge_runs
		WHERE %s
		ORDER BY ended_at DESC, id DESC
		%s
	) ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "), limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.ChallengeRun
	for rows.Next() {
		var run model.ChallengeRun
		var success int
		var endedAt string
		if err := rows.Scan(&run.ModeID, &run.Completed, &run.Target, &success, &endedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		run.Success = success != 0
		run.EndedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// UnlockedAchievements returns achievement ids in unlock order.
func (s *Store) UnlockedAchievements(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM achievements ORDER BY unlocked_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// SaveAchievement records an unlock. Unlocks are never removed.
func (s *Store) SaveAchievement(ctx context.Context, id string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO achievements (id, unlocked_at) VALUES (?, ?)`,
		id, at.UTC().Format(time.RFC3339Nano))
	return err
}
