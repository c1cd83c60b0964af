// Package sqlite provides durable SQLite persistence for evaluation results.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mcoot/battlebots/internal/model"
	"github.com/mcoot/battlebots/internal/storage"
)

// Store is a SQLite-backed ResultStore
type Store struct {
	db *sql.DB
}

// New opens the SQLite database at path and applies migrations.
// Use ":memory:" for a throwaway database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}

	// Every connection to :memory: is a separate database
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewFromDB wraps an existing sql.DB
func NewFromDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the results table if needed
func (s *Store) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS results (
			user_id TEXT PRIMARY KEY,
			bot_id TEXT NOT NULL,
			job_id TEXT NOT NULL,
			status TEXT NOT NULL,
			average_moves REAL,
			failure TEXT,
			completed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_leaderboard ON results(status, average_moves, user_id)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("sqlite: migrate: %w", err)
		}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements the interface
var _ storage.ResultStore = (*Store)(nil)

func (s *Store) SaveResult(ctx context.Context, result *model.BotResult) error {
	var (
		average sql.NullFloat64
		failure sql.NullString
	)
	if result.Status == model.ResultAccepted {
		average = sql.NullFloat64{Float64: result.AverageMoves, Valid: true}
	}
	if result.Failure != nil {
		data, err := json.Marshal(result.Failure)
		if err != nil {
			return fmt.Errorf("sqlite: encode failure: %w", err)
		}
		failure = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (user_id, bot_id, job_id, status, average_moves, failure, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			bot_id = excluded.bot_id,
			job_id = excluded.job_id,
			status = excluded.status,
			average_moves = excluded.average_moves,
			failure = excluded.failure,
			completed_at = excluded.completed_at`,
		string(result.UserID), result.BotID, string(result.JobID), string(result.Status),
		average, failure, result.CompletedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save result: %w", err)
	}
	return nil
}

func (s *Store) GetResult(ctx context.Context, userID model.UserID) (*model.BotResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, bot_id, job_id, status, average_moves, failure, completed_at
		FROM results WHERE user_id = ?`, string(userID))

	result, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrResultNotFound
	}
	return result, err
}

func (s *Store) Leaderboard(ctx context.Context, limit int) ([]*model.BotResult, error) {
	// SQLite treats a negative LIMIT as no limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, bot_id, job_id, status, average_moves, failure, completed_at
		FROM results
		WHERE status = ?
		ORDER BY average_moves ASC, user_id ASC
		LIMIT ?`, string(model.ResultAccepted), limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: leaderboard: %w", err)
	}
	defer rows.Close()

	results := []*model.BotResult{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*model.BotResult, error) {
	var (
		r           model.BotResult
		userID      string
		jobID       string
		status      string
		average     sql.NullFloat64
		failure     sql.NullString
		completedAt string
	)
	if err := row.Scan(&userID, &r.BotID, &jobID, &status, &average, &failure, &completedAt); err != nil {
		return nil, err
	}

	r.UserID = model.UserID(userID)
	r.JobID = model.JobID(jobID)
	r.Status = model.ResultStatus(status)
	r.AverageMoves = average.Float64

	if failure.Valid {
		var f model.BotFailure
		if err := json.Unmarshal([]byte(failure.String), &f); err != nil {
			return nil, fmt.Errorf("sqlite: decode failure: %w", err)
		}
		r.Failure = &f
	}

	t, err := time.Parse(time.RFC3339Nano, completedAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: decode completed_at: %w", err)
	}
	r.CompletedAt = t

	return &r, nil
}
