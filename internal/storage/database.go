package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Sqwerrr/Shutdown-Timer/internal/models"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Database struct {
	db *sql.DB
}

// NewDatabase opens (and if needed creates) the history database at path.
// ":memory:" is accepted for tests.
func NewDatabase(path string) (*Database, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	database := &Database{db: db}
	if err := database.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

func (d *Database) initTables() error {
	_, err := d.db.Exec(`
        CREATE TABLE IF NOT EXISTS shutdown_runs (
            id TEXT PRIMARY KEY,
            seconds INTEGER NOT NULL,
            started_at DATETIME NOT NULL,
            ended_at DATETIME,
            outcome TEXT NOT NULL
        )
    `)
	if err != nil {
		return fmt.Errorf("storage: create shutdown_runs: %w", err)
	}
	_, err = d.db.Exec(`
        CREATE INDEX IF NOT EXISTS shutdown_runs_started_at
        ON shutdown_runs(started_at)
    `)
	if err != nil {
		return fmt.Errorf("storage: create index: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// StartRun records a new pending run and returns it.
func (d *Database) StartRun(seconds int, at time.Time) (*models.Run, error) {
	run := &models.Run{
		ID:        uuid.New().String(),
		Seconds:   seconds,
		StartedAt: at.UTC(),
		Outcome:   models.OutcomePending,
	}
	_, err := d.db.Exec(`
        INSERT INTO shutdown_runs (id, seconds, started_at, outcome)
        VALUES (?, ?, ?, ?)
    `, run.ID, run.Seconds, run.StartedAt, string(run.Outcome))
	if err != nil {
		return nil, fmt.Errorf("storage: insert run: %w", err)
	}
	return run, nil
}

// FinishRun closes a pending run with outcome.
func (d *Database) FinishRun(id string, outcome models.Outcome, at time.Time) error {
	result, err := d.db.Exec(`
        UPDATE shutdown_runs
        SET outcome = ?, ended_at = ?
        WHERE id = ? AND outcome = ?
    `, string(outcome), at.UTC(), id, string(models.OutcomePending))
	if err != nil {
		return fmt.Errorf("storage: finish run %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: finish run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// SupersedePending marks every still-pending run as superseded. Pending rows
// left behind by a crash or a restart end up here too.
func (d *Database) SupersedePending(at time.Time) (int64, error) {
	result, err := d.db.Exec(`
        UPDATE shutdown_runs
        SET outcome = ?, ended_at = ?
        WHERE outcome = ?
    `, string(models.OutcomeSuperseded), at.UTC(), string(models.OutcomePending))
	if err != nil {
		return 0, fmt.Errorf("storage: supersede pending: %w", err)
	}
	return result.RowsAffected()
}

// GetRun loads one run by id.
func (d *Database) GetRun(id string) (*models.Run, error) {
	row := d.db.QueryRow(`
        SELECT id, seconds, started_at, ended_at, outcome
        FROM shutdown_runs
        WHERE id = ?
    `, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// RecentRuns returns up to limit runs, newest first.
func (d *Database) RecentRuns(limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.db.Query(`
        SELECT id, seconds, started_at, ended_at, outcome
        FROM shutdown_runs
        ORDER BY started_at DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: query runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Stats summarizes history by outcome.
type Stats struct {
	Total     int
	Expired   int
	Cancelled int
}

func (d *Database) GetStats() (*Stats, error) {
	stats := &Stats{}
	err := d.db.QueryRow(`
        SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
        FROM shutdown_runs
    `, string(models.OutcomeExpired), string(models.OutcomeCancelled)).Scan(
		&stats.Total,
		&stats.Expired,
		&stats.Cancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: stats: %w", err)
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.Run, error) {
	var (
		run     models.Run
		ended   sql.NullTime
		outcome string
	)
	if err := s.Scan(&run.ID, &run.Seconds, &run.StartedAt, &ended, &outcome); err != nil {
		return nil, err
	}
	run.Outcome = models.Outcome(outcome)
	if ended.Valid {
		t := ended.Time
		run.EndedAt = &t
	}
	return &run, nil
}
