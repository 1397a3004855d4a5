package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yegors/flightgen/pkg/logger"
)

// Open opens (creating if needed) the manifest database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest database %s: %w", path, err)
	}
	return db, nil
}

// RunStorage records one provenance row per completed generation run.
type RunStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewRunStorage creates a new SQLite run storage
func NewRunStorage(db *sql.DB, log *logger.Logger) (*RunStorage, error) {
	storage := &RunStorage{
		db:     db,
		logger: log.Named("sqlite-runs"),
	}

	if err := storage.initDB(); err != nil {
		return nil, err
	}
	return storage, nil
}

// initDB initializes the database tables
func (s *RunStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TIMESTAMP NOT NULL,
			output_file TEXT NOT NULL,
			records INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			seed INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`)
	if err != nil {
		return fmt.Errorf("failed to create runs index: %w", err)
	}

	return nil
}

// StoreRun stores a run record
func (s *RunStorage) StoreRun(record *RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		(started_at, output_file, records, bytes, duration_ms, seed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.StartedAt.Format(time.RFC3339),
		record.OutputFile,
		record.Records,
		record.Bytes,
		record.Duration.Milliseconds(),
		record.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	s.logger.Debug("Stored run record",
		logger.Int64("id", id),
		logger.Int64("records", record.Records),
	)

	return id, nil
}

// GetRecentRuns returns the most recent runs, newest first.
func (s *RunStorage) GetRecentRuns(limit int) ([]*RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, output_file, records, bytes, duration_ms, seed
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		var record RunRecord
		var startedAt string
		var durationMs int64

		if err := rows.Scan(
			&record.ID,
			&startedAt,
			&record.OutputFile,
			&record.Records,
			&record.Bytes,
			&durationMs,
			&record.Seed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		ts, err := time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		record.StartedAt = ts
		record.Duration = time.Duration(durationMs) * time.Millisecond

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run rows: %w", err)
	}

	return records, nil
}
