package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists history to SQLite.
//
// Sequence numbers are assigned inside the insert statement and a unique
// (run_id, seq) index backs them, so a run never holds two records with the
// same Seq. Several processes may share one database file; a writer that
// loses a race for the database lock gets an error from Append instead of a
// duplicate Seq.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite history store.
// The path should be a file path (e.g., "./opcalc.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database exists per connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			evaluator TEXT NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			outcome TEXT NOT NULL,
			timestamp TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	// Older databases carry a non-unique index under this name.
	if _, err := db.Exec(`DROP INDEX IF EXISTS idx_evaluations_run_seq`); err != nil {
		db.Close()
		return nil, fmt.Errorf("drop index: %w", err)
	}

	if _, err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_evaluations_run_seq_unique
		ON evaluations(run_id, seq)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, run_id, seq, evaluator, input, output, outcome, timestamp)
		VALUES (
			?, ?,
			COALESCE((SELECT MAX(seq) FROM evaluations WHERE run_id = ?), 0) + 1,
			?, ?, ?, ?, ?
		)
	`, rec.ID, rec.RunID, rec.RunID, rec.Evaluator, rec.Input, rec.Output, rec.Outcome,
		ts.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, runID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, evaluator, input, output, outcome, timestamp
		FROM evaluations
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	recs := []Record{}
	for rows.Next() {
		rec := Record{RunID: runID}
		var ts string
		if err := rows.Scan(&rec.ID, &rec.Seq, &rec.Evaluator, &rec.Input, &rec.Output, &rec.Outcome, &ts); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Timestamp, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("scan record %s: parse timestamp: %w", rec.ID, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return recs, nil
}

// Runs implements Store.
func (s *SQLiteStore) Runs(ctx context.Context) ([]RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, COUNT(*),
			SUM(CASE WHEN outcome NOT IN ('', 'none') THEN 1 ELSE 0 END),
			MIN(timestamp)
		FROM evaluations
		GROUP BY run_id
		ORDER BY MIN(timestamp), run_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	infos := []RunInfo{}
	for rows.Next() {
		var info RunInfo
		var started string
		if err := rows.Scan(&info.RunID, &info.Count, &info.Failures, &started); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		info.Started, err = time.Parse(timeLayout, started)
		if err != nil {
			return nil, fmt.Errorf("scan run %s: parse timestamp: %w", info.RunID, err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return infos, nil
}

// DeleteRun implements Store.
func (s *SQLiteStore) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
