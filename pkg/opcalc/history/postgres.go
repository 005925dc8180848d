package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// defaultTableName is the PostgreSQL table used when no custom name is provided.
const defaultTableName = "opcalc_evaluations"

// Querier abstracts the pgx query methods needed by PostgresStore.
// Both *pgxpool.Pool and pgx.Tx satisfy this interface.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists history to PostgreSQL.
// The caller owns the connection pool; Close does not close it.
type PostgresStore struct {
	db        Querier
	tableName string

	mu     sync.RWMutex
	closed bool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithTableName overrides the default table name.
// The name is quoted with pgx.Identifier since it is interpolated into queries.
func WithTableName(name string) PostgresOption {
	return func(s *PostgresStore) {
		s.tableName = pgx.Identifier{name}.Sanitize()
	}
}

// NewPostgresStore creates a PostgreSQL-backed history store.
func NewPostgresStore(db Querier, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{
		db:        db,
		tableName: defaultTableName,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const createTableSQL = `CREATE TABLE IF NOT EXISTS %s (
    id         TEXT PRIMARY KEY,
    seq        BIGSERIAL NOT NULL,
    run_id     TEXT NOT NULL,
    evaluator  TEXT NOT NULL,
    input      TEXT NOT NULL,
    output     TEXT NOT NULL,
    outcome    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const createRunSeqIndexSQL = `CREATE INDEX IF NOT EXISTS %s
    ON %s (run_id, seq)`

// EnsureSchema creates the table and its index if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, fmt.Sprintf(createTableSQL, s.tableName)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	index := pgx.Identifier{"idx_" + unquote(s.tableName) + "_run_seq"}.Sanitize()
	if _, err := s.db.Exec(ctx, fmt.Sprintf(createRunSeqIndexSQL, index, s.tableName)); err != nil {
		return fmt.Errorf("create run_seq index: %w", err)
	}
	return nil
}

// Append implements Store.
func (s *PostgresStore) Append(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := fmt.Sprintf(`INSERT INTO %s
		(id, run_id, evaluator, input, output, outcome, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, s.tableName)

	if _, err := s.db.Exec(ctx, query,
		rec.ID, rec.RunID, rec.Evaluator, rec.Input, rec.Output, rec.Outcome, ts.UTC(),
	); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context, runID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	query := fmt.Sprintf(`SELECT id, ROW_NUMBER() OVER (ORDER BY seq), evaluator, input, output, outcome, created_at
		FROM %s WHERE run_id = $1 ORDER BY seq ASC`, s.tableName)

	rows, err := s.db.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	recs := []Record{}
	for rows.Next() {
		rec := Record{RunID: runID}
		if err := rows.Scan(&rec.ID, &rec.Seq, &rec.Evaluator, &rec.Input, &rec.Output, &rec.Outcome, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return recs, nil
}

// Runs implements Store.
func (s *PostgresStore) Runs(ctx context.Context) ([]RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	query := fmt.Sprintf(`SELECT run_id, COUNT(*),
		COUNT(*) FILTER (WHERE outcome NOT IN ('', 'none')),
		MIN(created_at)
		FROM %s GROUP BY run_id ORDER BY MIN(created_at), run_id`, s.tableName)

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	infos := []RunInfo{}
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.RunID, &info.Count, &info.Failures, &info.Started); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return infos, nil
}

// DeleteRun implements Store.
func (s *PostgresStore) DeleteRun(ctx context.Context, runID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE run_id = $1`, s.tableName)
	if _, err := s.db.Exec(ctx, query, runID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

// Close implements Store. The underlying pool stays open.
func (s *PostgresStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func unquote(ident string) string {
	if len(ident) >= 2 && ident[0] == '"' && ident[len(ident)-1] == '"' {
		return ident[1 : len(ident)-1]
	}
	return ident
}
