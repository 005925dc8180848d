// Package history persists evaluation records so that runs can be listed
// and inspected after the fact.
//
// Three backends are provided: MemoryStore for tests and one-shot commands,
// SQLiteStore for single-process use, and PostgresStore for shared
// deployments.
package history

import (
	"context"
	"errors"
	"time"
)

// Store persists evaluation records grouped by run.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores a record. The store assigns Seq.
	Append(ctx context.Context, rec Record) error

	// List returns the records of a run ordered by Seq.
	// Returns an empty slice (not error) if the run has no records.
	List(ctx context.Context, runID string) ([]Record, error)

	// Runs summarizes every stored run, oldest first.
	Runs(ctx context.Context) ([]RunInfo, error)

	// DeleteRun removes all records of a run.
	// Returns nil if the run has no records.
	DeleteRun(ctx context.Context, runID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Record is one persisted evaluation.
type Record struct {
	ID        string
	RunID     string
	Seq       int
	Evaluator string
	Input     string
	Output    string
	Outcome   string
	Timestamp time.Time
}

// Failed reports whether the evaluation ended in a failure outcome.
func (r Record) Failed() bool {
	return r.Outcome != "" && r.Outcome != "none"
}

// Validate checks the fields every backend requires.
func (r Record) Validate() error {
	if r.ID == "" {
		return errors.New("record ID required")
	}
	if r.RunID == "" {
		return ErrRunIDRequired
	}
	if r.Evaluator == "" {
		return errors.New("record evaluator required")
	}
	return nil
}

// RunInfo summarizes a run without loading its records.
type RunInfo struct {
	RunID    string
	Count    int
	Failures int
	Started  time.Time
}

// Sentinel errors for history operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("history store closed")

	// ErrRunIDRequired indicates a record without a run ID.
	ErrRunIDRequired = errors.New("run ID required")
)

// timeLayout is a fixed-width RFC 3339 layout so that stored timestamps
// sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
