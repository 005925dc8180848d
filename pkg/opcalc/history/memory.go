package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory history store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	runs   map[string][]Record
	closed bool
}

// NewMemoryStore creates a new in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs: make(map[string][]Record),
	}
}

// Append implements Store.
func (m *MemoryStore) Append(_ context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	rec.Seq = len(m.runs[rec.RunID]) + 1
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	m.runs[rec.RunID] = append(m.runs[rec.RunID], rec)
	return nil
}

// List implements Store.
func (m *MemoryStore) List(_ context.Context, runID string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	out := make([]Record, len(m.runs[runID]))
	copy(out, m.runs[runID])
	return out, nil
}

// Runs implements Store.
func (m *MemoryStore) Runs(_ context.Context) ([]RunInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]RunInfo, 0, len(m.runs))
	for runID, recs := range m.runs {
		info := RunInfo{RunID: runID, Count: len(recs)}
		for i, r := range recs {
			if r.Failed() {
				info.Failures++
			}
			if i == 0 || r.Timestamp.Before(info.Started) {
				info.Started = r.Timestamp
			}
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Started.Equal(infos[j].Started) {
			return infos[i].RunID < infos[j].RunID
		}
		return infos[i].Started.Before(infos[j].Started)
	})
	return infos, nil
}

// DeleteRun implements Store.
func (m *MemoryStore) DeleteRun(_ context.Context, runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.runs, runID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.runs = nil
	return nil
}
