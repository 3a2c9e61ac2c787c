package history

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory history store for testing.
// Data is lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]storedRecord
	seq     int
	closed  bool
}

// storedRecord keeps insertion order for List.
type storedRecord struct {
	rec      Record
	sequence int
}

// NewMemoryStore creates a new in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]storedRecord),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(rec Record) error {
	if rec.RunID == "" {
		return ErrInvalidRecord
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.seq++
	m.records[rec.RunID] = storedRecord{rec: rec, sequence: m.seq}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(runID string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Record{}, ErrStoreClosed
	}

	s, ok := m.records[runID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.rec, nil
}

// Latest implements Store.
func (m *MemoryStore) Latest(input string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Record{}, ErrStoreClosed
	}

	for _, s := range m.sorted() {
		if s.rec.Input == input && s.rec.Status == StatusSucceeded {
			return s.rec, nil
		}
	}
	return Record{}, ErrNotFound
}

// List implements Store.
func (m *MemoryStore) List(limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	sorted := m.sorted()
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]Record, len(sorted))
	for i, s := range sorted {
		out[i] = s.rec
	}
	return out, nil
}

// sorted returns the stored records newest first. Caller holds the lock.
func (m *MemoryStore) sorted() []storedRecord {
	all := make([]storedRecord, 0, len(m.records))
	for _, s := range m.records {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].sequence > all[j].sequence
	})
	return all
}

// Delete implements Store.
func (m *MemoryStore) Delete(runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.records, runID)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
