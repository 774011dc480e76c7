package attendance

import (
	"context"
	"sync"
	"time"

	"attendsync/internal/store"
)

type recordKey struct {
	studentID string
	windowID  string
}

// InMemory is a map-backed WindowStore and RecordStore. InsertIfAbsent holds
// the write lock across its existence check and the insert.
type InMemory struct {
	mu      sync.RWMutex
	windows map[string]Window
	records map[recordKey]Record
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemory {
	return &InMemory{
		windows: make(map[string]Window),
		records: make(map[recordKey]Record),
	}
}

func (m *InMemory) CreateWindow(ctx context.Context, w Window) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[w.ID]; ok {
		return store.ErrConflict
	}
	m.windows[w.ID] = w
	return nil
}

func (m *InMemory) FindActiveWindow(ctx context.Context, id string, at time.Time) (Window, error) {
	if err := ctx.Err(); err != nil {
		return Window{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.windows[id]
	if !ok || !w.ValidAt(at) {
		return Window{}, store.ErrNotFound
	}
	return w, nil
}

func (m *InMemory) FindWindowsForBatch(ctx context.Context, batchID string, at time.Time) ([]Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Window
	for _, w := range m.windows {
		if w.BatchID == batchID && w.ValidAt(at) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *InMemory) FindRecord(ctx context.Context, studentID, windowID string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[recordKey{studentID, windowID}]
	if !ok {
		return Record{}, store.ErrNotFound
	}
	return rec, nil
}

func (m *InMemory) InsertIfAbsent(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	key := recordKey{rec.StudentID, rec.WindowID}
	if _, ok := m.records[key]; ok {
		return store.ErrConflict
	}
	m.records[key] = rec
	return nil
}

func (m *InMemory) ListMarkedBetween(ctx context.Context, from, to time.Time) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, rec := range m.records {
		if !rec.MarkedAt.Before(from) && !rec.MarkedAt.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Len reports how many records are stored.
func (m *InMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
