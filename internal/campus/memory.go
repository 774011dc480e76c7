package campus

import (
	"context"
	"sort"
	"sync"

	"attendsync/internal/store"
)

// InMemory is a map-backed Store.
type InMemory struct {
	mu      sync.RWMutex
	batches map[string]Batch
	halls   map[string]Hall
}

// NewInMemory creates an empty catalog.
func NewInMemory() *InMemory {
	return &InMemory{batches: make(map[string]Batch), halls: make(map[string]Hall)}
}

func (m *InMemory) CreateBatch(_ context.Context, b Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.batches[b.ID]; ok {
		return store.ErrConflict
	}
	m.batches[b.ID] = b
	return nil
}

func (m *InMemory) ListBatches(_ context.Context) ([]Batch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Batch, 0, len(m.batches))
	for _, b := range m.batches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *InMemory) CreateHall(_ context.Context, h Hall) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.halls[h.ID]; ok {
		return store.ErrConflict
	}
	m.halls[h.ID] = h
	return nil
}

func (m *InMemory) ListHalls(_ context.Context) ([]Hall, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Hall, 0, len(m.halls))
	for _, h := range m.halls {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
