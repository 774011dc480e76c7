package identity

import (
	"context"
	"sort"
	"strings"
	"sync"

	"attendsync/internal/store"
)

// InMemory is a map-backed Store for dev and tests.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

// NewInMemory creates an empty user store.
func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[string]User), byEmail: make(map[string]string)}
}

func (m *InMemory) Create(_ context.Context, user User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := m.byEmail[key]; ok {
		return store.ErrConflict
	}
	if _, ok := m.byID[user.ID]; ok {
		return store.ErrConflict
	}
	m.byID[user.ID] = user
	m.byEmail[key] = user.ID
	return nil
}

func (m *InMemory) FindByID(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return User{}, store.ErrNotFound
	}
	return u, nil
}

func (m *InMemory) FindByEmail(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, store.ErrNotFound
	}
	return m.byID[id], nil
}

func (m *InMemory) ListStudents(_ context.Context, batch string) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []User
	for _, u := range m.byID {
		if p, ok := u.Student(); ok && p.Batch == batch {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}
