package identity

import "context"

// Store persists users. Implementations return store.ErrNotFound for missing
// users and store.ErrConflict when the email is already registered.
type Store interface {
	Create(ctx context.Context, user User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	ListStudents(ctx context.Context, batch string) ([]User, error)
}
