package attendance

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mocks

// WindowStore persists attendance windows. Lookups apply the ValidAt
// predicate with the given instant and return store.ErrNotFound on no match.
type WindowStore interface {
	CreateWindow(ctx context.Context, w Window) error
	FindActiveWindow(ctx context.Context, id string, at time.Time) (Window, error)
	FindWindowsForBatch(ctx context.Context, batchID string, at time.Time) ([]Window, error)
}

// RecordStore persists attendance records.
type RecordStore interface {
	// FindRecord returns store.ErrNotFound when the student has no record
	// for the window.
	FindRecord(ctx context.Context, studentID, windowID string) (Record, error)
	// InsertIfAbsent writes rec atomically unless a record for the same
	// student and window exists, in which case it returns store.ErrConflict
	// and writes nothing.
	InsertIfAbsent(ctx context.Context, rec Record) error
	ListMarkedBetween(ctx context.Context, from, to time.Time) ([]Record, error)
}
