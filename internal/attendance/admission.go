package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"attendsync/internal/apperr"
	"attendsync/internal/identity"
	"attendsync/internal/store"
)

// Engine decides whether a student's claim becomes an attendance record.
// It keeps no state between calls.
type Engine struct {
	registry *Registry
	records  RecordStore
	now      func() time.Time
	metrics  *Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the server clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMetrics records admission outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates an engine reading windows through registry and writing
// to records.
func NewEngine(registry *Registry, records RecordStore, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		records:  records,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Admit validates claim for user and stores a new record. The steps run in
// order and the first failure wins: role, window validity, duplicate check,
// then an atomic insert-if-absent. Nothing is written unless every check
// passes.
func (e *Engine) Admit(ctx context.Context, user identity.User, claim Claim) (rec Record, err error) {
	start := time.Now()
	defer func() { e.metrics.observeAdmission(err, time.Since(start)) }()

	student, ok := user.Student()
	if !ok {
		return Record{}, apperr.New(apperr.Forbidden, "Student access required")
	}

	now := e.now()
	window, err := e.registry.FindActiveWindow(ctx, claim.WindowID, now)
	if err != nil {
		return Record{}, err
	}

	// Advisory only; InsertIfAbsent is what enforces uniqueness under races.
	if _, err := e.records.FindRecord(ctx, user.ID, window.ID); err == nil {
		return Record{}, alreadyMarked()
	} else if !errors.Is(err, store.ErrNotFound) {
		return Record{}, storageError(err)
	}

	method := strings.TrimSpace(claim.VerificationMethod)
	if method == "" {
		method = DefaultVerificationMethod
	}
	rec = Record{
		ID:                 uuid.NewString(),
		StudentID:          user.ID,
		HallID:             claim.HallID,
		BatchID:            student.Batch,
		WindowID:           window.ID,
		MarkedAt:           now,
		VerificationMethod: method,
		BeaconRSSI:         copyPtr(claim.BeaconRSSI),
		FaceConfidence:     copyPtr(claim.FaceConfidence),
	}

	if err := ctx.Err(); err != nil {
		return Record{}, storageError(err)
	}
	if err := e.records.InsertIfAbsent(ctx, rec); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return Record{}, alreadyMarked()
		}
		return Record{}, storageError(err)
	}
	return rec, nil
}

func alreadyMarked() error {
	return apperr.New(apperr.AlreadyMarked, "Attendance already marked")
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
