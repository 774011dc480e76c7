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

// Registry is the read and create side of attendance windows.
type Registry struct {
	windows WindowStore
	now     func() time.Time
}

// NewRegistry creates a registry over windows.
func NewRegistry(windows WindowStore) *Registry {
	return &Registry{windows: windows, now: func() time.Time { return time.Now().UTC() }}
}

// FindActiveWindow returns the window only when it is valid at at. A missing
// or closed window is an InvalidWindow error.
func (r *Registry) FindActiveWindow(ctx context.Context, windowID string, at time.Time) (Window, error) {
	if strings.TrimSpace(windowID) == "" {
		return Window{}, apperr.New(apperr.InvalidWindow, "Attendance window not active")
	}
	w, err := r.windows.FindActiveWindow(ctx, windowID, at)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Window{}, apperr.New(apperr.InvalidWindow, "Attendance window not active")
		}
		return Window{}, storageError(err)
	}
	return w, nil
}

// FindWindowsForBatch lists the windows of batchID valid at at, in no
// particular order.
func (r *Registry) FindWindowsForBatch(ctx context.Context, batchID string, at time.Time) ([]Window, error) {
	windows, err := r.windows.FindWindowsForBatch(ctx, batchID, at)
	if err != nil {
		return nil, storageError(err)
	}
	if windows == nil {
		windows = []Window{}
	}
	return windows, nil
}

// WindowsForStudent lists the windows the student may mark right now.
func (r *Registry) WindowsForStudent(ctx context.Context, user identity.User) ([]Window, error) {
	student, ok := user.Student()
	if !ok {
		return nil, apperr.New(apperr.Forbidden, "Student access required")
	}
	return r.FindWindowsForBatch(ctx, student.Batch, r.now())
}

// Create opens a window on behalf of a faculty member.
func (r *Registry) Create(ctx context.Context, user identity.User, in WindowInput) (Window, error) {
	if _, ok := user.Faculty(); !ok {
		return Window{}, apperr.New(apperr.Forbidden, "Faculty access required")
	}
	hallID, batchID := strings.TrimSpace(in.HallID), strings.TrimSpace(in.BatchID)
	if hallID == "" || batchID == "" {
		return Window{}, apperr.New(apperr.BadRequest, "hall_id and batch_id are required")
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return Window{}, apperr.New(apperr.BadRequest, "start_time and end_time are required")
	}
	if in.StartTime.After(in.EndTime) {
		return Window{}, apperr.New(apperr.BadRequest, "start_time must not be after end_time")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	w := Window{
		ID:        uuid.NewString(),
		HallID:    hallID,
		BatchID:   batchID,
		StartTime: in.StartTime.UTC(),
		EndTime:   in.EndTime.UTC(),
		IsActive:  active,
		CreatedBy: user.ID,
		CreatedAt: r.now(),
	}
	if err := r.windows.CreateWindow(ctx, w); err != nil {
		return Window{}, storageError(err)
	}
	return w, nil
}

func storageError(err error) error {
	return apperr.Wrap(apperr.StorageUnavailable, "storage unavailable", err)
}
