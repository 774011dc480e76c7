package attendance

import "time"

// Window is a period during which students of one batch may mark
// attendance in one hall.
type Window struct {
	ID        string    `json:"id"`
	HallID    string    `json:"hall_id"`
	BatchID   string    `json:"batch_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	IsActive  bool      `json:"is_active"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidAt reports whether the window admits claims at t. Both bounds are
// inclusive and compared against the same instant.
func (w Window) ValidAt(t time.Time) bool {
	return w.IsActive && !t.Before(w.StartTime) && !t.After(w.EndTime)
}

// WindowInput is what a faculty member supplies to open a window.
type WindowInput struct {
	HallID    string
	BatchID   string
	StartTime time.Time
	EndTime   time.Time
	IsActive  *bool
}
