package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendsync/internal/apperr"
)

func TestWindowValidAt(t *testing.T) {
	start := fixedNow
	end := fixedNow.Add(time.Hour)
	w := Window{StartTime: start, EndTime: end, IsActive: true}

	tests := []struct {
		name   string
		window Window
		at     time.Time
		want   bool
	}{
		{"at start", w, start, true},
		{"at end", w, end, true},
		{"inside", w, start.Add(30 * time.Minute), true},
		{"just before", w, start.Add(-time.Nanosecond), false},
		{"just after", w, end.Add(time.Nanosecond), false},
		{"inactive", Window{StartTime: start, EndTime: end}, start.Add(time.Minute), false},
		{"inverted", Window{StartTime: end, EndTime: start, IsActive: true}, start.Add(time.Minute), false},
		{"instant window", Window{StartTime: start, EndTime: start, IsActive: true}, start, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.ValidAt(tt.at))
		})
	}
}

func newTestRegistry() (*Registry, *InMemory) {
	mem := NewInMemory()
	r := NewRegistry(mem)
	r.now = func() time.Time { return fixedNow }
	return r, mem
}

func TestRegistryCreate(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry()
	in := WindowInput{HallID: " hall-101 ", BatchID: "batch-a", StartTime: fixedNow, EndTime: fixedNow.Add(time.Hour)}

	w, err := r.Create(ctx, faculty("F1"), in)
	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, "hall-101", w.HallID)
	assert.True(t, w.IsActive, "windows open by default")
	assert.Equal(t, "F1", w.CreatedBy)
	assert.Equal(t, fixedNow, w.CreatedAt)

	found, err := r.FindActiveWindow(ctx, w.ID, fixedNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, w, found)

	closed := false
	in.IsActive = &closed
	w2, err := r.Create(ctx, faculty("F1"), in)
	require.NoError(t, err)
	assert.False(t, w2.IsActive)

	_, err = r.FindActiveWindow(ctx, w2.ID, fixedNow.Add(time.Minute))
	assert.True(t, apperr.Is(err, apperr.InvalidWindow))
}

func TestRegistryCreateRejects(t *testing.T) {
	ctx := context.Background()
	r, mem := newTestRegistry()
	valid := WindowInput{HallID: "hall-101", BatchID: "batch-a", StartTime: fixedNow, EndTime: fixedNow.Add(time.Hour)}

	tests := []struct {
		name  string
		input func() WindowInput
		kind  apperr.Kind
	}{
		{"missing hall", func() WindowInput { in := valid; in.HallID = ""; return in }, apperr.BadRequest},
		{"missing batch", func() WindowInput { in := valid; in.BatchID = " "; return in }, apperr.BadRequest},
		{"missing times", func() WindowInput { in := valid; in.EndTime = time.Time{}; return in }, apperr.BadRequest},
		{"start after end", func() WindowInput { in := valid; in.StartTime, in.EndTime = in.EndTime, in.StartTime; return in }, apperr.BadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Create(ctx, faculty("F1"), tt.input())
			assert.True(t, apperr.Is(err, tt.kind), "got %v", err)
		})
	}

	_, err := r.Create(ctx, student("S1", "batch-a"), valid)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	windows, err := mem.FindWindowsForBatch(ctx, "batch-a", fixedNow)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestWindowsForStudent(t *testing.T) {
	ctx := context.Background()
	r, mem := newTestRegistry()
	for _, w := range []Window{
		{ID: "open-a", BatchID: "batch-a", StartTime: fixedNow.Add(-time.Hour), EndTime: fixedNow.Add(time.Hour), IsActive: true},
		{ID: "closed-a", BatchID: "batch-a", StartTime: fixedNow.Add(-time.Hour), EndTime: fixedNow.Add(time.Hour)},
		{ID: "later-a", BatchID: "batch-a", StartTime: fixedNow.Add(time.Hour), EndTime: fixedNow.Add(2 * time.Hour), IsActive: true},
		{ID: "open-b", BatchID: "batch-b", StartTime: fixedNow.Add(-time.Hour), EndTime: fixedNow.Add(time.Hour), IsActive: true},
	} {
		require.NoError(t, mem.CreateWindow(ctx, w))
	}

	windows, err := r.WindowsForStudent(ctx, student("S1", "batch-a"))
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "open-a", windows[0].ID)

	none, err := r.WindowsForStudent(ctx, student("S2", "batch-z"))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = r.WindowsForStudent(ctx, faculty("F1"))
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestReportsToday(t *testing.T) {
	ctx := context.Background()
	mem := NewInMemory()
	loc := time.FixedZone("IST", 5*3600+1800)
	reports := NewReports(mem, loc)
	// 10:00 UTC is 15:30 IST, so the IST day runs from 18:30 UTC the day before.
	reports.now = func() time.Time { return fixedNow }

	dayStart := time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)
	for i, at := range []time.Time{
		fixedNow.Add(-time.Minute),
		dayStart,
		dayStart.Add(-time.Nanosecond),
		dayStart.Add(24 * time.Hour),
	} {
		rec := Record{ID: string(rune('a' + i)), StudentID: string(rune('a' + i)), WindowID: "W1", MarkedAt: at}
		require.NoError(t, mem.InsertIfAbsent(ctx, rec))
	}

	today, err := reports.Today(ctx)
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.Equal(t, dayStart, today[0].MarkedAt)
	assert.Equal(t, fixedNow.Add(-time.Minute), today[1].MarkedAt)

	empty, err := NewReports(NewInMemory(), nil).Today(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
