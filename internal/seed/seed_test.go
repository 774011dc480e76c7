package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendsync/internal/attendance"
	"attendsync/internal/campus"
	"attendsync/internal/identity"
	"attendsync/internal/store"
)

func TestLoadDemo(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	hash, err := identity.HashPassword(DemoPassword)
	require.NoError(t, err)

	users := identity.NewInMemory()
	catalog := campus.NewInMemory()
	att := attendance.NewInMemory()
	stores := Stores{Users: users, Catalog: catalog, Windows: att, Records: att}

	require.NoError(t, Load(ctx, stores, Demo(now, hash)))

	halls, err := catalog.ListHalls(ctx)
	require.NoError(t, err)
	require.Len(t, halls, 3)
	assert.Equal(t, "AA:BB:CC:DD:EE:01", halls[0].MACAddress)

	batchA, err := users.ListStudents(ctx, "batch-a")
	require.NoError(t, err)
	assert.Len(t, batchA, 2)

	faculty, err := users.FindByEmail(ctx, "dr.sharma@iiitdm.ac.in")
	require.NoError(t, err)
	assert.NoError(t, identity.CheckPassword(faculty.PasswordHash, DemoPassword))

	open, err := att.FindWindowsForBatch(ctx, "batch-a", now)
	require.NoError(t, err)
	assert.Len(t, open, 1)
	assert.Equal(t, 2, att.Len())

	// The seeded records hold the at-most-once invariant like any other.
	engine := attendance.NewEngine(attendance.NewRegistry(att), att, attendance.WithClock(func() time.Time { return now }))
	student1, err := users.FindByID(ctx, "student-1")
	require.NoError(t, err)
	_, err = engine.Admit(ctx, student1, attendance.Claim{HallID: "hall-101", WindowID: "window-1"})
	assert.Error(t, err)

	err = Load(ctx, stores, Demo(now, hash))
	assert.ErrorIs(t, err, store.ErrConflict, "loading twice collides on ids")
}
