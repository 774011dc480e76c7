//go:build integration

package tally_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendsync/internal/tally"
	"attendsync/internal/testutil/containers"
)

func TestRedisCounter(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	c := tally.NewRedisCounter(rc.Redis.Client, "test:window:")

	counted, err := c.Incr(ctx, tally.Event{WindowID: "W1", StudentID: "S1", VerificationMethod: "face_recognition"})
	require.NoError(t, err)
	assert.True(t, counted)

	counted, err = c.Incr(ctx, tally.Event{WindowID: "W1", StudentID: "S1", VerificationMethod: "face_recognition"})
	require.NoError(t, err)
	assert.False(t, counted, "redelivered event must not count twice")

	_, err = c.Incr(ctx, tally.Event{WindowID: "W1", StudentID: "S2", VerificationMethod: "beacon"})
	require.NoError(t, err)

	counts, err := c.Get(ctx, "W1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Total)
	assert.Equal(t, map[string]int64{"face_recognition": 1, "beacon": 1}, counts.ByMethod)

	empty, err := c.Get(ctx, "W-unknown")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
}
