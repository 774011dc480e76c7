//go:build integration

package campus_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendsync/internal/campus"
	"attendsync/internal/store"
	"attendsync/internal/testutil/containers"
)

func TestPostgresCatalog(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	svc := campus.NewService(campus.NewPostgres(pg.DB.Client))
	now := time.Now().UTC().Truncate(time.Second)

	_, err := svc.CreateBatch(ctx, campus.Batch{ID: "batch-a", Name: "Batch A", Code: "BA2025", Students: []string{"s1", "s2"}, CreatedAt: now})
	require.NoError(t, err)
	_, err = svc.CreateBatch(ctx, campus.Batch{ID: "batch-a", Name: "Again", Code: "X"})
	require.Error(t, err)

	batches, err := svc.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"s1", "s2"}, batches[0].Students)

	major := 101
	_, err = svc.CreateHall(ctx, campus.Hall{ID: "hall-101", Name: "Hall 101", Code: "H101", MACAddress: "aa-bb-cc-dd-ee-01", BeaconMajor: &major, Capacity: 60})
	require.NoError(t, err)

	halls, err := svc.ListHalls(ctx)
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, "AA:BB:CC:DD:EE:01", halls[0].MACAddress)
	require.NotNil(t, halls[0].BeaconMajor)
	assert.Equal(t, 101, *halls[0].BeaconMajor)
	assert.Nil(t, halls[0].BeaconMinor)

	require.NoError(t, store.Reset(ctx, pg.DB.Client))
	halls, err = svc.ListHalls(ctx)
	require.NoError(t, err)
	assert.Empty(t, halls)
}
