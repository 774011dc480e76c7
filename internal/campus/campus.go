package campus

import (
	"context"
	"time"
)

// Batch is a cohort of students sharing a code.
type Batch struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Students  []string  `json:"students"`
	CreatedAt time.Time `json:"created_at"`
}

// Hall is a physical room identified by its beacon's MAC address.
type Hall struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	MACAddress  string    `json:"mac_address"`
	BeaconMajor *int      `json:"beacon_major"`
	BeaconMinor *int      `json:"beacon_minor"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists batches and halls. Create returns store.ErrConflict when the
// id is taken.
type Store interface {
	CreateBatch(ctx context.Context, b Batch) error
	ListBatches(ctx context.Context) ([]Batch, error)
	CreateHall(ctx context.Context, h Hall) error
	ListHalls(ctx context.Context) ([]Hall, error)
}
