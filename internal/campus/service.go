package campus

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"attendsync/internal/apperr"
	"attendsync/internal/store"
)

// Service manages the batch and hall catalog.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a catalog service over s.
func NewService(s Store) *Service {
	return &Service{store: s, now: func() time.Time { return time.Now().UTC() }}
}

// CreateBatch validates and stores a batch. A missing id is generated.
func (s *Service) CreateBatch(ctx context.Context, b Batch) (Batch, error) {
	b.Name = strings.TrimSpace(b.Name)
	b.Code = strings.TrimSpace(b.Code)
	if b.Name == "" || b.Code == "" {
		return Batch{}, apperr.New(apperr.BadRequest, "name and code are required")
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Students == nil {
		b.Students = []string{}
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now()
	}
	if err := s.store.CreateBatch(ctx, b); err != nil {
		return Batch{}, translate(err, "batch")
	}
	return b, nil
}

// ListBatches returns every batch.
func (s *Service) ListBatches(ctx context.Context) ([]Batch, error) {
	out, err := s.store.ListBatches(ctx)
	if err != nil {
		return nil, translate(err, "batch")
	}
	return out, nil
}

// CreateHall validates and stores a hall. The MAC address is normalised to
// upper-case colon form.
func (s *Service) CreateHall(ctx context.Context, h Hall) (Hall, error) {
	h.Name = strings.TrimSpace(h.Name)
	h.Code = strings.TrimSpace(h.Code)
	if h.Name == "" || h.Code == "" {
		return Hall{}, apperr.New(apperr.BadRequest, "name and code are required")
	}
	mac, err := net.ParseMAC(strings.TrimSpace(h.MACAddress))
	if err != nil || len(mac) != 6 {
		return Hall{}, apperr.New(apperr.BadRequest, "mac_address must be a 48-bit MAC address")
	}
	h.MACAddress = strings.ToUpper(mac.String())
	if h.Capacity < 0 {
		return Hall{}, apperr.New(apperr.BadRequest, "capacity must not be negative")
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}
	if err := s.store.CreateHall(ctx, h); err != nil {
		return Hall{}, translate(err, "hall")
	}
	return h, nil
}

// ListHalls returns every hall.
func (s *Service) ListHalls(ctx context.Context) ([]Hall, error) {
	out, err := s.store.ListHalls(ctx)
	if err != nil {
		return nil, translate(err, "hall")
	}
	return out, nil
}

func translate(err error, what string) error {
	if errors.Is(err, store.ErrConflict) {
		return apperr.Wrap(apperr.Conflict, what+" already exists", err)
	}
	return apperr.Wrap(apperr.StorageUnavailable, "storage unavailable", err)
}
