package campus

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"attendsync/internal/store"
)

// Postgres persists the catalog in the batches and halls tables.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a catalog store over db.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) CreateBatch(ctx context.Context, b Batch) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO batches (id, name, code, students, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, b.ID, b.Name, b.Code, b.Students, b.CreatedAt)
	return insertError(err, "batch")
}

func (p *Postgres) ListBatches(ctx context.Context) ([]Batch, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, name, code, students, created_at FROM batches ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("%w: list batches: %v", store.ErrUnavailable, err)
	}
	defer rows.Close()
	types := pgtype.NewMap()
	var out []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, types.SQLScanner(&b.Students), &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan batch: %v", store.ErrUnavailable, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (p *Postgres) CreateHall(ctx context.Context, h Hall) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO halls (id, name, code, mac_address, beacon_major, beacon_minor, capacity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, h.ID, h.Name, h.Code, h.MACAddress, h.BeaconMajor, h.BeaconMinor, h.Capacity, h.CreatedAt)
	return insertError(err, "hall")
}

func (p *Postgres) ListHalls(ctx context.Context) ([]Hall, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, code, mac_address, beacon_major, beacon_minor, capacity, created_at
		FROM halls ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list halls: %v", store.ErrUnavailable, err)
	}
	defer rows.Close()
	var out []Hall
	for rows.Next() {
		var (
			h            Hall
			major, minor sql.NullInt64
		)
		if err := rows.Scan(&h.ID, &h.Name, &h.Code, &h.MACAddress, &major, &minor, &h.Capacity, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan hall: %v", store.ErrUnavailable, err)
		}
		if major.Valid {
			v := int(major.Int64)
			h.BeaconMajor = &v
		}
		if minor.Valid {
			v := int(minor.Int64)
			h.BeaconMinor = &v
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func insertError(err error, what string) error {
	if err == nil {
		return nil
	}
	if store.IsUniqueViolation(err) {
		return store.ErrConflict
	}
	return fmt.Errorf("%w: insert %s: %v", store.ErrUnavailable, what, err)
}
