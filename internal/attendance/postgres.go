package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"attendsync/internal/store"
)

// Postgres persists windows and records. The unique index on
// (student_id, attendance_window_id) backs InsertIfAbsent.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a store over db.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const (
	windowColumns = `id, hall_id, batch_id, start_time, end_time, is_active, created_by, created_at`
	recordColumns = `id, student_id, hall_id, batch_id, attendance_window_id, marked_at, verification_method, beacon_rssi, face_confidence`
)

// CreateWindow writes a new window.
func (p *Postgres) CreateWindow(ctx context.Context, w Window) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO attendance_windows (`+windowColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, w.ID, w.HallID, w.BatchID, w.StartTime, w.EndTime, w.IsActive, w.CreatedBy, w.CreatedAt)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return store.ErrConflict
		}
		return unavailable("insert window", err)
	}
	return nil
}

// FindActiveWindow binds at once and compares it against both bounds.
func (p *Postgres) FindActiveWindow(ctx context.Context, id string, at time.Time) (Window, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT `+windowColumns+`
		FROM attendance_windows
		WHERE id = $1 AND is_active AND start_time <= $2 AND end_time >= $2
	`, id, at)
	var w Window
	if err := row.Scan(&w.ID, &w.HallID, &w.BatchID, &w.StartTime, &w.EndTime, &w.IsActive, &w.CreatedBy, &w.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Window{}, store.ErrNotFound
		}
		return Window{}, unavailable("find window", err)
	}
	return w, nil
}

// FindWindowsForBatch lists the batch's windows valid at at.
func (p *Postgres) FindWindowsForBatch(ctx context.Context, batchID string, at time.Time) ([]Window, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+windowColumns+`
		FROM attendance_windows
		WHERE batch_id = $1 AND is_active AND start_time <= $2 AND end_time >= $2
	`, batchID, at)
	if err != nil {
		return nil, unavailable("list windows", err)
	}
	defer rows.Close()
	var out []Window
	for rows.Next() {
		var w Window
		if err := rows.Scan(&w.ID, &w.HallID, &w.BatchID, &w.StartTime, &w.EndTime, &w.IsActive, &w.CreatedBy, &w.CreatedAt); err != nil {
			return nil, unavailable("scan window", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list windows", err)
	}
	return out, nil
}

// FindRecord returns the student's record for the window.
func (p *Postgres) FindRecord(ctx context.Context, studentID, windowID string) (Record, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE student_id = $1 AND attendance_window_id = $2
	`, studentID, windowID)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, store.ErrNotFound
		}
		return Record{}, unavailable("find record", err)
	}
	return rec, nil
}

// InsertIfAbsent writes rec in a single statement, so a cancelled context
// either commits it whole or not at all.
func (p *Postgres) InsertIfAbsent(ctx context.Context, rec Record) error {
	res, err := p.db.ExecContext(ctx, `
		INSERT INTO attendance_records (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (student_id, attendance_window_id) DO NOTHING
	`, rec.ID, rec.StudentID, rec.HallID, rec.BatchID, rec.WindowID, rec.MarkedAt, rec.VerificationMethod, rec.BeaconRSSI, rec.FaceConfidence)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return store.ErrConflict
		}
		return unavailable("insert record", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("insert record", err)
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

// ListMarkedBetween returns records with from <= marked_at <= to.
func (p *Postgres) ListMarkedBetween(ctx context.Context, from, to time.Time) ([]Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE marked_at >= $1 AND marked_at <= $2
		ORDER BY marked_at
	`, from, to)
	if err != nil {
		return nil, unavailable("list records", err)
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, unavailable("scan record", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list records", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec  Record
		rssi sql.NullInt64
		conf sql.NullFloat64
	)
	if err := row.Scan(&rec.ID, &rec.StudentID, &rec.HallID, &rec.BatchID, &rec.WindowID, &rec.MarkedAt, &rec.VerificationMethod, &rssi, &conf); err != nil {
		return Record{}, err
	}
	if rssi.Valid {
		v := int(rssi.Int64)
		rec.BeaconRSSI = &v
	}
	if conf.Valid {
		v := conf.Float64
		rec.FaceConfidence = &v
	}
	return rec, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", store.ErrUnavailable, op, err)
}
