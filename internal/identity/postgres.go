package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attendsync/internal/store"
)

// Postgres persists users in the users table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a user store over db.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const userColumns = `id, email, full_name, role, batch, department, hashed_password, is_active, created_at`

func (p *Postgres) Create(ctx context.Context, user User) error {
	var batch, department sql.NullString
	switch prof := user.Profile.(type) {
	case StudentProfile:
		batch = sql.NullString{String: prof.Batch, Valid: true}
	case FacultyProfile:
		department = sql.NullString{String: prof.Department, Valid: true}
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, user.Email, user.FullName, string(user.Role()), batch, department, user.PasswordHash, user.IsActive, user.CreatedAt)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return store.ErrConflict
		}
		return fmt.Errorf("%w: insert user: %v", store.ErrUnavailable, err)
	}
	return nil
}

func (p *Postgres) FindByID(ctx context.Context, id string) (User, error) {
	return p.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (p *Postgres) FindByEmail(ctx context.Context, email string) (User, error) {
	return p.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = LOWER($1)`, email)
}

func (p *Postgres) ListStudents(ctx context.Context, batch string) ([]User, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE role = 'student' AND batch = $1
		ORDER BY email
	`, batch)
	if err != nil {
		return nil, fmt.Errorf("%w: list students: %v", store.ErrUnavailable, err)
	}
	defer rows.Close()
	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list students: %v", store.ErrUnavailable, err)
	}
	return out, nil
}

func (p *Postgres) findOne(ctx context.Context, query string, arg string) (User, error) {
	u, err := scanUser(p.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, store.ErrNotFound
	}
	return u, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (User, error) {
	var (
		u                 User
		role              string
		batch, department sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &role, &batch, &department, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, err
		}
		return User{}, fmt.Errorf("%w: scan user: %v", store.ErrUnavailable, err)
	}
	switch Role(role) {
	case RoleStudent:
		u.Profile = StudentProfile{Batch: batch.String}
	case RoleFaculty:
		u.Profile = FacultyProfile{Department: department.String}
	}
	return u, nil
}
