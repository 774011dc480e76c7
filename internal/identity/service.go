package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"attendsync/internal/apperr"
	"attendsync/internal/store"
)

// TokenSigner issues and verifies bearer tokens for a subject.
type TokenSigner interface {
	Sign(subject, role string) (token string, expiresAt time.Time, err error)
	Verify(token string) (subject string, err error)
}

// Service registers users, logs them in and resolves bearer tokens back to
// users. It is the Identity Provider of the HTTP surfaces.
type Service struct {
	users       Store
	tokens      TokenSigner
	emailDomain string
	now         func() time.Time
}

// NewService creates a service. An empty emailDomain accepts any address.
func NewService(users Store, tokens TokenSigner, emailDomain string) *Service {
	return &Service{
		users:       users,
		tokens:      tokens,
		emailDomain: strings.ToLower(strings.TrimPrefix(emailDomain, "@")),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Registration is the input to Register.
type Registration struct {
	Email      string
	Password   string
	FullName   string
	Role       Role
	Batch      string
	Department string
}

// Session is returned after a successful register or login.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        View      `json:"user"`
}

// Register creates an account and signs the caller in.
func (s *Service) Register(ctx context.Context, in Registration) (Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		return Session{}, apperr.New(apperr.BadRequest, "email, password and full_name are required")
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return Session{}, apperr.New(apperr.BadRequest, "Email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return Session{}, storageError(err)
	}
	if !s.allowedEmail(email) {
		return Session{}, apperr.New(apperr.BadRequest, "Only @"+s.emailDomain+" email addresses are allowed")
	}

	var profile Profile
	switch in.Role {
	case RoleStudent:
		if strings.TrimSpace(in.Batch) == "" {
			return Session{}, apperr.New(apperr.BadRequest, "batch is required for students")
		}
		profile = StudentProfile{Batch: strings.TrimSpace(in.Batch)}
	case RoleFaculty:
		profile = FacultyProfile{Department: strings.TrimSpace(in.Department)}
	default:
		return Session{}, apperr.New(apperr.BadRequest, "role must be student or faculty")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return Session{}, apperr.Wrap(apperr.BadRequest, "password cannot be hashed", err)
	}
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		Profile:      profile,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return Session{}, apperr.New(apperr.BadRequest, "Email already registered")
		}
		return Session{}, storageError(err)
	}
	return s.session(user)
}

// Login verifies credentials and returns a fresh session.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, apperr.New(apperr.Unauthenticated, "Incorrect email or password")
		}
		return Session{}, storageError(err)
	}
	if !user.IsActive || CheckPassword(user.PasswordHash, password) != nil {
		return Session{}, apperr.New(apperr.Unauthenticated, "Incorrect email or password")
	}
	return s.session(user)
}

// Authenticate resolves a bearer token to an active user.
func (s *Service) Authenticate(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, apperr.New(apperr.Unauthenticated, "missing bearer token")
	}
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return User{}, apperr.Wrap(apperr.Unauthenticated, "Invalid authentication credentials", err)
	}
	user, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return User{}, apperr.New(apperr.Unauthenticated, "User not found")
		}
		return User{}, storageError(err)
	}
	if !user.IsActive {
		return User{}, apperr.New(apperr.Unauthenticated, "User is inactive")
	}
	return user, nil
}

// Students lists the students enrolled in batch.
func (s *Service) Students(ctx context.Context, batch string) ([]User, error) {
	if strings.TrimSpace(batch) == "" {
		return nil, apperr.New(apperr.BadRequest, "batch_id is required")
	}
	users, err := s.users.ListStudents(ctx, batch)
	if err != nil {
		return nil, storageError(err)
	}
	return users, nil
}

func (s *Service) session(user User) (Session, error) {
	token, exp, err := s.tokens.Sign(user.ID, string(user.Role()))
	if err != nil {
		return Session{}, apperr.Wrap(apperr.Internal, "token issue failed", err)
	}
	return Session{AccessToken: token, TokenType: "bearer", ExpiresAt: exp, User: user.View()}, nil
}

func (s *Service) allowedEmail(email string) bool {
	if s.emailDomain == "" {
		return true
	}
	return strings.HasSuffix(email, "@"+s.emailDomain)
}

func storageError(err error) error {
	return apperr.Wrap(apperr.StorageUnavailable, "storage unavailable", err)
}
