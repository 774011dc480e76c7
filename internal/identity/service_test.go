package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"attendsync/internal/apperr"
)

type fakeSigner struct{}

func (fakeSigner) Sign(subject, role string) (string, time.Time, error) {
	return role + ":" + subject, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func (fakeSigner) Verify(token string) (string, error) {
	for _, prefix := range []string{"student:", "faculty:"} {
		if len(token) > len(prefix) && token[:len(prefix)] == prefix {
			return token[len(prefix):], nil
		}
	}
	return "", errors.New("bad token")
}

type ServiceSuite struct {
	suite.Suite
	users *InMemory
	svc   *Service
	ctx   context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.users = NewInMemory()
	s.svc = NewService(s.users, fakeSigner{}, "iiitdm.ac.in")
	s.ctx = context.Background()
}

func (s *ServiceSuite) registerStudent(email string) Session {
	sess, err := s.svc.Register(s.ctx, Registration{
		Email: email, Password: "password123", FullName: "Arjun Patel", Role: RoleStudent, Batch: "batch-a",
	})
	s.Require().NoError(err)
	return sess
}

func (s *ServiceSuite) TestRegister() {
	s.Run("student gets a batch profile and a token", func() {
		sess := s.registerStudent("CS23I1001@iiitdm.ac.in")

		s.Equal("bearer", sess.TokenType)
		s.Equal("cs23i1001@iiitdm.ac.in", sess.User.Email)
		s.Equal(RoleStudent, sess.User.Role)
		s.Require().NotNil(sess.User.Batch)
		s.Equal("batch-a", *sess.User.Batch)
		s.Nil(sess.User.Department)

		stored, err := s.users.FindByEmail(s.ctx, "cs23i1001@iiitdm.ac.in")
		s.Require().NoError(err)
		s.NotEqual("password123", stored.PasswordHash)
		s.NoError(CheckPassword(stored.PasswordHash, "password123"))
	})

	s.Run("faculty gets a department profile", func() {
		sess, err := s.svc.Register(s.ctx, Registration{
			Email: "dr.sharma@iiitdm.ac.in", Password: "pw", FullName: "Dr. Sharma", Role: RoleFaculty, Department: "CSE",
		})
		s.Require().NoError(err)
		s.Equal(RoleFaculty, sess.User.Role)
		s.Require().NotNil(sess.User.Department)
		s.Equal("CSE", *sess.User.Department)
		s.Nil(sess.User.Batch)
	})

	s.Run("duplicate email is rejected", func() {
		_, err := s.svc.Register(s.ctx, Registration{
			Email: "cs23i1001@iiitdm.ac.in", Password: "x", FullName: "Again", Role: RoleStudent, Batch: "batch-b",
		})
		s.True(apperr.Is(err, apperr.BadRequest))
		s.Contains(err.Error(), "Email already registered")
	})

	s.Run("foreign domain is rejected", func() {
		_, err := s.svc.Register(s.ctx, Registration{
			Email: "someone@gmail.com", Password: "x", FullName: "Someone", Role: RoleStudent, Batch: "batch-a",
		})
		s.True(apperr.Is(err, apperr.BadRequest))
	})

	s.Run("unknown role and missing batch are rejected", func() {
		_, err := s.svc.Register(s.ctx, Registration{
			Email: "admin@iiitdm.ac.in", Password: "x", FullName: "Admin", Role: "admin",
		})
		s.True(apperr.Is(err, apperr.BadRequest))

		_, err = s.svc.Register(s.ctx, Registration{
			Email: "nobatch@iiitdm.ac.in", Password: "x", FullName: "No Batch", Role: RoleStudent,
		})
		s.True(apperr.Is(err, apperr.BadRequest))
	})
}

func (s *ServiceSuite) TestLogin() {
	s.registerStudent("cs23i1002@iiitdm.ac.in")

	sess, err := s.svc.Login(s.ctx, "cs23i1002@iiitdm.ac.in", "password123")
	s.Require().NoError(err)
	s.NotEmpty(sess.AccessToken)

	_, err = s.svc.Login(s.ctx, "cs23i1002@iiitdm.ac.in", "wrong")
	s.True(apperr.Is(err, apperr.Unauthenticated))

	_, err = s.svc.Login(s.ctx, "ghost@iiitdm.ac.in", "password123")
	s.True(apperr.Is(err, apperr.Unauthenticated))
}

func (s *ServiceSuite) TestAuthenticate() {
	sess := s.registerStudent("cs23i1003@iiitdm.ac.in")

	user, err := s.svc.Authenticate(s.ctx, sess.AccessToken)
	s.Require().NoError(err)
	s.Equal(sess.User.ID, user.ID)
	profile, ok := user.Student()
	s.Require().True(ok)
	s.Equal("batch-a", profile.Batch)

	_, err = s.svc.Authenticate(s.ctx, "")
	s.True(apperr.Is(err, apperr.Unauthenticated))

	_, err = s.svc.Authenticate(s.ctx, "garbage")
	s.True(apperr.Is(err, apperr.Unauthenticated))

	_, err = s.svc.Authenticate(s.ctx, "student:missing-user")
	s.True(apperr.Is(err, apperr.Unauthenticated))
}

func (s *ServiceSuite) TestStudents() {
	s.registerStudent("cs23i1004@iiitdm.ac.in")
	s.registerStudent("cs23i1005@iiitdm.ac.in")

	students, err := s.svc.Students(s.ctx, "batch-a")
	s.Require().NoError(err)
	s.Len(students, 2)
	s.Equal("cs23i1004@iiitdm.ac.in", students[0].Email)

	none, err := s.svc.Students(s.ctx, "batch-z")
	s.Require().NoError(err)
	s.Empty(none)

	_, err = s.svc.Students(s.ctx, " ")
	s.True(apperr.Is(err, apperr.BadRequest))
}
