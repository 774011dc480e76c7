package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"attendsync/internal/apperr"
	"attendsync/internal/identity"
)

const userKey = "auth.user"

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (identity.User, error)
}

// ErrorWriter renders an error response and aborts the chain.
type ErrorWriter func(c *gin.Context, err error)

// Bearer enforces a bearer token and stores the resolved user on the context.
func Bearer(a Authenticator, fail ErrorWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			fail(c, apperr.New(apperr.Unauthenticated, "missing bearer token"))
			return
		}
		user, err := a.Authenticate(c.Request.Context(), strings.TrimSpace(authz[len("bearer "):]))
		if err != nil {
			fail(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole lets only users with role through. It must run after Bearer.
func RequireRole(role identity.Role, fail ErrorWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := UserFrom(c)
		if !ok {
			fail(c, apperr.New(apperr.Unauthenticated, "missing bearer token"))
			return
		}
		if user.Role() != role {
			fail(c, apperr.New(apperr.Forbidden, roleLabel(role)+" access required"))
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user set by Bearer.
func UserFrom(c *gin.Context) (identity.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return identity.User{}, false
	}
	user, ok := v.(identity.User)
	return user, ok
}

func roleLabel(role identity.Role) string {
	s := string(role)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
