package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"attendsync/internal/apperr"
	"attendsync/internal/identity"
)

type stubAuthenticator map[string]identity.User

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (identity.User, error) {
	u, ok := s[token]
	if !ok {
		return identity.User{}, apperr.New(apperr.Unauthenticated, "Invalid authentication credentials")
	}
	return u, nil
}

func writeErr(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	c.AbortWithStatusJSON(apperr.HTTPStatus(kind), gin.H{"error": apperr.PublicMessage(err), "code": kind})
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	users := stubAuthenticator{
		"stu": {ID: "s1", Profile: identity.StudentProfile{Batch: "B1"}, IsActive: true},
		"fac": {ID: "f1", Profile: identity.FacultyProfile{Department: "CSE"}, IsActive: true},
	}
	r := gin.New()
	r.GET("/student", Bearer(users, writeErr), RequireRole(identity.RoleStudent, writeErr), func(c *gin.Context) {
		u, _ := UserFrom(c)
		c.String(http.StatusOK, u.ID)
	})
	return r
}

func TestBearerAndRole(t *testing.T) {
	r := newRouter()
	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, ""},
		{"wrong role", "Bearer fac", http.StatusForbidden, ""},
		{"student", "bearer stu", http.StatusOK, "s1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/student", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}
