package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		Unauthenticated:    http.StatusUnauthorized,
		Forbidden:          http.StatusForbidden,
		InvalidWindow:      http.StatusBadRequest,
		AlreadyMarked:      http.StatusBadRequest,
		StorageUnavailable: http.StatusServiceUnavailable,
		NotFound:           http.StatusNotFound,
		Conflict:           http.StatusConflict,
		Internal:           http.StatusInternalServerError,
		Kind("other"):      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), "kind %s", kind)
	}
}

func TestKindOfWrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("admit: %w", Wrap(StorageUnavailable, "storage unavailable", cause))

	assert.Equal(t, StorageUnavailable, KindOf(err))
	assert.True(t, Retryable(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, Internal, KindOf(cause))
	assert.False(t, Retryable(New(AlreadyMarked, "attendance already marked")))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "attendance window not active", PublicMessage(New(InvalidWindow, "attendance window not active")))
	assert.Equal(t, "internal error", PublicMessage(errors.New("pq: relation missing")))
	assert.Equal(t, "internal error", PublicMessage(Wrap(Internal, "scan failed", errors.New("boom"))))
}
