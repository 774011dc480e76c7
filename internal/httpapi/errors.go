package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"attendsync/internal/apperr"
)

// errorWriter renders err as {"error", "code"} with the status of its kind.
// Internal and storage failures are logged with the underlying cause.
func errorWriter(logger *slog.Logger) func(c *gin.Context, err error) {
	return func(c *gin.Context, err error) {
		kind := apperr.KindOf(err)
		status := apperr.HTTPStatus(kind)
		if status >= 500 {
			logger.Error("request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"code", kind,
				"error", err,
			)
		}
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"error": apperr.PublicMessage(err), "code": kind})
	}
}
