package middleware

import (
	"errors"
	"net/http"

	"exam-tasks-api/internal/apperror"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler turns the last error attached to the context into a JSON
// response. Errors without a known kind become a generic 500.
func ErrorHandler(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		entry := log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err)

		var appErr *apperror.Error
		if !errors.As(err, &appErr) || appErr.Kind == apperror.Unknown {
			entry.Error("request failed")
			respond(c, http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		status := appErr.Kind.Status()
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.WithField("kind", appErr.Kind.String()).Debug("request rejected")
		}

		body := gin.H{"error": appErr.Message}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		respond(c, status, body)
	}
}

func respond(c *gin.Context, status int, body gin.H) {
	if c.Writer.Written() {
		return
	}
	c.JSON(status, body)
}
