package response

import (
	"log/slog"

	"ctchen222/rehla/internal/api/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Error writes err with the status of its kind. Internal errors are logged
// with their cause and reduced to a generic message.
func Error(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.Status()

	if appErr.Kind == apperror.KindInternal {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}

	c.AbortWithStatusJSON(status, ErrorBody{
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// ErrorResponse writes a bare message with the given status.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorBody{Message: message})
}
