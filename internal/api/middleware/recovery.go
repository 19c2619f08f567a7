package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"ctchen222/rehla/internal/api/apperror"
	"ctchen222/rehla/internal/api/response"

	"github.com/gin-gonic/gin"
)

// Recovery recovers from panics, logs the stack and answers 500.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rvr := recover(); rvr != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					slog.String("request_id", GetRequestID(c)),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)
				response.Error(c, apperror.Internal(fmt.Errorf("panic: %v", rvr)))
			}
		}()

		c.Next()
	}
}
