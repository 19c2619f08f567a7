// Package response writes JSON responses for the API controllers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestID"

// OK is the body of acknowledgement-only responses.
type OK struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse returns a 200 JSON response with no type limitation.
func SuccessResponse(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// CreatedResponse returns a 201 JSON response.
func CreatedResponse(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

// SuccessResponseList returns a 200 JSON array; a nil slice is written as [].
func SuccessResponseList[T any](c *gin.Context, list []T) {
	if list == nil {
		list = []T{}
	}
	c.JSON(http.StatusOK, list)
}
