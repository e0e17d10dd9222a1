// Package response writes the JSON envelope used by the plain HTTP
// endpoints (health, rate limiting, malformed GraphQL requests). GraphQL
// results keep their own {data, errors} shape.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type APIResponse[T any] struct {
	Success   bool      `json:"success"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Error     any       `json:"error,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func envelope[T any](c *gin.Context, status int, message string) APIResponse[T] {
	return APIResponse[T]{
		Status:    status,
		Message:   message,
		RequestID: c.GetString("request_id"),
		Timestamp: time.Now().UTC(),
	}
}

// Success writes data with status (200 when zero) and returns the envelope.
func Success[T any](c *gin.Context, status int, data T, message string) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	res := envelope[T](c, status, message)
	res.Success, res.Data = true, data
	c.JSON(status, res)
	return res
}

// Error writes a failure with status (400 when zero). It does not abort the
// handler chain; middleware that rejects a request calls c.Abort itself.
func Error[T any](c *gin.Context, status int, message string, detail any) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	res := envelope[T](c, status, message)
	res.Error = detail
	c.JSON(status, res)
	return res
}
