// File: /utils/response.go
package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

// SendServerError logs the underlying cause and returns a generic message.
// Persistence and I/O detail is never exposed to clients.
func SendServerError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	SendError(c, http.StatusInternalServerError, "Server error")
}
