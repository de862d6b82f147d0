package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope mengikuti kontrak lama si front end: selalu HTTP 200,
// sukses/gagal dibedakan lewat flag `success`.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

// Error still answers 200: the transport is status-agnostic, the envelope
// carries the failure. The real status code only shows up in logs.
func Error(c *gin.Context, errorCode string, message string, details interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: false,
		Data:    nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
