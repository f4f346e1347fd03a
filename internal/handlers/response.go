package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler-level failures use the flat envelope {success:false, error:"..."}.
// Middleware-level failures (no-route, panics, rate limits) use the nested
// envelope with a timestamp; see internal/middleware.

func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

func RespondOK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
