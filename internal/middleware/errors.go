package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pathly-backend/internal/logger"
	"github.com/yungbote/pathly-backend/internal/utils"
)

// Recovery converts panics into the standard error envelope. The stack is
// only disclosed outside production mode.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	mwLog := log.With("middleware", "Recovery")
	appEnv := strings.ToLower(utils.GetEnv("APP_ENV", "development", log))
	includeStack := appEnv != "production" && appEnv != "prod"

	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				mwLog.Error("Unhandled panic", "error", r, "path", c.Request.URL.Path, "stack", stack)

				errBody := gin.H{"message": fmt.Sprintf("%v", r)}
				if includeStack {
					errBody["stack"] = stack
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success":   false,
					"error":     errBody,
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
			}
		}()
		c.Next()
	}
}

// NotFoundHandler answers unmatched routes with the standard envelope.
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error": gin.H{
			"message": fmt.Sprintf("Route %s not found", c.Request.URL.Path),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
