package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger writes one access line per request to the application log and
// recovers from handler panics.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := requestID(c)

		defer func() {
			if recovered := recover(); recovered != nil {
				err := fmt.Errorf("%v", recovered)
				logger.Printf(
					"request_error type=panic method=%s path=%s request_id=%s error=%q stack=%s",
					c.Request.Method, c.Request.URL.Path, reqID, err.Error(), debug.Stack(),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_SERVER_ERROR",
						"message": "Internal Server Error",
					},
				})
				return
			}

			logger.Printf(
				"request method=%s path=%s status=%d client_ip=%s request_id=%s latency=%s",
				c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.ClientIP(), reqID, time.Since(start),
			)
		}()

		c.Next()
	}
}

func requestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}
