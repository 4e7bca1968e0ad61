// middleware/request_id.go

package middleware

import (
	"github.com/gin-gonic/gin"

	helper_util "github.com/joshmo01/FX-MS/util/helper"
)

// RequestID attaches a request identifier to the context and response so
// decisions can be correlated across logs and audit entries.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = helper_util.NewRequestID("MR")
		}
		c.Set("requestID", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}
