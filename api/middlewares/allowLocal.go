package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OnlyAllowLocal rejects requests not originating from the host machine. The
// management endpoints can change remote metadata, so a phone that scanned
// the QR code must not reach them.
func OnlyAllowLocal(c *gin.Context) {
	if !isLoopback(c.ClientIP()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Management endpoints are local only"})
		c.Abort()
		return
	}
	c.Next()
}

func isLoopback(ip string) bool {
	return ip == "127.0.0.1" || ip == "::1"
}
