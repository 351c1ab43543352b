package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var multipartOverhead = int64(8 * 1024) // rough padding for multipart boundaries

// SizeLimit caps the request body at maxBodyBytes.
// Reads past the cap fail with http.MaxBytesError, which upload handlers
// translate to 413 request entity too large.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes+multipartOverhead)

		c.Next()
	}
}
