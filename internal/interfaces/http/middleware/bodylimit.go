package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tradeworks/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size.
// Signature data URIs ride in JSON bodies, so the limit must leave
// room for base64-encoded images.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size"))
			return
		}

		// Streaming requests without Content-Length still get capped
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
