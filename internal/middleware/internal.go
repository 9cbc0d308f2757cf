package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	apierrors "github.com/ulugbek-dev/taskearn-api/internal/errors"
)

const internalTokenHeader = "X-Internal-Token"

// RequireInternalToken guards the privileged route group. Requests must carry
// the shared secret; an empty configured token disables the group entirely.
func RequireInternalToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(internalTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
