package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdentityHeader carries the acting user's id. There is no session layer; the
// gateway in front of the service authenticates and forwards the id.
const IdentityHeader = "X-Sharer-User-Id"

const ctxUserIDKey = "user_id"

// RequireIdentity parses the identity header and aborts with 400 when it is
// missing or malformed, matching the contract of the original service.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(IdentityHeader)
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "X-Sharer-User-Id header required",
			})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid X-Sharer-User-Id header format",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}
