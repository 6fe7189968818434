package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"applyai-backend/internal/shared/server/respond"
)

const ownerIDKey = "ownerId"

// Identity resolves the owner from headers set by the fronting auth layer.
// Authentication itself happens upstream; this layer only trusts the
// X-User-Id header, with an X-Guest-Id fallback for anonymous sessions.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if userID := strings.TrimSpace(c.GetHeader("X-User-Id")); userID != "" {
			c.Set(ownerIDKey, userID)
			c.Next()
			return
		}

		if guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id")); guestID != "" {
			c.Set(ownerIDKey, "guest:"+guestID)
			c.Next()
			return
		}

		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
	}
}

// OwnerIDFromContext returns the owner ID stored by Identity middleware.
func OwnerIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(ownerIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
