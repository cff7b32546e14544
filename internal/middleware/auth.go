package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"oauth-userdata/internal/logger"
	"oauth-userdata/internal/session"
)

// unexported, collision-proof context key
type userIDContextKeyType struct{}

var userIDKey = userIDContextKeyType{}

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// RequireSession rejects requests without a live session and exposes the
// user id both on the gin context and on the request context.
func RequireSession(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := session.FromRequest(c.Request)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		sess, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			logger.Error("session lookup failed", map[string]any{"error": err})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if sess.Expired(time.Now()) {
			_ = store.Delete(c.Request.Context(), sessionID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(UserIDKey, sess.UserID)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), userIDKey, sess.UserID),
		)
		c.Next()
	}
}
