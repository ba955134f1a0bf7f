package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/image2pdf/internal/models"
)

// SessionIDKey is the context and cookie-session key carrying the
// caller's session ID.
const SessionIDKey = "session_id"

// EnsureSession assigns a UUID session ID on first contact and exposes
// it to handlers through the gin context. All result state is keyed by
// this ID.
func EnsureSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sess := sessions.Default(ctx)

		sid, _ := sess.Get(SessionIDKey).(string)
		if sid == "" {
			sid = uuid.New().String()
			sess.Set(SessionIDKey, sid)
			if err := sess.Save(); err != nil {
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.APIResponse{
					Success: false,
					Error:   "Failed to establish session",
				})
				return
			}
		}

		ctx.Set(SessionIDKey, sid)
		ctx.Next()
	}
}

// SessionID returns the session ID placed on the context by
// EnsureSession.
func SessionID(ctx *gin.Context) string {
	return ctx.GetString(SessionIDKey)
}
