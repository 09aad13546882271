package httpmw

import (
	"net/http"
	"time"

	"github.com/Devansh2835/EventSpark/internal/logger"
	"github.com/Devansh2835/EventSpark/internal/session"

	"github.com/gin-gonic/gin"
)

// Context keys set by the gates for downstream handlers.
const (
	CtxUserID  = "userID"
	CtxRole    = "role"
	CtxSession = "session"
)

// Machine-readable error codes returned alongside the HTTP status.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeSessionStoreError = "SESSION_STORE_ERROR"
)

// resolveSession looks up the session named by the request cookie.
// Absence of a cookie, an unknown id, or an expired session all resolve to
// (nil, false, nil). A non-nil error means the store itself failed, which
// callers must report as a server fault, never as "not logged in".
func resolveSession(c *gin.Context, store session.Store) (*session.Session, error) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	sess, err := store.Get(c.Request.Context(), cookie.Value)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	// The store's TTL already reaps expired sessions; this check only
	// covers clock skew between store and app. No state is mutated here.
	if time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}

	return sess, nil
}

// attach exposes the resolved identity to handlers.
func attach(c *gin.Context, sess *session.Session) {
	c.Set(CtxUserID, sess.UserID)
	c.Set(CtxRole, string(sess.Role))
	c.Set(CtxSession, *sess)
}

// failAuth rejects the request. Session and cookie contents are never
// logged, in any environment.
func failAuth(c *gin.Context, status int, code, msg string) {
	logger.Warn("request rejected by auth gate", map[string]any{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"code":   code,
	})
	c.AbortWithStatusJSON(status, gin.H{
		"error": msg,
		"code":  code,
	})
}

// RequireAuthenticated permits the request iff a session resolves and
// carries a non-empty user id.
func RequireAuthenticated(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := resolveSession(c, store)
		if err != nil {
			failAuth(c, http.StatusInternalServerError,
				CodeSessionStoreError, "session store unavailable")
			return
		}

		if sess == nil || sess.UserID == "" {
			failAuth(c, http.StatusUnauthorized,
				CodeUnauthorized, "Unauthorized. Please login.")
			return
		}

		attach(c, sess)
		c.Next()
	}
}

// RequireAdmin permits the request iff a session resolves, carries a
// non-empty user id, and its role is admin. It performs the full check
// itself: it may be mounted on a route without RequireAuthenticated in
// front of it, and a missing session must short-circuit before the role is
// ever read.
func RequireAdmin(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := resolveSession(c, store)
		if err != nil {
			failAuth(c, http.StatusInternalServerError,
				CodeSessionStoreError, "session store unavailable")
			return
		}

		if sess == nil || sess.UserID == "" || sess.Role != session.RoleAdmin {
			failAuth(c, http.StatusForbidden,
				CodeForbidden, "Forbidden. Admin access required.")
			return
		}

		attach(c, sess)
		c.Next()
	}
}
