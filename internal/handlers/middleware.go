package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillforge/course-service/internal/auth"
	"github.com/skillforge/course-service/internal/models"
)

const (
	// SessionCookieName is the cookie carrying the opaque session ID.
	SessionCookieName = "session_id"

	// CSRFHeaderName must match the session's CSRF token on mutating requests.
	CSRFHeaderName = "X-CSRF-Token"

	contextKeySession = "session"
)

// SessionMiddleware resolves the session cookie and attaches the session to
// the request context. Requests without a valid session pass through
// unauthenticated; route guards decide what that means.
func SessionMiddleware(store auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		session, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionNotFound) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Failed to resolve session",
				})
				return
			}
			c.Next()
			return
		}

		c.Set(contextKeySession, session)
		c.Set("user_id", session.Principal.UserID)
		c.Set("role", session.Principal.Role)
		c.Next()
	}
}

// RequireRole guards a route group: 401 without a session, 403 when the
// session's role is not in the allowed set. Admins pass every guard.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		session := currentSession(c)
		if session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		role := session.Principal.Role
		if role != models.RoleAdmin && !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// CSRFMiddleware rejects mutating requests whose CSRF header does not match
// the token issued with the session. Safe methods and anonymous requests
// are exempt.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		session := currentSession(c)
		if session == nil {
			c.Next()
			return
		}

		token := c.GetHeader(CSRFHeaderName)
		if token == "" {
			token = c.PostForm("csrf_token")
		}
		if token != session.CSRFToken {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "CSRF token mismatch",
			})
			return
		}
		c.Next()
	}
}
