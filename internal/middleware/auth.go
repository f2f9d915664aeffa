package middleware

import (
	"net/http"
	"strings"

	"anoa.com/careerhub/internal/urls"
	"anoa.com/careerhub/pkg/session"
	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	sessions *session.Manager
}

func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate resolves the session token, if any, and never aborts.
// Handlers that need a user rely on RequireAuth or RequireLogin.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := m.sessions.Resolve(c.Request.Context(), tokenString)
		if err == nil {
			c.Set("user_id", claims.UserID.String())
			c.Set("session_id", claims.SessionID)
		}
		c.Next()
	}
}

// RequireAuth answers anonymous requests with 401.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireLogin sends anonymous requests to sign-in with a next parameter.
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			location := urls.SignInNext(c.Request.URL.RequestURI())
			c.Header("Location", location)
			c.JSON(http.StatusFound, gin.H{"error": "authentication required", "redirect": location})
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		return cookie
	}

	// Fallback to query parameter "token" (useful for WebSockets)
	return c.Query("token")
}
