package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/careerhub/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(m *AuthMiddleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.Authenticate())

	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	}
	r.GET("/public", whoami)
	r.GET("/api", m.RequireAuth(), whoami)
	r.GET("/page", m.RequireLogin(), whoami)
	return r
}

func TestAnonymousRequests(t *testing.T) {
	m := NewAuthMiddleware(session.NewManager(session.NewMemoryStore(), "secret", time.Hour))
	r := setupRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page?x=1", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/auth/signin?next=%2Fpage%3Fx%3D1", w.Header().Get("Location"))
}

func TestTokenSources(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), "secret", time.Hour)
	r := setupRouter(NewAuthMiddleware(manager))

	userID := uuid.New()
	token, err := manager.Issue(context.Background(), userID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		prepare func(req *http.Request)
		path    string
	}{
		{"bearer header", func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token.Value) }, "/api"},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token.Value}) }, "/api"},
		{"query", func(*http.Request) {}, "/api?token=" + token.Value},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), userID.String())
		})
	}
}

func TestRevokedTokenIsAnonymous(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), "secret", time.Hour)
	r := setupRouter(NewAuthMiddleware(manager))

	token, err := manager.Issue(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, manager.Revoke(context.Background(), token.SessionID))

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
