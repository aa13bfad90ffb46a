package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge/internal/auth"
	"bridge/internal/config"
	"bridge/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens() *auth.Tokens {
	return auth.NewTokens(config.AuthConfig{Secret: "test-secret", TokenExpiry: time.Hour, Issuer: "bridge"})
}

func protectedRouter(tokens *auth.Tokens) *gin.Engine {
	r := gin.New()
	r.GET("/workspaces/:id", middleware.WorkspaceAuth(tokens), func(c *gin.Context) {
		id, err := middleware.GetWorkspaceID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String())
	})
	return r
}

func TestWorkspaceAuth(t *testing.T) {
	tokens := newTokens()
	id := uuid.New()
	token, _, err := tokens.Issue(id)
	require.NoError(t, err)
	otherToken, _, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{"bearer header", "/workspaces/" + id.String(), "Bearer " + token, http.StatusOK},
		{"query token", "/workspaces/" + id.String() + "?token=" + token, "", http.StatusOK},
		{"missing token", "/workspaces/" + id.String(), "", http.StatusUnauthorized},
		{"wrong scheme", "/workspaces/" + id.String(), "Basic abc", http.StatusUnauthorized},
		{"garbage token", "/workspaces/" + id.String(), "Bearer not-a-jwt", http.StatusUnauthorized},
		{"other workspace", "/workspaces/" + id.String(), "Bearer " + otherToken, http.StatusForbidden},
	}

	r := protectedRouter(tokens)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, id.String(), w.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2)
	r := gin.New()
	r.POST("/work", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/work", http.NoBody)
		req.RemoteAddr = ip + ":1234"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	w := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code, "clients are limited independently")
}

func TestRateLimiter_AllowSharesBucketWithMiddleware(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 1)

	_, ok := limiter.Allow("ws-1")
	assert.True(t, ok)

	wait, ok := limiter.Allow("ws-1")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	_, ok = limiter.Allow("ws-2")
	assert.True(t, ok)
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := middleware.NewRateLimiter(0, 1)
	r := gin.New()
	r.POST("/work", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/work", http.NoBody)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger())
	r.GET("/ping", func(c *gin.Context) {
		id, _ := c.Get(middleware.ContextKeyRequestID)
		c.String(http.StatusOK, id.(string))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", http.NoBody)
	r.ServeHTTP(w, req)
	generated := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://localhost:3000"}))
	r.POST("/api", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
