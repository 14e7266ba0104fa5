package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vibe-todo/vibetodo/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(auth services.AuthServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(), AuthMiddleware(auth))
	r.GET("/lists", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("subject")})
	})
	return r
}

func TestAuthMiddlewareDisabled(t *testing.T) {
	r := newRouter(services.NewAuthService("", 1, ""))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lists", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareEnabled(t *testing.T) {
	auth := services.NewAuthService("secret", 1, "")
	r := newRouter(auth)

	hash, err := auth.HashPassword("pw")
	require.NoError(t, err)
	signed, err := services.NewAuthService("secret", 1, hash).Login("pw")
	require.NoError(t, err)

	cases := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no token", "/lists", "", http.StatusUnauthorized},
		{"bad scheme", "/lists", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "/lists", "Bearer nope", http.StatusUnauthorized},
		{"valid header", "/lists", "Bearer " + signed, http.StatusOK},
		{"valid query", "/lists?token=" + signed, "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"subject":"owner"`)
			}
		})
	}
}

func TestCORSMiddlewareAllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware("http://localhost*"))
	r.GET("/lists", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/lists", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
