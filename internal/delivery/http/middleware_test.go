package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORSMiddleware(allowedOrigins))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("allows exact origin", func(t *testing.T) {
		router := newCORSRouter([]string{"http://localhost:5173"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allows wildcard prefix", func(t *testing.T) {
		router := newCORSRouter([]string{"https://myskyn-*"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "https://myskyn-staging.web.app")
		router.ServeHTTP(w, req)

		assert.Equal(t, "https://myskyn-staging.web.app", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("rejects unknown origin", func(t *testing.T) {
		router := newCORSRouter([]string{"http://localhost:5173"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("handles preflight requests", func(t *testing.T) {
		router := newCORSRouter([]string{"http://localhost:5173"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("OPTIONS", "/ping", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		name    string
		origin  string
		allowed []string
		want    bool
	}{
		{"exact match", "http://localhost:5173", []string{"http://localhost:5173"}, true},
		{"no match", "http://localhost:3000", []string{"http://localhost:5173"}, false},
		{"wildcard match", "https://app-abc.web.app", []string{"https://app-*"}, true},
		{"wildcard non-match", "https://other.web.app", []string{"https://app-*"}, false},
		{"empty origin", "", []string{"http://localhost:5173"}, false},
		{"empty list", "http://localhost:5173", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAllowedOrigin(tt.origin, tt.allowed))
		})
	}
}
