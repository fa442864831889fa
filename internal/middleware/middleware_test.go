package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type staticResolver map[string]string

func (s staticResolver) ResolveToken(_ context.Context, token string) (string, error) {
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return "", errors.New("unknown token")
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(resolver TokenResolver) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(resolver))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("uid"))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	resolver := ResolverChain{
		staticResolver{"cached": "user-1"},
		staticResolver{"firebase": "user-2"},
	}
	router := newAuthRouter(resolver)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "must start with 'Bearer '"},
		{"empty token", "Bearer  ", http.StatusUnauthorized, "Token is required"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
		{"first resolver", "Bearer cached", http.StatusOK, "user-1"},
		{"fallback resolver", "Bearer firebase", http.StatusOK, "user-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestResolverChainSkipsNil(t *testing.T) {
	chain := ResolverChain{nil, staticResolver{"t": "u"}}

	uid, err := chain.ResolveToken(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "u", uid)

	_, err = ResolverChain{}.ResolveToken(context.Background(), "t")
	assert.Error(t, err)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "rid-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "rid-42", w.Header().Get("X-Request-ID"))
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://admin.example.com"))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/x", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLoggingAndRecovery(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLoggingMiddleware(logger), RecoveryMiddleware(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("request completed").Len())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	assert.Equal(t, 1, logs.FilterMessage("request completed with server error").Len())
}
