package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/fishmaster-api/internal/auth"
	"github.com/BruksfildServices01/fishmaster-api/internal/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": p.UserID, "email": p.Email})
	})

	token, err := tokens.Generate(42, "a@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"email":"a@example.com"}`, w.Body.String())

	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Token abc",
		"garbage":   "Bearer not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := serve(r, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "error_code")
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:5173"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := serve(r, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w = serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoggerMiddleware_LevelByStatus(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.Use(LoggerMiddleware(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	cases := map[string]logrus.Level{"/ok": logrus.InfoLevel, "/bad": logrus.WarnLevel, "/boom": logrus.ErrorLevel}
	for path, level := range cases {
		w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, level, hook.LastEntry().Level, path)
		assert.Equal(t, path, hook.LastEntry().Data["path"])
		assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	}
}

type fakeLimiter struct {
	allowed int
	err     error
	calls   int
}

func (f *fakeLimiter) Allow(_ context.Context, _ string) (ratelimit.Result, error) {
	f.calls++
	if f.err != nil {
		return ratelimit.Result{}, f.err
	}
	if f.calls > f.allowed {
		return ratelimit.Result{Allowed: false, RetryAfter: 1500 * time.Millisecond}, nil
	}
	return ratelimit.Result{Allowed: true, Remaining: f.allowed - f.calls}, nil
}

func TestRateLimit(t *testing.T) {
	log, _ := test.NewNullLogger()
	lim := &fakeLimiter{allowed: 1}
	r := gin.New()
	r.POST("/auth/login", RateLimit(lim, log), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = serve(r, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	log, hook := test.NewNullLogger()
	r := gin.New()
	r.POST("/auth/login", RateLimit(&fakeLimiter{err: errors.New("redis down")}, log), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}
