package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

const secret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func newRouter(log *slog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(log), middleware.Logging(log, nil))
	r.GET("/admin", middleware.AuthMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(middleware.ContextUserRole))
	})
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + sign(t, jwt.MapClaims{"role": "admin", "exp": exp}, "other"), http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Minute).Unix()}, secret), http.StatusUnauthorized},
		{"not admin", "Bearer " + sign(t, jwt.MapClaims{"role": "client", "exp": exp}, secret), http.StatusForbidden},
		{"admin", "Bearer " + sign(t, jwt.MapClaims{"role": "admin", "sub": "admin", "exp": exp}, secret), http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRecoveryAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(slog.New(slog.NewTextHandler(&buf, nil)))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(middleware.HeaderRequestID))
	assert.Contains(t, buf.String(), "recovered from panic")
	assert.Contains(t, buf.String(), "request_id=req-123")
}
