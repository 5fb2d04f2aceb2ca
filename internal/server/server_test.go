package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/wodtracker/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv, err := NewServer(Deps{Config: &config.Config{
		AppEnv:            "development",
		Port:              "0",
		AllowedOrigins:    []string{"http://localhost:3000"},
		JWTSecret:         "test-secret",
		JWTTTL:            time.Hour,
		AITimeout:         time.Second,
		Timezone:          time.UTC,
		ReminderSchedule:  "0 18 * * *",
		RateLimitAIPerMin: 10,
	}})
	require.NoError(t, err)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/progress", "/api/dashboard", "/api/workouts", "/api/export", "/api/movements"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCORSPreflightAllowsIdempotencyKey(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/workouts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
