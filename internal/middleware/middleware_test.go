package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/wodtracker/internal/entity"
	userRepo "anoa.com/wodtracker/internal/modules/user/repository"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testRequestRateLimiter struct {
	// key to remaining requests
	Limits map[string]int
	Err    error
	Keys   []string
}

func (l *testRequestRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	l.Keys = append(l.Keys, key)
	if l.Err != nil {
		return nil, l.Err
	}

	res := &redis_rate.Result{Limit: limit, RetryAfter: 1500 * time.Millisecond}
	if l.Limits[key] > 0 {
		res.Allowed = 1
		l.Limits[key]--
	}
	return res, nil
}

type adminRepo struct {
	userRepo.UserRepository
	users map[uuid.UUID]*entity.User
}

func (r *adminRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func init() {
	gin.SetMode(gin.TestMode)
}

func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	}
}

func signedToken(t *testing.T, secret, subject string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestRequireAuth(t *testing.T) {
	m := NewAuthMiddleware(nil, "secret")
	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})

	userID := uuid.New().String()

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"valid header", "Bearer " + signedToken(t, "secret", userID, time.Now().Add(time.Hour)), "", http.StatusOK},
		{"valid query", "", signedToken(t, "secret", userID, time.Now().Add(time.Hour)), http.StatusOK},
		{"expired", "Bearer " + signedToken(t, "secret", userID, time.Now().Add(-time.Hour)), "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signedToken(t, "other", userID, time.Now().Add(time.Hour)), "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/me"
			if tt.query != "" {
				target += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, userID, w.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	adminID, athleteID := uuid.New(), uuid.New()
	repo := &adminRepo{users: map[uuid.UUID]*entity.User{
		adminID:   {ID: adminID, Role: entity.Role{Name: entity.RoleAdmin}},
		athleteID: {ID: athleteID, Role: entity.Role{Name: entity.RoleAthlete}},
	}}
	m := NewAuthMiddleware(repo, "secret")

	for _, tt := range []struct {
		id   uuid.UUID
		want int
	}{
		{adminID, http.StatusOK},
		{athleteID, http.StatusForbidden},
		{uuid.New(), http.StatusUnauthorized},
	} {
		r := gin.New()
		r.GET("/admin", withUser(tt.id), m.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, tt.want, w.Code)
	}
}

func TestRateLimit_PerUserAndAction(t *testing.T) {
	userID := uuid.New()
	key := "rate_limit:user:" + userID.String() + ":analyze"
	limiter := &testRequestRateLimiter{Limits: map[string]int{key: 1}}

	r := gin.New()
	r.POST("/analyze", withUser(userID), RateLimit(limiter, "analyze", 10), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Equal(t, []string{key, key}, limiter.Keys)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &testRequestRateLimiter{Err: errors.New("redis down")}

	r := gin.New()
	r.POST("/analyze", withUser(uuid.New()), RateLimit(limiter, "analyze", 10), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_NilLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/analyze", RateLimit(nil, "analyze", 10), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
