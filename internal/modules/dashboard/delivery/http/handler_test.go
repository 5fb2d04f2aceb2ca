package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"anoa.com/wodtracker/internal/modules/dashboard/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	query dto.DashboardQuery
}

func (s *stubService) GetDashboard(_ context.Context, _ uuid.UUID, query dto.DashboardQuery) (*dto.DashboardResponse, error) {
	s.query = query
	return &dto.DashboardResponse{Year: query.Year, Month: query.Month}, nil
}

func newRouter(h *DashboardHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
		c.Next()
	})
	r.GET("/api/dashboard", h.GetDashboard)
	return r
}

func TestGetDashboard(t *testing.T) {
	svc := &stubService{}
	r := newRouter(NewDashboardHandler(svc))

	tests := []struct {
		name string
		url  string
		code int
	}{
		{"current month", "/api/dashboard", http.StatusOK},
		{"explicit month", "/api/dashboard?year=2024&month=5", http.StatusOK},
		{"month out of range", "/api/dashboard?month=13", http.StatusBadRequest},
		{"year out of range", "/api/dashboard?year=1999", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.code, w.Code)
		})
	}

	assert.Equal(t, 2024, svc.query.Year)
	assert.Equal(t, 5, svc.query.Month)
}
