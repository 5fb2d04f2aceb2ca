package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/movement/dto"
	movement "anoa.com/wodtracker/internal/modules/movement/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	movement.MovementService
	query   dto.ListMovementsQuery
	created *dto.CreateMovementInput
}

func (s *stubService) List(_ context.Context, query dto.ListMovementsQuery) ([]entity.Movement, error) {
	s.query = query
	return []entity.Movement{{Name: "Air Squat"}}, nil
}

func (s *stubService) Create(_ context.Context, input dto.CreateMovementInput) (*entity.Movement, error) {
	s.created = &input
	return &entity.Movement{Name: input.Name}, nil
}

func newRouter(h *MovementHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/movements", h.List)
	r.POST("/api/movements", h.Create)
	r.DELETE("/api/movements/:id", h.Delete)
	return r
}

func TestList_BindsQuery(t *testing.T) {
	svc := &stubService{}
	r := newRouter(NewMovementHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/movements?search=squat&category="+url.QueryEscape("Básicos"), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "squat", svc.query.Search)
	assert.Equal(t, entity.MovementCategoryBasics, svc.query.Category)
	assert.Contains(t, w.Body.String(), "Air Squat")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/movements?category=Yoga", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_ValidatesCategory(t *testing.T) {
	svc := &stubService{}
	r := newRouter(NewMovementHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/api/movements", strings.NewReader(`{"name":"Farmer Carry","category":"Accesorios"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/movements", strings.NewReader(`{"name":"Farmer Carry","category":"Todos"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete_RejectsBadID(t *testing.T) {
	r := newRouter(NewMovementHandler(&stubService{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/movements/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
