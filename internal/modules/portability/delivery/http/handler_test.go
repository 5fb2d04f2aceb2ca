package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"anoa.com/wodtracker/internal/modules/portability/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	imported *dto.Document
}

func (s *stubService) Export(context.Context, uuid.UUID) (*dto.Document, error) {
	return &dto.Document{Version: dto.DocumentVersion, ExportedAt: time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC)}, nil
}

func (s *stubService) Import(_ context.Context, _ uuid.UUID, doc *dto.Document) (*dto.ImportResult, error) {
	s.imported = doc
	return &dto.ImportResult{Workouts: dto.ImportCounts{Imported: len(doc.Workouts) + len(doc.LegacyWorkouts)}}, nil
}

func newRouter(h *PortabilityHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
		c.Next()
	})
	r.GET("/api/export", h.Export)
	r.POST("/api/import", h.Import)
	return r
}

func TestExport_SetsAttachmentName(t *testing.T) {
	r := newRouter(NewPortabilityHandler(&stubService{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="wodtracker-export-2024-03-20.json"`, w.Header().Get("Content-Disposition"))
}

func TestImport_JSONBody(t *testing.T) {
	svc := &stubService{}
	r := newRouter(NewPortabilityHandler(svc))

	body := `{"workouts":[{"date":"2024-03-19","name":"Fran"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.imported)
	assert.Equal(t, "Fran", svc.imported.Workouts[0].Name)
}

func TestImport_MultipartFile(t *testing.T) {
	svc := &stubService{}
	r := newRouter(NewPortabilityHandler(svc))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "backup.json")
	require.NoError(t, err)
	_, _ = part.Write([]byte(`{"workoutLogs":[{"date":"2024-03-19","name":"Cindy","durationMinutes":20}]}`))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.imported)
	assert.Equal(t, 20, svc.imported.LegacyWorkouts[0].LegacyDurationMinutes)
}

func TestImport_BadDate(t *testing.T) {
	r := newRouter(NewPortabilityHandler(&stubService{}))

	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(`{"workouts":[{"date":"ayer","name":"Fran"}]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
