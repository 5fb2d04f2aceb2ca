package handler

import (
	"net/http"
	"time"

	"anoa.com/wodtracker/internal/modules/progression/dto"
	progression "anoa.com/wodtracker/internal/modules/progression/service"
	"anoa.com/wodtracker/pkg/apperror"
	"anoa.com/wodtracker/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProgressionHandler struct {
	service progression.ProgressionService
	now     func() time.Time
}

func NewProgressionHandler(service progression.ProgressionService) *ProgressionHandler {
	return &ProgressionHandler{service: service, now: time.Now}
}

func (h *ProgressionHandler) GetProgress(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	progress, err := h.service.GetProgress(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// StartSession is called by the client once when a session opens; it is where inactivity decay runs.
func (h *ProgressionHandler) StartSession(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	session, err := h.service.StartSession(c.Request.Context(), userID, h.now())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *ProgressionHandler) GetHistory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.Invalid("limit must be between 1 and 200"))
		return
	}

	events, err := h.service.History(c.Request.Context(), userID, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": events})
}

func (h *ProgressionHandler) Reset(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	progress, err := h.service.Reset(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "progress reset", "progress": progress})
}
