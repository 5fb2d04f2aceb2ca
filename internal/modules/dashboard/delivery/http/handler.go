package handler

import (
	"net/http"

	"anoa.com/wodtracker/internal/modules/dashboard/dto"
	dashboard "anoa.com/wodtracker/internal/modules/dashboard/service"
	"anoa.com/wodtracker/pkg/response"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service dashboard.DashboardService
}

func NewDashboardHandler(service dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.DashboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.GetDashboard(c.Request.Context(), userID, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
