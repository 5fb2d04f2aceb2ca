package handler

import (
	"net/http"

	"anoa.com/wodtracker/internal/modules/movement/dto"
	movement "anoa.com/wodtracker/internal/modules/movement/service"
	"anoa.com/wodtracker/pkg/apperror"
	"anoa.com/wodtracker/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MovementHandler struct {
	service movement.MovementService
}

func NewMovementHandler(service movement.MovementService) *MovementHandler {
	return &MovementHandler{service: service}
}

func (h *MovementHandler) List(c *gin.Context) {
	var query dto.ListMovementsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err)
		return
	}

	movements, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": movements})
}

func (h *MovementHandler) Get(c *gin.Context) {
	m, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

func (h *MovementHandler) Create(c *gin.Context) {
	var input dto.CreateMovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	m, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

func (h *MovementHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.Invalid("invalid movement id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "movement deleted"})
}
