package handler

import (
	"net/http"
	"strings"

	"anoa.com/wodtracker/internal/modules/nutrition/dto"
	nutrition "anoa.com/wodtracker/internal/modules/nutrition/service"
	"anoa.com/wodtracker/pkg/apperror"
	commonDto "anoa.com/wodtracker/pkg/dto"
	"anoa.com/wodtracker/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NutritionHandler struct {
	service nutrition.NutritionService
}

func NewNutritionHandler(service nutrition.NutritionService) *NutritionHandler {
	return &NutritionHandler{service: service}
}

// AnalyzeFood takes a multipart "photo" (or "file") or a JSON description.
func (h *NutritionHandler) AnalyzeFood(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.AnalyzeFoodInput
	var photo *commonDto.UploadFile

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&input); err != nil {
			response.ValidationError(c, err)
			return
		}
		fileHeader, err := c.FormFile("photo")
		if err != nil {
			fileHeader, err = c.FormFile("file")
		}
		if err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
				return
			}
			defer file.Close()

			photo = &commonDto.UploadFile{
				Reader:   file,
				FileName: fileHeader.Filename,
				MIMEType: fileHeader.Header.Get("Content-Type"),
				Size:     fileHeader.Size,
			}
		}
	} else if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	analysis, err := h.service.AnalyzeFood(c.Request.Context(), userID, photo, input.Description)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *NutritionHandler) LogMeal(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	meal, err := h.service.LogMeal(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meal)
}

func (h *NutritionHandler) ListMeals(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.ListMealsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err)
		return
	}

	meals, err := h.service.ListMeals(c.Request.Context(), userID, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": meals})
}

func (h *NutritionHandler) DeleteMeal(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.Invalid("invalid meal id"))
		return
	}

	if err := h.service.DeleteMeal(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

func (h *NutritionHandler) GenerateDietPlan(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.DietPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	plan, err := h.service.GenerateDietPlan(c.Request.Context(), userID, input.Goal)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *NutritionHandler) GetDietPlan(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	plan, err := h.service.GetDietPlan(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *NutritionHandler) AddWeight(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.AddWeightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	log, err := h.service.AddWeight(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

func (h *NutritionHandler) WeightHistory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	history, err := h.service.WeightHistory(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
