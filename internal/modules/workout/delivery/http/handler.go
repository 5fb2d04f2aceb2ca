package handler

import (
	"net/http"
	"strings"

	"anoa.com/wodtracker/internal/modules/workout/dto"
	workout "anoa.com/wodtracker/internal/modules/workout/service"
	"anoa.com/wodtracker/pkg/apperror"
	commonDto "anoa.com/wodtracker/pkg/dto"
	"anoa.com/wodtracker/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdempotencyHeader lets a client retry POST /api/workouts without a second award.
const IdempotencyHeader = "Idempotency-Key"

type WorkoutHandler struct {
	service workout.WorkoutService
}

func NewWorkoutHandler(service workout.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

// AnalyzeWod accepts a whiteboard photo as multipart "file" or the WOD as text.
func (h *WorkoutHandler) AnalyzeWod(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.AnalyzeWodInput
	var image *commonDto.UploadFile

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&input); err != nil {
			response.ValidationError(c, err)
			return
		}
		if fileHeader, err := c.FormFile("file"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
				return
			}
			defer file.Close()

			image = &commonDto.UploadFile{
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

	analysis, err := h.service.AnalyzeWod(c.Request.Context(), userID, input.Text, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

func (h *WorkoutHandler) GenerateHomeWorkout(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.GenerateHomeWorkoutInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.ValidationError(c, err)
			return
		}
	}

	plan, err := h.service.GenerateHomeWorkout(c.Request.Context(), userID, input.Difficulty)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateWorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.service.LogWorkout(c.Request.Context(), userID, input, c.GetHeader(IdempotencyHeader))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, res)
}

func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.ListWorkoutsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.service.ListWorkouts(c.Request.Context(), userID, query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.Invalid("invalid workout id"))
		return
	}

	log, err := h.service.GetWorkout(c.Request.Context(), userID, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.Invalid("invalid workout id"))
		return
	}

	if err := h.service.DeleteWorkout(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "workout deleted"})
}
