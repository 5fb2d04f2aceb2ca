package dto

import (
	"time"

	"anoa.com/wodtracker/internal/entity"
	progressionDto "anoa.com/wodtracker/internal/modules/progression/dto"
	commonDto "anoa.com/wodtracker/pkg/dto"
)

type AnalyzeWodInput struct {
	Text string `json:"text" form:"text" binding:"omitempty,max=4000"`
}

type GenerateHomeWorkoutInput struct {
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=principiante intermedio avanzado experto master"`
}

type ExerciseInput struct {
	Name            string `json:"name" binding:"required,max=120"`
	Reps            string `json:"reps" binding:"omitempty,max=60"`
	Weight          string `json:"weight" binding:"omitempty,max=60"`
	Notes           string `json:"notes" binding:"omitempty,max=500"`
	Instruction     string `json:"instruction" binding:"omitempty,max=500"`
	DurationSeconds int    `json:"duration_seconds" binding:"omitempty,min=0"`
}

type CreateWorkoutInput struct {
	Date            *time.Time      `json:"date"`
	Name            string          `json:"name" binding:"required,max=200"`
	Description     string          `json:"description" binding:"omitempty,max=4000"`
	Calories        int             `json:"calories"`
	DurationMinutes int             `json:"duration_minutes"`
	Type            string          `json:"type" binding:"omitempty,oneof=image-scan manual home-ai"`
	Exercises       []ExerciseInput `json:"exercises" binding:"omitempty,max=60,dive"`
}

type ListWorkoutsQuery struct {
	commonDto.PaginationQuery
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

type AwardSummary struct {
	BaseXP   int                             `json:"base_xp"`
	BonusXP  int                             `json:"bonus_xp"`
	Earned   int                             `json:"earned"`
	TierUp   bool                            `json:"tier_up"`
	Progress progressionDto.ProgressResponse `json:"progress"`
}

type LogWorkoutResponse struct {
	Workout  *entity.WorkoutLog `json:"workout"`
	Award    *AwardSummary      `json:"award,omitempty"`
	Feedback string             `json:"feedback"`
	// Replayed is set when the idempotency key matched a stored workout.
	Replayed bool               `json:"replayed"`
}

type PaginatedWorkoutResponse struct {
	Data []entity.WorkoutLog      `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
