package dto

import (
	"anoa.com/wodtracker/internal/entity"
	progressionDto "anoa.com/wodtracker/internal/modules/progression/dto"
)

// UpdateProfileInput is bound from JSON or from the multipart form that carries the avatar.
// Nil fields are left untouched.
type UpdateProfileInput struct {
	Name          *string  `json:"name" form:"name" binding:"omitempty,min=1,max=100"`
	Age           *int     `json:"age" form:"age" binding:"omitempty,min=10,max=100"`
	Weight        *float64 `json:"weight" form:"weight" binding:"omitempty,gt=20,lte=400"`
	Height        *float64 `json:"height" form:"height" binding:"omitempty,gt=80,lte=260"`
	Gender        *string  `json:"gender" form:"gender" binding:"omitempty,oneof=male female other"`
	Language      *string  `json:"language" form:"language" binding:"omitempty,oneof=es en"`
	Country       *string  `json:"country" form:"country" binding:"omitempty,max=60"`
	Timezone      *string  `json:"timezone" form:"timezone" binding:"omitempty,max=60"`
	Equipment     []string `json:"equipment" form:"equipment" binding:"omitempty,max=30,dive,min=1,max=60"`
	NutritionGoal *string  `json:"nutrition_goal" form:"nutrition_goal" binding:"omitempty,oneof=lose_weight gain_muscle maintain performance"`
}

// ProfileResponse is returned for the current user and after an update.
type ProfileResponse struct {
	User     *entity.User                    `json:"user"`
	Profile  *entity.Profile                 `json:"profile"`
	Progress progressionDto.ProgressResponse `json:"progress"`
}
