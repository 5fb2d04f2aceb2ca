package dto

import (
	"anoa.com/wodtracker/internal/entity"
	progressionDto "anoa.com/wodtracker/internal/modules/progression/dto"
)

type DashboardQuery struct {
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100"`
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
}

type MonthlyTotals struct {
	TotalCalories int `json:"total_calories"`
	WorkoutCount  int `json:"workout_count"`
}

type DayBucket struct {
	Date     string `json:"date"`
	Label    string `json:"label"`
	Calories int    `json:"calories"`
}

type NutritionSummary struct {
	Consumed int     `json:"consumed"`
	Burned   int     `json:"burned"`
	Goal     int     `json:"goal"`
	Net      int     `json:"net"`
	Percent  float64 `json:"percent"`
	Status   string  `json:"status"`
	Severity string  `json:"severity"`
}

type CalendarCell struct {
	Day *int               `json:"day"`
	Log *entity.WorkoutLog `json:"log,omitempty"`
}

type DashboardResponse struct {
	Year      int                             `json:"year"`
	Month     int                             `json:"month"`
	Progress  progressionDto.ProgressResponse `json:"progress"`
	Monthly   MonthlyTotals                   `json:"monthly"`
	Last7Days []DayBucket                     `json:"last_7_days"`
	Today     NutritionSummary                `json:"today"`
	Calendar  []CalendarCell                  `json:"calendar"`
	Recent    []entity.WorkoutLog             `json:"recent"`
}
