package dto

import (
	"time"

	"anoa.com/wodtracker/internal/entity"
)

type AnalyzeFoodInput struct {
	Description string `json:"description" form:"description" binding:"omitempty,max=2000"`
}

type MacrosInput struct {
	Protein float64 `json:"protein" binding:"min=0"`
	Carbs   float64 `json:"carbs" binding:"min=0"`
	Fat     float64 `json:"fat" binding:"min=0"`
}

type CreateMealInput struct {
	Date        *time.Time  `json:"date"`
	MealType    string      `json:"meal_type" binding:"required,oneof=breakfast lunch dinner snack"`
	Description string      `json:"description" binding:"omitempty,max=2000"`
	FoodItems   []string    `json:"food_items" binding:"omitempty,max=50,dive,max=200"`
	Calories    int         `json:"calories" binding:"min=0"`
	Macros      MacrosInput `json:"macros"`
	Tips        string      `json:"tips" binding:"omitempty,max=2000"`
	ImageURL    *string     `json:"image_url" binding:"omitempty,url"`
}

// ListMealsQuery selects one local calendar day (date) or a range of days.
type ListMealsQuery struct {
	Date  string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	From  string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

type DietPlanInput struct {
	Goal string `json:"goal" binding:"required,oneof=lose_weight gain_muscle maintain performance"`
}

type AddWeightInput struct {
	Weight float64    `json:"weight" binding:"required,gt=20,lte=400"`
	Date   *time.Time `json:"date"`
}

type WeightHistoryResponse struct {
	Entries []entity.WeightLog `json:"entries"`
	Latest  *float64           `json:"latest"`
	// Change is latest minus the first recorded weight.
	Change float64            `json:"change"`
	Trend  string             `json:"trend"`
}
