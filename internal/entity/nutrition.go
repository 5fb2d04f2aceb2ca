package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

type Macros struct {
	Protein float64 `gorm:"not null;default:0" json:"protein"`
	Carbs   float64 `gorm:"not null;default:0" json:"carbs"`
	Fat     float64 `gorm:"not null;default:0" json:"fat"`
}

type NutritionLog struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                   `gorm:"type:uuid;index:idx_meal_user_date,priority:1;not null" json:"user_id"`
	Date        time.Time                   `gorm:"index:idx_meal_user_date,priority:2;not null" json:"date"`
	MealType    string                      `gorm:"size:20;not null" json:"meal_type"`
	Description string                      `gorm:"type:text" json:"description,omitempty"`
	ImageURL    *string                     `gorm:"type:text" json:"image_url,omitempty"`
	FoodItems   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"food_items"`
	Calories    int                         `gorm:"not null;default:0;check:calories >= 0" json:"calories"`
	Macros      Macros                      `gorm:"embedded;embeddedPrefix:macro_" json:"macros"`
	Tips        string                      `gorm:"type:text" json:"tips,omitempty"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"created_at"`
}

func (n *NutritionLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

type WeightLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_weight_user_date,priority:1;not null" json:"user_id"`
	Date      time.Time `gorm:"index:idx_weight_user_date,priority:2;not null" json:"date"`
	Weight    float64   `gorm:"not null" json:"weight"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (w *WeightLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

const (
	GoalLoseWeight  = "lose_weight"
	GoalGainMuscle  = "gain_muscle"
	GoalMaintain    = "maintain"
	GoalPerformance = "performance"
)

type PlannedMeal struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
}

type DietPlan struct {
	Goal          string        `json:"goal"`
	DailyCalories int           `json:"daily_calories"`
	Macros        Macros        `json:"macros"`
	Meals         []PlannedMeal `json:"meals"`
	CreatedAt     time.Time     `json:"created_at"`
}
