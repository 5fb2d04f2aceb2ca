package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"anoa.com/wodtracker/internal/entity"
)

const DocumentVersion = 1

// FlexTime reads RFC 3339 timestamps as well as bare YYYY-MM-DD dates. A bare date is
// pinned to 12:00 UTC so it lands on the same calendar day in every European and
// American timezone.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	t.Time = parsed.Add(12 * time.Hour)
	return nil
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func NewFlexTime(t *time.Time) *FlexTime {
	if t == nil {
		return nil
	}
	return &FlexTime{Time: *t}
}

// Ptr returns nil for a missing or zero time.
func (t *FlexTime) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// Document is the portable copy of an account. Fields prefixed Legacy carry the camelCase
// spelling of exports made by the first version of the app and are folded into their
// canonical fields on import.
type Document struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Profile    *ProfileEntry  `json:"profile,omitempty"`
	Progress   *ProgressEntry `json:"progress,omitempty"`
	Workouts   []WorkoutEntry `json:"workouts"`
	Meals      []MealEntry    `json:"meals"`
	Weights    []WeightEntry  `json:"weights"`

	LegacyWorkouts []WorkoutEntry `json:"workoutLogs,omitempty"`
	LegacyMeals    []MealEntry    `json:"nutritionLogs,omitempty"`
}

type ProfileEntry struct {
	Name          string           `json:"name"`
	Age           int              `json:"age"`
	Weight        float64          `json:"weight"`
	Height        float64          `json:"height"`
	Gender        string           `json:"gender"`
	Language      string           `json:"language"`
	Country       string           `json:"country"`
	Timezone      string           `json:"timezone,omitempty"`
	Equipment     []string         `json:"equipment"`
	NutritionGoal string           `json:"nutrition_goal,omitempty"`
	DietPlan      *entity.DietPlan `json:"diet_plan,omitempty"`

	LegacyNutritionGoal   string        `json:"nutritionGoal,omitempty"`
	LegacyXP              int           `json:"xp,omitempty"`
	LegacyLastActiveDate  *FlexTime     `json:"lastActiveDate,omitempty"`
	LegacyLastPenaltyDate *FlexTime     `json:"lastPenaltyDate,omitempty"`
	LegacyWeightHistory   []WeightEntry `json:"weightHistory,omitempty"`
}

type ProgressEntry struct {
	XP              int       `json:"xp"`
	Tier            string    `json:"tier,omitempty"`
	LastActiveDate  *FlexTime `json:"last_active_date,omitempty"`
	LastPenaltyDate *FlexTime `json:"last_penalty_date,omitempty"`
}

type WorkoutEntry struct {
	ID              string            `json:"id,omitempty"`
	Date            FlexTime          `json:"date"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Calories        int               `json:"calories"`
	DurationMinutes int               `json:"duration_minutes"`
	Type            string            `json:"type"`
	Exercises       []entity.Exercise `json:"exercises"`
	XPEarned        *int              `json:"xp_earned,omitempty"`
	Feedback        string            `json:"feedback,omitempty"`

	LegacyDurationMinutes int  `json:"durationMinutes,omitempty"`
	LegacyXPEarned        *int `json:"xpEarned,omitempty"`
}

type MealEntry struct {
	ID          string        `json:"id,omitempty"`
	Date        FlexTime      `json:"date"`
	MealType    string        `json:"meal_type"`
	Description string        `json:"description,omitempty"`
	ImageURL    *string       `json:"image_url,omitempty"`
	FoodItems   []string      `json:"food_items"`
	Calories    int           `json:"calories"`
	Macros      entity.Macros `json:"macros"`
	Tips        string        `json:"tips,omitempty"`

	LegacyMealType  string   `json:"mealType,omitempty"`
	LegacyImageURL  *string  `json:"imageUrl,omitempty"`
	LegacyFoodItems []string `json:"foodItems,omitempty"`
}

type WeightEntry struct {
	ID     string   `json:"id,omitempty"`
	Date   FlexTime `json:"date"`
	Weight float64  `json:"weight"`
}

type ImportCounts struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Invalid  int `json:"invalid"`
}

type ImportResult struct {
	Workouts         ImportCounts `json:"workouts"`
	Meals            ImportCounts `json:"meals"`
	Weights          ImportCounts `json:"weights"`
	ProfileUpdated   bool         `json:"profile_updated"`
	ProgressRestored bool         `json:"progress_restored"`
}
