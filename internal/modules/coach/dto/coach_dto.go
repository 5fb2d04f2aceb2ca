package dto

import "anoa.com/wodtracker/internal/entity"

// Athlete is the slice of the profile the coach is prompted with.
type Athlete struct {
	Name      string
	Age       int
	Weight    float64
	Height    float64
	Gender    string
	Language  string
	Country   string
	Equipment []string
	Tier      string
	XP        int
}

type WodAnalysis struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	DurationMinutes int               `json:"duration_minutes"`
	Calories        int               `json:"calories"`
	Exercises       []entity.Exercise `json:"exercises"`
}

type WorkoutSummary struct {
	Name            string
	Description     string
	DurationMinutes int
	Calories        int
	Exercises       []entity.Exercise
}

type PerformanceEvaluation struct {
	BonusXP        int     `json:"bonus_xp"`
	SuggestedLevel *string `json:"suggested_level,omitempty"`
	Feedback       string  `json:"feedback"`
}

type HomeWorkoutSection struct {
	Name      string            `json:"name"`
	Exercises []entity.Exercise `json:"exercises"`
}

type HomeWorkout struct {
	Title             string               `json:"title"`
	Difficulty        string               `json:"difficulty"`
	EstimatedCalories int                  `json:"estimated_calories"`
	Tips              string               `json:"tips"`
	Sections          []HomeWorkoutSection `json:"sections"`
}

type FoodAnalysis struct {
	FoodItems []string      `json:"food_items"`
	Calories  int           `json:"calories"`
	Macros    entity.Macros `json:"macros"`
	Tips      string        `json:"tips"`
	ImageURL  *string       `json:"image_url,omitempty"`
}

func NewAthlete(profile *entity.Profile, progress *entity.UserProgress) Athlete {
	a := Athlete{Name: "Atleta", Language: entity.LanguageES, Tier: "principiante"}
	if profile != nil {
		a.Name = profile.Name
		a.Age = profile.Age
		a.Weight = profile.Weight
		a.Height = profile.Height
		a.Gender = profile.Gender
		a.Language = profile.Language
		a.Country = profile.Country
		a.Equipment = []string(profile.Equipment)
	}
	if progress != nil {
		a.Tier = progress.Tier
		a.XP = progress.XP
	}
	return a
}
