package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	WorkoutTypeImageScan = "image-scan"
	WorkoutTypeManual    = "manual"
	WorkoutTypeHomeAI    = "home-ai"
)

type Exercise struct {
	Name            string `json:"name"`
	Reps            string `json:"reps,omitempty"`
	Weight          string `json:"weight,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Instruction     string `json:"instruction,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

type WorkoutLog struct {
	ID              uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                     `gorm:"type:uuid;index:idx_workout_user_date,priority:1;not null" json:"user_id"`
	Date            time.Time                     `gorm:"index:idx_workout_user_date,priority:2;not null" json:"date"`
	Name            string                        `gorm:"size:200;not null" json:"name"`
	Description     string                        `gorm:"type:text" json:"description"`
	Calories        int                           `gorm:"not null;default:0;check:calories >= 0" json:"calories"`
	DurationMinutes int                           `gorm:"not null;default:0;check:duration_minutes >= 0" json:"duration_minutes"`
	Type            string                        `gorm:"size:20;not null;default:manual" json:"type"`
	Exercises       datatypes.JSONSlice[Exercise] `gorm:"type:jsonb" json:"exercises"`
	XPEarned        *int                          `json:"xp_earned,omitempty"`
	Feedback        string                        `gorm:"type:text" json:"feedback,omitempty"`
	ClientRef       *string                       `gorm:"size:100;uniqueIndex" json:"-"`
	CreatedAt       time.Time                     `gorm:"autoCreateTime" json:"created_at"`
}

func (w *WorkoutLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
