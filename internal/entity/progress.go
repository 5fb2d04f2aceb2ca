package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress is the single progression record per user. Tier and TierProgress are
// derived from XP and only ever written together with it.
type UserProgress struct {
	UserID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	XP              int        `gorm:"not null;default:0" json:"xp"`
	Tier            string     `gorm:"size:20;not null;default:principiante" json:"tier"`
	TierProgress    float64    `gorm:"not null;default:0" json:"tier_progress"`
	LastActiveDate  *time.Time `json:"last_active_date"`
	LastPenaltyDate *time.Time `json:"last_penalty_date"`
	Version         int64      `gorm:"not null;default:0" json:"-"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProgress) TableName() string { return "user_progress" }

const (
	XPEventWorkoutAward    = "workout_award"
	XPEventInactivityDecay = "inactivity_decay"
	XPEventReset           = "reset"
	XPEventImport          = "import"
)

// XPEvent is one append-only entry of the XP ledger.
type XPEvent struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index:idx_xp_user_date,priority:1;not null" json:"user_id"`
	Kind        string     `gorm:"size:30;not null" json:"kind"`
	Delta       int        `gorm:"not null" json:"delta"`
	BaseXP      int        `gorm:"not null;default:0" json:"base_xp"`
	BonusXP     int        `gorm:"not null;default:0" json:"bonus_xp"`
	XPAfter     int        `gorm:"not null" json:"xp_after"`
	TierAfter   string     `gorm:"size:20;not null" json:"tier_after"`
	WorkoutID   *uuid.UUID `gorm:"type:uuid" json:"workout_id,omitempty"`
	DaysCharged int        `gorm:"not null;default:0" json:"days_charged,omitempty"`
	CreatedAt   time.Time  `gorm:"index:idx_xp_user_date,priority:2" json:"created_at"`
}

func (XPEvent) TableName() string { return "xp_events" }
