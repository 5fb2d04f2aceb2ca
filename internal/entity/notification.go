package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationXPDecay            = "xp_decay"
	NotificationTierUp             = "tier_up"
	NotificationInactivityReminder = "inactivity_reminder"
	NotificationWorkoutLogged      = "workout_logged"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string     `gorm:"type:varchar(50);not null" json:"type"`
	Title     string     `gorm:"type:varchar(150)" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	Amount    int        `gorm:"not null;default:0" json:"amount,omitempty"`
	EntityID  *uuid.UUID `gorm:"type:uuid" json:"entity_id,omitempty"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
