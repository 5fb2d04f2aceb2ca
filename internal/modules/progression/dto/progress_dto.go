package dto

import "time"

type ProgressResponse struct {
	XP              int        `json:"xp"`
	Tier            string     `json:"tier"`
	TierProgress    float64    `json:"tier_progress"`
	NextTier        *string    `json:"next_tier"`
	XPToNextTier    int        `json:"xp_to_next_tier"`
	LastActiveDate  *time.Time `json:"last_active_date"`
	LastPenaltyDate *time.Time `json:"last_penalty_date"`
}

type DecayResponse struct {
	DaysInactive  int `json:"days_inactive"`
	DaysPenalized int `json:"days_penalized"`
	Penalty       int `json:"penalty"`
	XPLost        int `json:"xp_lost"`
}

type SessionResponse struct {
	Progress ProgressResponse `json:"progress"`
	Decay    *DecayResponse   `json:"decay,omitempty"`
}

type XPEventResponse struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	Delta       int       `json:"delta"`
	BaseXP      int       `json:"base_xp"`
	BonusXP     int       `json:"bonus_xp"`
	XPAfter     int       `json:"xp_after"`
	TierAfter   string    `json:"tier_after"`
	WorkoutID   *string   `json:"workout_id,omitempty"`
	DaysCharged int       `json:"days_charged,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}
