package service

import (
	"errors"
	"math"
	"time"

	"anoa.com/wodtracker/internal/entity"
)

const (
	BaseWorkoutXP  = 100
	DecayGraceDays = 3
	DecayXPPerDay  = 20

	day = 24 * time.Hour
)

var ErrNegativeAward = errors.New("xp award must not be negative")

// DecayResult describes what ApplyDecay charged. XPLost can be smaller than Penalty
// because XP never drops below zero.
type DecayResult struct {
	Applied       bool
	DaysInactive  int
	DaysPenalized int
	Penalty       int
	XPLost        int
}

// AwardWorkout adds base+bonus XP for one completed workout and restarts both decay clocks.
func AwardWorkout(p entity.UserProgress, baseXP, bonusXP int, now time.Time) (entity.UserProgress, error) {
	if baseXP < 0 || bonusXP < 0 {
		return p, ErrNegativeAward
	}

	p.XP += baseXP + bonusXP
	setLevel(&p)

	active := now
	penalty := now
	p.LastActiveDate = &active
	p.LastPenaltyDate = &penalty

	return p, nil
}

// ApplyDecay charges DecayXPPerDay for every full day since the last penalty (or the last
// activity when none was charged yet), once the grace window has passed. Calling it again
// with the same now is a no-op.
func ApplyDecay(p entity.UserProgress, now time.Time) (entity.UserProgress, DecayResult) {
	var res DecayResult
	if p.LastActiveDate == nil || p.XP == 0 {
		return p, res
	}

	res.DaysInactive = int(math.Ceil(now.Sub(*p.LastActiveDate).Hours() / 24))
	if res.DaysInactive <= DecayGraceDays {
		return p, res
	}

	anchor := *p.LastActiveDate
	if p.LastPenaltyDate != nil {
		anchor = *p.LastPenaltyDate
	}

	days := int(now.Sub(anchor) / day)
	if days <= 0 {
		return p, res
	}

	penalty := days * DecayXPPerDay
	newXP := p.XP - penalty
	if newXP < 0 {
		newXP = 0
	}
	if newXP == p.XP {
		return p, res
	}

	res.Applied = true
	res.DaysPenalized = days
	res.Penalty = penalty
	res.XPLost = p.XP - newXP

	p.XP = newXP
	setLevel(&p)
	charged := now
	p.LastPenaltyDate = &charged

	return p, res
}

// ResetProgress zeroes the XP of p and clears both watermarks.
func ResetProgress(p entity.UserProgress) entity.UserProgress {
	p.XP = 0
	setLevel(&p)
	p.LastActiveDate = nil
	p.LastPenaltyDate = nil
	return p
}

func setLevel(p *entity.UserProgress) {
	tier, progress := LevelFor(p.XP)
	p.Tier = string(tier)
	p.TierProgress = progress
}
