package service

import "math"

type Tier string

// Tiers ordered by XP floor. A tier starts at its floor (inclusive).
const (
	TierPrincipiante Tier = "principiante"
	TierIntermedio   Tier = "intermedio"
	TierAvanzado     Tier = "avanzado"
	TierExperto      Tier = "experto"
	TierMaster       Tier = "master"
)

type level struct {
	tier  Tier
	floor int
}

var levelTable = []level{
	{TierPrincipiante, 0},
	{TierIntermedio, 1000},
	{TierAvanzado, 3000},
	{TierExperto, 7000},
	{TierMaster, 15000},
}

// LevelFor resolves the tier for xp and the percentage travelled towards the next one.
// Negative xp is treated as zero. The terminal tier always reports 100.
func LevelFor(xp int) (Tier, float64) {
	if xp < 0 {
		xp = 0
	}

	for i := len(levelTable) - 1; i >= 0; i-- {
		current := levelTable[i]
		if xp < current.floor {
			continue
		}
		if i == len(levelTable)-1 {
			return current.tier, 100
		}

		next := levelTable[i+1]
		progress := float64(xp-current.floor) / float64(next.floor-current.floor) * 100
		return current.tier, math.Round(progress*100) / 100
	}

	return TierPrincipiante, 0
}

// Rank is the position of the tier in the level table, -1 for unknown values.
func (t Tier) Rank() int {
	for i, l := range levelTable {
		if l.tier == t {
			return i
		}
	}
	return -1
}

func (t Tier) Floor() int {
	if r := t.Rank(); r >= 0 {
		return levelTable[r].floor
	}
	return 0
}

// Next returns the tier after t, or false when t is terminal.
func (t Tier) Next() (Tier, bool) {
	r := t.Rank()
	if r < 0 || r == len(levelTable)-1 {
		return "", false
	}
	return levelTable[r+1].tier, true
}

// XPToNext is how much XP is still missing to leave the tier xp resolves to.
func XPToNext(xp int) int {
	tier, _ := LevelFor(xp)
	next, ok := tier.Next()
	if !ok {
		return 0
	}
	return next.Floor() - xp
}
