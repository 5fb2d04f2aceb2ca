package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		xp       int
		tier     Tier
		progress float64
	}{
		{0, TierPrincipiante, 0},
		{500, TierPrincipiante, 50},
		{999, TierPrincipiante, 99.9},
		{1000, TierIntermedio, 0},
		{2000, TierIntermedio, 50},
		{3000, TierAvanzado, 0},
		{4000, TierAvanzado, 25},
		{7000, TierExperto, 0},
		{14999, TierExperto, 99.99},
		{15000, TierMaster, 100},
		{20000, TierMaster, 100},
		{-50, TierPrincipiante, 0},
	}

	for _, tt := range tests {
		tier, progress := LevelFor(tt.xp)
		assert.Equal(t, tt.tier, tier, "xp=%d", tt.xp)
		assert.InDelta(t, tt.progress, progress, 0.001, "xp=%d", tt.xp)
	}
}

func TestLevelFor_MonotonicAndBounded(t *testing.T) {
	prevRank := -1
	for xp := 0; xp <= 25000; xp += 7 {
		tier, progress := LevelFor(xp)

		assert.GreaterOrEqual(t, tier.Rank(), prevRank, "tier went down at xp=%d", xp)
		assert.GreaterOrEqual(t, progress, 0.0)
		assert.LessOrEqual(t, progress, 100.0)
		prevRank = tier.Rank()
	}
}

func TestTier_Next(t *testing.T) {
	next, ok := TierAvanzado.Next()
	assert.True(t, ok)
	assert.Equal(t, TierExperto, next)

	_, ok = TierMaster.Next()
	assert.False(t, ok)

	_, ok = Tier("legend").Next()
	assert.False(t, ok)
}

func TestXPToNext(t *testing.T) {
	assert.Equal(t, 1000, XPToNext(0))
	assert.Equal(t, 3000, XPToNext(4000))
	assert.Equal(t, 0, XPToNext(15000))
}
