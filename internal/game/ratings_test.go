package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainingStep(t *testing.T) {
	tests := []struct {
		share float64
		want  int
	}{
		{share: 35, want: 2},
		{share: 25, want: 1},
		{share: 16, want: 0},
		{share: 6, want: 0},
		{share: 5, want: -1},
		{share: 0, want: -1},
		{share: -5, want: -2},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, trainingStep(tc.share, 15), "share=%v", tc.share)
	}
}

func TestEffectiveStats(t *testing.T) {
	base := Stats{Batting: 50, Pitching: 50, Defense: 50}

	// Default split, medium morale, no drill: unchanged.
	got := EffectiveStats(base, DefaultAllocation(), MoraleMedium, nil)
	require.Equal(t, base, got)

	// Zero training plus rock-bottom morale drags everything down.
	got = EffectiveStats(base, Allocation{Marketing: 40, Facilities: 30, Scouting: 20, Medical: 10}, MoraleVeryLow, nil)
	assert.Equal(t, Stats{Batting: 46, Pitching: 46, Defense: 46}, got)

	// An all-stats drill lifts every rating while it runs.
	drill := &ActiveDrill{
		DrillTemplate:  DrillTemplate{Stat: "all", Boost: 1},
		RemainingWeeks: 1,
	}
	got = EffectiveStats(base, DefaultAllocation(), MoraleMedium, drill)
	assert.Equal(t, Stats{Batting: 51, Pitching: 51, Defense: 51}, got)

	// Expired drills contribute nothing.
	drill.RemainingWeeks = 0
	got = EffectiveStats(base, DefaultAllocation(), MoraleMedium, drill)
	assert.Equal(t, base, got)
}

func TestEffectiveStatsFloorsAtZero(t *testing.T) {
	base := Stats{Batting: 2, Pitching: 2, Defense: 2}
	got := EffectiveStats(base, Allocation{Marketing: 100}, MoraleVeryLow, nil)
	assert.Equal(t, Stats{}, got)
}
