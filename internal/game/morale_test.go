package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoraleLadder(t *testing.T) {
	assert.Equal(t, MoraleVeryHigh, MoraleVeryHigh.raise())
	assert.Equal(t, MoraleVeryLow, MoraleVeryLow.lower())
	assert.Equal(t, MoraleHigh, MoraleMedium.raise())
	assert.Equal(t, MoraleLow, MoraleMedium.lower())
}

func baseMoraleUpdate(result string) MoraleUpdate {
	return MoraleUpdate{
		Result:     result,
		Budget:     InitialBudget,
		Allocation: DefaultAllocation(),
	}
}

func TestUpdateMoraleWin(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.1}}
	got := UpdateMorale(rng, MoraleMedium, baseMoraleUpdate("win"))
	assert.Equal(t, MoraleHigh, got)

	rng = &scriptRand{floats: []float64{0.9}}
	got = UpdateMorale(rng, MoraleMedium, baseMoraleUpdate("win"))
	assert.Equal(t, MoraleMedium, got)
}

func TestUpdateMoraleLoss(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.1}}
	got := UpdateMorale(rng, MoraleMedium, baseMoraleUpdate("loss"))
	assert.Equal(t, MoraleLow, got)
}

func TestUpdateMoraleDrawShiftsTowardMedium(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.1}}
	got := UpdateMorale(rng, MoraleVeryHigh, baseMoraleUpdate("draw"))
	assert.Equal(t, MoraleHigh, got)

	rng = &scriptRand{floats: []float64{0.1}}
	got = UpdateMorale(rng, MoraleLow, baseMoraleUpdate("draw"))
	assert.Equal(t, MoraleMedium, got)

	rng = &scriptRand{floats: []float64{0.1}}
	got = UpdateMorale(rng, MoraleMedium, baseMoraleUpdate("draw"))
	assert.Equal(t, MoraleMedium, got)
}

func TestUpdateMoraleLowBudgetBlocksWinGain(t *testing.T) {
	in := baseMoraleUpdate("win")
	in.Budget = LowBudgetThreshold - 1

	// Budget roll hits, so the malus applies and the win roll cannot raise.
	rng := &scriptRand{floats: []float64{0.4, 0.1}}
	got := UpdateMorale(rng, MoraleMedium, in)
	assert.Equal(t, MoraleLow, got)
}

func TestUpdateMoraleFacilities(t *testing.T) {
	in := baseMoraleUpdate("")
	in.Allocation.Facilities = facilityHighThreshold + 5
	rng := &scriptRand{floats: []float64{0.1}}
	assert.Equal(t, MoraleHigh, UpdateMorale(rng, MoraleMedium, in))

	in = baseMoraleUpdate("")
	in.Allocation.Facilities = facilityLowThreshold - 1
	rng = &scriptRand{floats: []float64{0.1}}
	assert.Equal(t, MoraleLow, UpdateMorale(rng, MoraleMedium, in))
}

func TestUpdateMoraleFanAnger(t *testing.T) {
	in := baseMoraleUpdate("")
	angry := 10
	in.FanHappiness = &angry
	rng := &scriptRand{floats: []float64{0.1}}
	assert.Equal(t, MoraleLow, UpdateMorale(rng, MoraleMedium, in))
}

func TestUpdateMoraleMedicalSoftensLosses(t *testing.T) {
	in := baseMoraleUpdate("loss")
	in.Allocation.Medical = medicalHighThreshold

	// Resilience roll hits, shifting the loss chance from 0.70 to 0.55; a
	// 0.6 result roll no longer drops morale.
	rng := &scriptRand{floats: []float64{0.1, 0.6}}
	assert.Equal(t, MoraleMedium, UpdateMorale(rng, MoraleMedium, in))

	// Without the resilience hit the same result roll drops morale.
	rng = &scriptRand{floats: []float64{0.9, 0.6}}
	assert.Equal(t, MoraleLow, UpdateMorale(rng, MoraleMedium, in))
}

func TestUpdateMoraleSponsorEffect(t *testing.T) {
	in := baseMoraleUpdate("")
	in.SponsorEffect = &MoraleEffect{Kind: MoraleEffectPenalty, Chance: 0.25}
	rng := &scriptRand{floats: []float64{0.1}}
	assert.Equal(t, MoraleLow, UpdateMorale(rng, MoraleMedium, in))

	in.SponsorEffect = &MoraleEffect{Kind: MoraleEffectBoost, Chance: 0.35}
	rng = &scriptRand{floats: []float64{0.1}}
	assert.Equal(t, MoraleHigh, UpdateMorale(rng, MoraleMedium, in))
}
