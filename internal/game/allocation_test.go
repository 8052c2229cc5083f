package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAllocationRejectsBadSplits(t *testing.T) {
	_, err := NormalizeAllocation(Allocation{
		TrainingBatting: -5, TrainingPitching: 25, TrainingDefense: 10,
		Marketing: 25, Facilities: 15, Scouting: 15, Medical: 15,
	})
	require.ErrorIs(t, err, ErrInvalidAllocation)

	_, err = NormalizeAllocation(Allocation{
		TrainingBatting: 10, TrainingPitching: 10, TrainingDefense: 10,
		Marketing: 10, Facilities: 10, Scouting: 10, Medical: 10,
	})
	require.ErrorIs(t, err, ErrInvalidAllocation)
}

func TestNormalizeAllocationSnapsToHundred(t *testing.T) {
	sevenths := 100.0 / 7.0
	out, err := NormalizeAllocation(Allocation{
		TrainingBatting: sevenths, TrainingPitching: sevenths, TrainingDefense: sevenths,
		Marketing: sevenths, Facilities: sevenths, Scouting: sevenths, Medical: sevenths,
	})
	require.NoError(t, err)
	assert.InDelta(t, 100, out.Sum(), 1e-9)

	out, err = NormalizeAllocation(DefaultAllocation())
	require.NoError(t, err)
	assert.Equal(t, DefaultAllocation(), out)
}

func TestNormalizeAllocationResidueNeverGoesNegative(t *testing.T) {
	// An overshoot inside the validation tolerance leaves negative residue
	// with no marketing to absorb it; the largest share takes it instead.
	out, err := NormalizeAllocation(Allocation{TrainingPitching: 50.14, TrainingDefense: 50.14})
	require.NoError(t, err)
	assert.InDelta(t, 100, out.Sum(), 1e-9)
	assert.Equal(t, 0.0, out.TrainingBatting)
	assert.InDelta(t, 49.9, out.TrainingPitching, 1e-9)
	assert.InDelta(t, 50.1, out.TrainingDefense, 1e-9)

	// An undershoot with marketing at zero still lands the residue there.
	out, err = NormalizeAllocation(Allocation{TrainingBatting: 49.86, TrainingPitching: 49.86})
	require.NoError(t, err)
	assert.InDelta(t, 100, out.Sum(), 1e-9)
	assert.InDelta(t, 0.2, out.Marketing, 1e-9)

	for _, v := range []float64{
		out.TrainingBatting, out.TrainingPitching, out.TrainingDefense,
		out.Marketing, out.Facilities, out.Scouting, out.Medical,
	} {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestAIAllocationIsValid(t *testing.T) {
	rng := NewRand(7)
	for i := 0; i < 50; i++ {
		a := aiAllocation(rng)
		assert.InDelta(t, 100, a.Sum(), 1e-9)
		for _, v := range []float64{
			a.TrainingBatting, a.TrainingPitching, a.TrainingDefense,
			a.Marketing, a.Facilities, a.Scouting, a.Medical,
		} {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}
