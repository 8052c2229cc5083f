package game

import "math"

// DefaultAllocation is the baseline budget split; training bonuses and
// marketing effects are measured against it.
func DefaultAllocation() Allocation {
	return Allocation{
		TrainingBatting:  15,
		TrainingPitching: 15,
		TrainingDefense:  10,
		Marketing:        20,
		Facilities:       15,
		Scouting:         15,
		Medical:          10,
	}
}

// NormalizeAllocation validates a requested split and snaps it onto a grid
// of 0.1 shares summing to exactly 100. Rounding residue goes to marketing
// when that keeps it positive, otherwise to batting training, with a final
// forced correction so the sum is always 100.
func NormalizeAllocation(a Allocation) (Allocation, error) {
	if a.TrainingBatting < 0 || a.TrainingPitching < 0 || a.TrainingDefense < 0 ||
		a.Marketing < 0 || a.Facilities < 0 || a.Scouting < 0 || a.Medical < 0 {
		return Allocation{}, ErrInvalidAllocation
	}
	if math.Abs(math.Round(a.Sum())-100) > 0.1 {
		return Allocation{}, ErrInvalidAllocation
	}

	tenth := func(v float64) float64 { return math.Round(v*10) / 10 }
	out := Allocation{
		TrainingBatting:  tenth(a.TrainingBatting),
		TrainingPitching: tenth(a.TrainingPitching),
		TrainingDefense:  tenth(a.TrainingDefense),
		Marketing:        tenth(a.Marketing),
		Facilities:       tenth(a.Facilities),
		Scouting:         tenth(a.Scouting),
		Medical:          tenth(a.Medical),
	}

	diff := 100 - out.Sum()
	if math.Abs(diff) > 0.01 {
		if out.Marketing+diff > 0 {
			out.Marketing += diff
		} else {
			out.TrainingBatting += diff
		}
	}
	// Force the invariant regardless of where the residue landed. Negative
	// residue can push batting below zero when the input over-shoots 100
	// within the validation tolerance; the largest remaining share absorbs
	// it so no share ends up negative.
	out.TrainingBatting += 100 - out.Sum()
	if out.TrainingBatting < 0 {
		shares := []*float64{
			&out.TrainingPitching, &out.TrainingDefense, &out.Marketing,
			&out.Facilities, &out.Scouting, &out.Medical,
		}
		largest := shares[0]
		for _, s := range shares[1:] {
			if *s > *largest {
				largest = s
			}
		}
		*largest += out.TrainingBatting
		out.TrainingBatting = 0
	}
	return out, nil
}

// aiAllocation generates the slightly randomized splits CPU-run clubs start
// the season with.
func aiAllocation(rng Rand) Allocation {
	a := Allocation{
		TrainingBatting:  float64(17 + rng.Intn(5) - 2),
		TrainingPitching: float64(17 + rng.Intn(5) - 2),
		TrainingDefense:  float64(16 + rng.Intn(5) - 2),
		Marketing:        float64(20 + rng.Intn(11) - 5),
		Facilities:       float64(15 + rng.Intn(7) - 3),
		Scouting:         float64(8 + rng.Intn(5) - 2),
		Medical:          float64(7 + rng.Intn(5) - 2),
	}

	diff := 100 - a.Sum()
	a.TrainingBatting += math.Floor(diff / 3)
	a.TrainingPitching += math.Ceil(diff / 3)
	a.TrainingDefense += math.Round(diff / 3)

	clampShare := func(v float64) float64 { return math.Max(0, math.Min(100, v)) }
	a.TrainingBatting = clampShare(a.TrainingBatting)
	a.TrainingPitching = clampShare(a.TrainingPitching)
	a.TrainingDefense = clampShare(a.TrainingDefense)
	a.Marketing = clampShare(a.Marketing)
	a.Facilities = clampShare(a.Facilities)
	a.Scouting = clampShare(a.Scouting)
	a.Medical = clampShare(a.Medical)

	a.TrainingBatting += 100 - a.Sum()
	return a
}
