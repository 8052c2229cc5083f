package game

// MoraleUpdate carries the weekly inputs to one club's morale transition.
// Result is "win", "loss", "draw", or empty when no game factored in.
// FanHappiness is set for the user club only.
type MoraleUpdate struct {
	Result        string
	Budget        int64
	Allocation    Allocation
	SponsorEffect *MoraleEffect
	FanHappiness  *int
}

// UpdateMorale runs the ordered morale pipeline: sponsorship effect,
// low-budget malus, facilities allocation, fan anger, then the game result
// with medical-staff resilience nudging the win/loss chances.
func UpdateMorale(rng Rand, m Morale, in MoraleUpdate) Morale {
	if in.SponsorEffect != nil && rng.Float64() < in.SponsorEffect.Chance {
		if in.SponsorEffect.Kind == MoraleEffectBoost {
			m = m.raise()
		} else {
			m = m.lower()
		}
	}

	budgetMalus := false
	if in.Budget < LowBudgetThreshold && rng.Float64() < moraleLowBudgetChance {
		budgetMalus = true
		m = m.lower()
	}

	if in.Allocation.Facilities > facilityHighThreshold && rng.Float64() < facilityMoraleChance {
		m = m.raise()
	} else if in.Allocation.Facilities < facilityLowThreshold && rng.Float64() < facilityMoraleChance {
		m = m.lower()
	}

	if in.FanHappiness != nil {
		if FanLevelForScore(*in.FanHappiness) == FansAngry && rng.Float64() < fanAngerMoraleChance {
			m = m.lower()
		}
	}

	if in.Result == "" {
		return m
	}

	winChance := moraleWinIncreaseChance
	lossChance := moraleLossDecreaseChance
	if in.Allocation.Medical >= medicalHighThreshold && rng.Float64() < medicalResilienceChance {
		switch in.Result {
		case "win":
			winChance = min(1, winChance+medicalResilienceShift)
		case "loss":
			lossChance = max(0, lossChance-medicalResilienceShift)
		}
	}

	switch in.Result {
	case "win":
		if rng.Float64() < winChance && !budgetMalus {
			m = m.raise()
		}
	case "loss":
		if rng.Float64() < lossChance {
			m = m.lower()
		}
	case "draw":
		if rng.Float64() < moraleDrawShiftChance && !budgetMalus {
			if m < MoraleMedium {
				m = m.raise()
			} else if m > MoraleMedium {
				m = m.lower()
			}
		}
	}
	return m
}
