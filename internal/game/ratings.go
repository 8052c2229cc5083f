package game

// trainingStep maps an allocation's deviation from its default share onto a
// flat rating bonus in [-2, +2].
func trainingStep(share, defaultShare float64) int {
	diff := share - defaultShare
	switch {
	case diff >= trainingStatPointDivisor*2:
		return maxTrainingStatEffect
	case diff >= trainingStatPointDivisor:
		return 1
	case diff > -trainingStatPointDivisor:
		return 0
	case diff > -trainingStatPointDivisor*2:
		return -1
	default:
		return -maxTrainingStatEffect
	}
}

func trainingBonus(a Allocation) Stats {
	def := DefaultAllocation()
	return Stats{
		Batting:  trainingStep(a.TrainingBatting, def.TrainingBatting),
		Pitching: trainingStep(a.TrainingPitching, def.TrainingPitching),
		Defense:  trainingStep(a.TrainingDefense, def.TrainingDefense),
	}
}

func drillBonus(d *ActiveDrill) Stats {
	var b Stats
	if d == nil || d.RemainingWeeks <= 0 {
		return b
	}
	switch d.Stat {
	case "batting":
		b.Batting = d.Boost
	case "pitching":
		b.Pitching = d.Boost
	case "defense":
		b.Defense = d.Boost
	case "all":
		b.Batting, b.Pitching, b.Defense = d.Boost, d.Boost, d.Boost
	}
	return b
}

// EffectiveStats is the display view of a team's ratings: base plus
// training, morale and drill adjustments, floored at zero. The simulator
// applies its own per-game jitter on top.
func EffectiveStats(base Stats, a Allocation, m Morale, d *ActiveDrill) Stats {
	tb := trainingBonus(a)
	db := drillBonus(d)
	mod := m.StatModifier()
	floor0 := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	return Stats{
		Batting:  floor0(base.Batting + tb.Batting + mod + db.Batting),
		Pitching: floor0(base.Pitching + tb.Pitching + mod + db.Pitching),
		Defense:  floor0(base.Defense + tb.Defense + mod + db.Defense),
	}
}
