package game

import (
	"math"
	"sort"
)

// NextCPUAction picks the single action autopilot takes this tick, in
// priority order: roll into the next season, acknowledge pending output,
// settle the sponsorship offer, pick a drill, adjust ticket prices, adjust
// the budget split, and otherwise advance the week.
func NextCPUAction(s *State) Action {
	if s.Status == SeasonEnded {
		return Action{Kind: ActionStartNewSeason}
	}
	if s.ReplayPending {
		return Action{Kind: ActionAcknowledgeReplay}
	}
	if s.ResultsPending {
		return Action{Kind: ActionCloseResults}
	}

	fin := s.Finances[s.UserTeamID]

	if offer := s.PendingOffer; offer != nil {
		desperate := fin.Budget < WeeklyExpenses*2
		riskFree := offer.Effect == nil || offer.Effect.Kind != MoraleEffectPenalty
		if desperate || (offer.Amount > 20_000_000 && riskFree) {
			return Action{Kind: ActionAcceptSponsorship}
		}
		return Action{Kind: ActionRejectSponsorship}
	}

	if s.ActiveDrill == nil && len(s.DrillOffers) > 0 {
		for _, tpl := range s.DrillOffers {
			if fin.Budget >= tpl.Cost {
				return Action{Kind: ActionSelectDrill, DrillID: tpl.ID}
			}
		}
		return Action{Kind: ActionSkipDrills}
	}

	if level := cpuTicketPrice(fin, s.Week); level != nil {
		return Action{Kind: ActionSetTicketPrice, TicketLevel: level}
	}

	if alloc := cpuAllocation(fin, s.Week); alloc != nil {
		return Action{Kind: ActionUpdateAllocation, Allocation: alloc}
	}

	return Action{Kind: ActionAdvanceWeek}
}

// cpuTicketPrice nudges the ticket tier toward the fan mood, at most one
// step, and only on even weeks unless happiness is outside [30, 80].
func cpuTicketPrice(fin Finances, week int) *TicketLevel {
	happiness := fin.FanHappiness
	current := fin.TicketLevel

	critical := happiness < 30 || happiness > 80
	if week%2 != 0 && !critical {
		return nil
	}

	var suggested *TicketLevel
	set := func(l TicketLevel) { suggested = &l }
	switch {
	case happiness > 75:
		if current == TicketNormal {
			set(TicketHigh)
		} else if current == TicketLow || current == TicketVeryLow {
			set(TicketNormal)
		}
	case happiness > 60:
		if current == TicketLow || current == TicketVeryLow {
			set(TicketNormal)
		} else if current == TicketVeryHigh {
			set(TicketHigh)
		}
	case happiness < 35:
		if current == TicketNormal {
			set(TicketLow)
		} else if current == TicketHigh || current == TicketVeryHigh {
			set(TicketNormal)
		}
	case happiness < 50:
		if current == TicketHigh {
			set(TicketNormal)
		} else if current == TicketVeryHigh {
			set(TicketHigh)
		}
	}

	if suggested != nil && *suggested != current {
		return suggested
	}
	return nil
}

func clampShare(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// cpuAllocation reshapes the budget split every fourth week, or immediately
// when the budget is critical: austerity cuts under two weeks of runway,
// expansion above 60% of the initial budget, otherwise drift back toward the
// defaults. Training is rebalanced to absorb the remainder, floored at 30
// shares where possible. Returns nil when the change is not worth making.
func cpuAllocation(fin Finances, week int) *Allocation {
	def := DefaultAllocation()
	current := fin.Allocation
	next := current

	critical := fin.Budget < WeeklyExpenses*2
	if week%4 != 1 && !critical {
		return nil
	}

	changed := false
	switch {
	case critical:
		next.Marketing = clampShare(current.Marketing-5, 5, def.Marketing)
		next.Facilities = clampShare(current.Facilities-3, 5, def.Facilities)
		next.Scouting = clampShare(current.Scouting-3, 5, def.Scouting)
		next.Medical = clampShare(current.Medical+3, def.Medical, 20)
		changed = true
	case fin.Budget > roundKRW(float64(InitialBudget)*0.6):
		if current.Marketing < def.Marketing+5 {
			next.Marketing = clampShare(current.Marketing+3, def.Marketing, 25)
			changed = true
		}
		if current.Facilities < def.Facilities+5 {
			next.Facilities = clampShare(current.Facilities+2, def.Facilities, 20)
			changed = true
		}
		if current.Scouting < def.Scouting+5 {
			next.Scouting = clampShare(current.Scouting+3, def.Scouting, 20)
			changed = true
		}
		if current.Medical < def.Medical {
			next.Medical = clampShare(current.Medical+2, 5, def.Medical+2)
			changed = true
		}
	default:
		if math.Abs(current.Marketing-def.Marketing) > 3 {
			next.Marketing = def.Marketing
			changed = true
		}
		if math.Abs(current.Facilities-def.Facilities) > 3 {
			next.Facilities = def.Facilities
			changed = true
		}
		if math.Abs(current.Scouting-def.Scouting) > 3 {
			next.Scouting = def.Scouting
			changed = true
		}
		if math.Abs(current.Medical-def.Medical) > 3 {
			next.Medical = def.Medical
			changed = true
		}
	}
	if !changed {
		return nil
	}

	nonTraining := next.Marketing + next.Facilities + next.Scouting + next.Medical
	trainingTarget := 100 - nonTraining
	if trainingTarget < 30 {
		deficit := 30 - trainingTarget
		type share struct {
			name  string
			value *float64
		}
		candidates := []share{
			{"marketing", &next.Marketing},
			{"facilities", &next.Facilities},
			{"scouting", &next.Scouting},
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return *candidates[i].value > *candidates[j].value
		})
		if *candidates[0].value-deficit >= 5 {
			*candidates[0].value -= deficit
			trainingTarget = 30
		} else {
			trainingTarget = 100 - (next.Marketing + next.Facilities + next.Scouting + next.Medical)
		}
	}

	defTraining := def.TrainingBatting + def.TrainingPitching + def.TrainingDefense
	next.TrainingBatting = math.Round(def.TrainingBatting / defTraining * trainingTarget)
	next.TrainingPitching = math.Round(def.TrainingPitching / defTraining * trainingTarget)
	next.TrainingDefense = trainingTarget - next.TrainingBatting - next.TrainingPitching

	diff := math.Abs(next.TrainingBatting-current.TrainingBatting) +
		math.Abs(next.TrainingPitching-current.TrainingPitching) +
		math.Abs(next.TrainingDefense-current.TrainingDefense) +
		math.Abs(next.Marketing-current.Marketing) +
		math.Abs(next.Facilities-current.Facilities) +
		math.Abs(next.Scouting-current.Scouting) +
		math.Abs(next.Medical-current.Medical)
	if diff > 5 {
		return &next
	}
	return nil
}
