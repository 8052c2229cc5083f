package game

import "math"

// Weekly fan happiness deltas.
const (
	happinessHomeWin         = 3
	happinessAwayWin         = 2
	happinessHomeLoss        = -4
	happinessAwayLoss        = -3
	happinessStreakStep      = 1
	happinessMarketingRate   = 0.05
	happinessTopRankBonus    = 1
	happinessBottomRankMalus = -1
	happinessMoraleSpill     = 1
)

// UpdateFanHappiness folds one week of results and club policy into the fan
// happiness score: per-game results with streak bonuses, the ticket price
// reaction, marketing deviation from the default share, league position, and
// morale spillover. The result is clamped to [0, 100].
func UpdateFanHappiness(score int, weekFixtures []Fixture, teamID string, ticket TicketLevel, marketingShare float64, morale Morale, rank, totalTeams int) int {
	change := 0
	winStreak, lossStreak := 0, 0

	for _, fx := range weekFixtures {
		if !fx.Played || (fx.HomeID != teamID && fx.AwayID != teamID) {
			continue
		}
		if fx.HomeID == teamID {
			switch {
			case fx.HomeScore > fx.AwayScore:
				change += happinessHomeWin
				winStreak++
				lossStreak = 0
			case fx.HomeScore < fx.AwayScore:
				change += happinessHomeLoss
				lossStreak++
				winStreak = 0
			}
		} else {
			switch {
			case fx.AwayScore > fx.HomeScore:
				change += happinessAwayWin
				winStreak++
				lossStreak = 0
			case fx.AwayScore < fx.HomeScore:
				change += happinessAwayLoss
				lossStreak++
				winStreak = 0
			}
		}
	}

	if winStreak >= 3 {
		change += happinessStreakStep * (winStreak - 2)
	}
	if lossStreak >= 3 {
		change -= happinessStreakStep * (lossStreak - 2)
	}

	change += ticket.HappinessImpact()
	change += int(math.Round((marketingShare - DefaultAllocation().Marketing) * happinessMarketingRate))

	if rank > 0 && rank <= 3 {
		change += happinessTopRankBonus
	} else if rank >= totalTeams-2 {
		change += happinessBottomRankMalus
	}

	switch morale {
	case MoraleHigh, MoraleVeryHigh:
		change += happinessMoraleSpill
	case MoraleLow, MoraleVeryLow:
		change -= happinessMoraleSpill
	}

	next := score + change
	if next < MinFanHappiness {
		next = MinFanHappiness
	}
	if next > MaxFanHappiness {
		next = MaxFanHappiness
	}
	return next
}
