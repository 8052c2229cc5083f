package game

import (
	"fmt"
	"math"
)

// WeeklyOutcome is the result of one club's weekly back-office pass.
type WeeklyOutcome struct {
	Team           Team
	Finances       Finances
	ScoutingReport string
}

// driftStat applies one week of training drift. Positive training bonuses
// give a chance of a one-point gain (20% at the default share, 40% at +1,
// 70% at +2); negative bonuses erode the rating deterministically. Ratings
// stay in [10, 100].
func driftStat(rng Rand, stat, bonus int) int {
	if bonus >= 0 {
		chance := 0.20
		switch bonus {
		case 1:
			chance = 0.40
		case 2:
			chance = 0.70
		}
		if rng.Float64() < chance {
			stat++
		}
	} else {
		stat += bonus
	}
	if stat < 10 {
		stat = 10
	}
	if stat > 100 {
		stat = 100
	}
	return stat
}

var scoutedTalents = []string{
	"a rookie with light-tower power",
	"a fireballing pitching prospect",
	"a vacuum-glove infielder",
}

// ProcessWeeklyFinances runs one club through the weekly pipeline: training
// drift on the base ratings, the salary expense, home gate income scaled by
// marketing, attendance and ticket price, and the scouting discovery roll.
// Inputs are copied, never mutated.
func ProcessWeeklyFinances(rng Rand, team Team, fin Finances, weekFixtures []Fixture, week int) WeeklyOutcome {
	out := WeeklyOutcome{Team: team, Finances: fin}
	out.Finances.Income = append([]LedgerEntry(nil), fin.Income...)
	out.Finances.Expenses = append([]LedgerEntry(nil), fin.Expenses...)

	tb := trainingBonus(fin.Allocation)
	out.Team.Stats.Batting = driftStat(rng, team.Stats.Batting, tb.Batting)
	out.Team.Stats.Pitching = driftStat(rng, team.Stats.Pitching, tb.Pitching)
	out.Team.Stats.Defense = driftStat(rng, team.Stats.Defense, tb.Defense)

	out.Finances.Budget -= WeeklyExpenses
	out.Finances.Expenses = append(out.Finances.Expenses, LedgerEntry{
		Week:        week,
		Amount:      WeeklyExpenses,
		Description: fmt.Sprintf("Week %d salaries & operations", week),
	})

	marketingPct := int(math.Floor((fin.Allocation.Marketing - DefaultAllocation().Marketing) / marketingIncomeDivisor))
	if marketingPct > maxMarketingIncomePercent {
		marketingPct = maxMarketingIncomePercent
	}
	if marketingPct < -maxMarketingIncomePercent {
		marketingPct = -maxMarketingIncomePercent
	}
	marketingMult := 1 + float64(marketingPct)/100

	attendanceMod := FanLevelForScore(fin.FanHappiness).AttendanceModifier()
	ticketMult := fin.TicketLevel.IncomeMultiplier()

	for _, fx := range weekFixtures {
		if fx.HomeID != team.ID || !fx.Played {
			continue
		}
		base := IncomeHomeLossOrDraw
		if fx.HomeScore > fx.AwayScore {
			base = IncomeHomeWin
		}
		income := roundKRW(float64(base) * marketingMult * (1 + attendanceMod) * ticketMult)
		out.Finances.Budget += income
		out.Finances.Income = append(out.Finances.Income, LedgerEntry{
			Week:   week,
			Amount: income,
			Description: fmt.Sprintf("Week %d home gate (attendance %.0f%%, %s tickets)",
				week, (1+attendanceMod)*100, fin.TicketLevel),
		})
	}

	if fin.Allocation.Scouting >= scoutingHighThreshold && rng.Float64() < scoutingDiscoveryChance {
		talent := scoutedTalents[rng.Intn(len(scoutedTalents))]
		out.ScoutingReport = fmt.Sprintf("Scouting report: found %s. Next season looks promising.", talent)
	}

	return out
}
