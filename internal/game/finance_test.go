package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriftStat(t *testing.T) {
	// Positive bonus: chance of a one-point gain.
	rng := &scriptRand{floats: []float64{0.1}}
	assert.Equal(t, 51, driftStat(rng, 50, 2))
	rng = &scriptRand{floats: []float64{0.9}}
	assert.Equal(t, 50, driftStat(rng, 50, 2))

	// Negative bonus erodes deterministically and clamps at 10.
	rng = &scriptRand{}
	assert.Equal(t, 48, driftStat(rng, 50, -2))
	assert.Equal(t, 10, driftStat(rng, 11, -2))

	// Cap at 100.
	rng = &scriptRand{floats: []float64{0.1}}
	assert.Equal(t, 100, driftStat(rng, 100, 2))
}

func TestProcessWeeklyFinancesHomeGame(t *testing.T) {
	team := LeagueTeams()[0]
	fin := Finances{
		Budget:       InitialBudget,
		Allocation:   DefaultAllocation(),
		FanHappiness: 50,
		TicketLevel:  TicketNormal,
	}
	week := []Fixture{{HomeID: team.ID, AwayID: "other", Played: true, HomeScore: 4, AwayScore: 2}}

	// Rolls: three drift rolls, then the scouting roll never fires at the
	// default scouting share.
	rng := &scriptRand{floats: []float64{0.9, 0.9, 0.9}}
	out := ProcessWeeklyFinances(rng, team, fin, week, 3)

	// Neutral fans, normal tickets, default marketing: full home-win gate.
	assert.Equal(t, InitialBudget-WeeklyExpenses+IncomeHomeWin, out.Finances.Budget)
	require.Len(t, out.Finances.Expenses, 1)
	assert.Equal(t, WeeklyExpenses, out.Finances.Expenses[0].Amount)
	require.Len(t, out.Finances.Income, 1)
	assert.Equal(t, IncomeHomeWin, out.Finances.Income[0].Amount)
	assert.Empty(t, out.ScoutingReport)

	// The caller's ledgers are untouched.
	assert.Empty(t, fin.Income)
	assert.Empty(t, fin.Expenses)
}

func TestProcessWeeklyFinancesAwayWeek(t *testing.T) {
	team := LeagueTeams()[0]
	fin := Finances{Budget: InitialBudget, Allocation: DefaultAllocation(), FanHappiness: 50, TicketLevel: TicketNormal}
	week := []Fixture{{HomeID: "other", AwayID: team.ID, Played: true, HomeScore: 2, AwayScore: 4}}

	rng := &scriptRand{floats: []float64{0.9, 0.9, 0.9}}
	out := ProcessWeeklyFinances(rng, team, fin, week, 1)
	assert.Equal(t, InitialBudget-WeeklyExpenses, out.Finances.Budget)
	assert.Empty(t, out.Finances.Income)
}

func TestProcessWeeklyFinancesModifiersScaleGate(t *testing.T) {
	team := LeagueTeams()[0]
	fin := Finances{
		Budget: InitialBudget,
		Allocation: Allocation{
			TrainingBatting: 15, TrainingPitching: 15, TrainingDefense: 10,
			Marketing: 40, Facilities: 5, Scouting: 10, Medical: 5,
		},
		FanHappiness: 90, // ecstatic: +20% attendance
		TicketLevel:  TicketVeryHigh,
	}
	week := []Fixture{{HomeID: team.ID, AwayID: "other", Played: true, HomeScore: 1, AwayScore: 3}}

	rng := &scriptRand{floats: []float64{0.9, 0.9, 0.9}}
	out := ProcessWeeklyFinances(rng, team, fin, week, 2)

	// 40M loss gate * 1.02 marketing * 1.20 attendance * 1.30 tickets.
	want := roundKRW(float64(IncomeHomeLossOrDraw) * 1.02 * 1.20 * 1.30)
	require.Len(t, out.Finances.Income, 1)
	assert.Equal(t, want, out.Finances.Income[0].Amount)
}

func TestProcessWeeklyFinancesScoutingDiscovery(t *testing.T) {
	team := LeagueTeams()[0]
	fin := Finances{
		Budget: InitialBudget,
		Allocation: Allocation{
			TrainingBatting: 15, TrainingPitching: 15, TrainingDefense: 10,
			Marketing: 10, Facilities: 10, Scouting: 30, Medical: 10,
		},
		FanHappiness: 50,
		TicketLevel:  TicketNormal,
	}

	rng := &scriptRand{floats: []float64{0.9, 0.9, 0.9, 0.1}, ints: []int{1}}
	out := ProcessWeeklyFinances(rng, team, fin, nil, 4)
	assert.Contains(t, out.ScoutingReport, "pitching prospect")
}
