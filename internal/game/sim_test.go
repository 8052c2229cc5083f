package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simSides() (GameSide, GameSide) {
	teams := LeagueTeams()
	home := GameSide{Team: teams[0], Morale: MoraleMedium, Allocation: DefaultAllocation()}
	away := GameSide{Team: teams[1], Morale: MoraleMedium, Allocation: DefaultAllocation()}
	return home, away
}

func TestSimulateGameProducesConsistentResult(t *testing.T) {
	rng := NewRand(42)
	home, away := simSides()

	for i := 0; i < 25; i++ {
		res := SimulateGame(rng, home, away)
		assert.GreaterOrEqual(t, res.HomeScore, 0)
		assert.GreaterOrEqual(t, res.AwayScore, 0)

		require.NotEmpty(t, res.Log)
		assert.Contains(t, res.Log[0], "Play ball")

		final := res.Log[len(res.Log)-1]
		switch {
		case res.HomeScore > res.AwayScore:
			assert.Equal(t, home.Team.Name+" win!", final)
		case res.AwayScore > res.HomeScore:
			assert.Equal(t, away.Team.Name+" win!", final)
		default:
			assert.Equal(t, "Draw!", final)
		}
	}
}

func TestSimulateGameLogsEveryInning(t *testing.T) {
	rng := NewRand(7)
	home, away := simSides()
	res := SimulateGame(rng, home, away)

	tops := 0
	for _, line := range res.Log {
		if strings.HasPrefix(line, "--- Top ") {
			tops++
		}
	}
	assert.Equal(t, inningsPerGame, tops)
}

func TestSimulateGameWalkOffEndsLog(t *testing.T) {
	// Run enough seeded games that at least one ends on a walk-off, and
	// check the log closes immediately after it.
	rng := NewRand(99)
	home, away := simSides()
	for i := 0; i < 200; i++ {
		res := SimulateGame(rng, home, away)
		for j, line := range res.Log {
			if !strings.Contains(line, "Walk-off win") {
				continue
			}
			require.Greater(t, res.HomeScore, res.AwayScore)
			// Only the final summary lines follow a walk-off.
			require.Equal(t, "--- Final ---", res.Log[j+1])
			return
		}
	}
	t.Skip("no walk-off in seeded sample")
}
