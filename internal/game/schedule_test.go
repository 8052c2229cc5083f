package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateScheduleShape(t *testing.T) {
	teams := LeagueTeams()
	schedule := GenerateSchedule(teams)

	require.Len(t, schedule, TotalWeeks(len(teams)))
	for week, fixtures := range schedule {
		require.Len(t, fixtures, len(teams)/2, "week %d", week+1)
		seen := make(map[string]bool)
		for _, fx := range fixtures {
			require.Equal(t, week+1, fx.Week)
			require.False(t, fx.Played)
			require.False(t, seen[fx.HomeID], "team %s plays twice in week %d", fx.HomeID, week+1)
			require.False(t, seen[fx.AwayID], "team %s plays twice in week %d", fx.AwayID, week+1)
			seen[fx.HomeID] = true
			seen[fx.AwayID] = true
		}
	}
}

func TestGenerateScheduleBalance(t *testing.T) {
	teams := LeagueTeams()
	schedule := GenerateSchedule(teams)

	type pair struct{ a, b string }
	meetings := make(map[pair]int)
	homeGames := make(map[string]int)

	for _, fixtures := range schedule {
		for _, fx := range fixtures {
			a, b := fx.HomeID, fx.AwayID
			if a > b {
				a, b = b, a
			}
			meetings[pair{a, b}]++
			homeGames[fx.HomeID]++
		}
	}

	require.Len(t, meetings, len(teams)*(len(teams)-1)/2)
	for p, n := range meetings {
		require.Equal(t, GamesPerOpponent, n, "pair %v", p)
	}
	// Alternating home/away across the repeated round robins keeps every
	// club at exactly half its games at home.
	for id, n := range homeGames {
		require.Equal(t, TotalWeeks(len(teams))/2, n, "home games for %s", id)
	}
}

func TestGenerateScheduleUniqueFixtureIDs(t *testing.T) {
	schedule := GenerateSchedule(LeagueTeams())
	ids := make(map[string]bool)
	for _, fixtures := range schedule {
		for _, fx := range fixtures {
			require.False(t, ids[fx.ID], "duplicate fixture id %s", fx.ID)
			ids[fx.ID] = true
		}
	}
}
