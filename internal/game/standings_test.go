package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyResultUpdatesBothSides(t *testing.T) {
	standings := InitStandings(LeagueTeams())
	teams := LeagueTeams()
	fx := Fixture{HomeID: teams[0].ID, AwayID: teams[1].ID, Played: true, HomeScore: 5, AwayScore: 2}

	next := ApplyResult(standings, fx)

	byID := func(entries []StandingsEntry, id string) StandingsEntry {
		for _, e := range entries {
			if e.TeamID == id {
				return e
			}
		}
		t.Fatalf("missing entry for %s", id)
		return StandingsEntry{}
	}

	home := byID(next, teams[0].ID)
	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 1, home.GamesPlayed)
	assert.Equal(t, 1.0, home.Points)
	assert.Equal(t, 1.0, home.WinPct)

	away := byID(next, teams[1].ID)
	assert.Equal(t, 1, away.Losses)
	assert.Equal(t, 0.0, away.Points)

	// Winner sorts to the top.
	require.Equal(t, teams[0].ID, next[0].TeamID)

	// The input table is untouched.
	assert.Equal(t, 0, byID(standings, teams[0].ID).Wins)
}

func TestApplyResultDraw(t *testing.T) {
	teams := LeagueTeams()
	standings := InitStandings(teams)
	fx := Fixture{HomeID: teams[0].ID, AwayID: teams[1].ID, Played: true, HomeScore: 3, AwayScore: 3}

	next := ApplyResult(standings, fx)
	for _, e := range next {
		if e.TeamID != teams[0].ID && e.TeamID != teams[1].ID {
			continue
		}
		assert.Equal(t, 1, e.Draws)
		assert.Equal(t, 0.5, e.Points)
		assert.Equal(t, 0.5, e.WinPct)
	}
}

func TestStandingsOrdering(t *testing.T) {
	entries := []StandingsEntry{
		{TeamID: "a", Wins: 2, Losses: 2, Points: 2},
		{TeamID: "b", Wins: 1, Draws: 2, Losses: 1, Points: 2},
		{TeamID: "c", Wins: 3, Points: 3},
	}
	sortStandings(entries)
	require.Equal(t, []string{"c", "a", "b"}, []string{entries[0].TeamID, entries[1].TeamID, entries[2].TeamID})
}
