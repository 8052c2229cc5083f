package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fanFixture(home, away string, hs, as int) Fixture {
	return Fixture{HomeID: home, AwayID: away, Played: true, HomeScore: hs, AwayScore: as}
}

func TestUpdateFanHappinessSingleGames(t *testing.T) {
	neutralArgs := func(fixtures []Fixture) int {
		return UpdateFanHappiness(50, fixtures, "us", TicketNormal, DefaultAllocation().Marketing, MoraleMedium, 5, 10)
	}

	assert.Equal(t, 53, neutralArgs([]Fixture{fanFixture("us", "them", 4, 2)}))
	assert.Equal(t, 46, neutralArgs([]Fixture{fanFixture("us", "them", 1, 3)}))
	assert.Equal(t, 52, neutralArgs([]Fixture{fanFixture("them", "us", 1, 3)}))
	assert.Equal(t, 47, neutralArgs([]Fixture{fanFixture("them", "us", 3, 1)}))
	// Draws move nothing.
	assert.Equal(t, 50, neutralArgs([]Fixture{fanFixture("us", "them", 2, 2)}))
	// Unplayed and unrelated games are ignored.
	assert.Equal(t, 50, neutralArgs([]Fixture{
		{HomeID: "us", AwayID: "them"},
		fanFixture("a", "b", 9, 0),
	}))
}

func TestUpdateFanHappinessStreaks(t *testing.T) {
	wins := []Fixture{
		fanFixture("us", "a", 4, 2),
		fanFixture("us", "b", 5, 1),
		fanFixture("us", "c", 3, 0),
	}
	// Three home wins: 9 points plus a streak bonus of 1.
	got := UpdateFanHappiness(50, wins, "us", TicketNormal, DefaultAllocation().Marketing, MoraleMedium, 5, 10)
	assert.Equal(t, 60, got)
}

func TestUpdateFanHappinessPolicyModifiers(t *testing.T) {
	fixtures := []Fixture{fanFixture("us", "them", 4, 2)}

	// Very high tickets cost 4 points.
	got := UpdateFanHappiness(50, fixtures, "us", TicketVeryHigh, DefaultAllocation().Marketing, MoraleMedium, 5, 10)
	assert.Equal(t, 49, got)

	// Heavy marketing spend earns round((40-20)*0.05) = 1.
	got = UpdateFanHappiness(50, fixtures, "us", TicketNormal, 40, MoraleMedium, 5, 10)
	assert.Equal(t, 54, got)

	// Top-three ranking earns a point; bottom-three costs one.
	got = UpdateFanHappiness(50, fixtures, "us", TicketNormal, DefaultAllocation().Marketing, MoraleMedium, 2, 10)
	assert.Equal(t, 54, got)
	got = UpdateFanHappiness(50, fixtures, "us", TicketNormal, DefaultAllocation().Marketing, MoraleMedium, 9, 10)
	assert.Equal(t, 52, got)

	// Morale spillover.
	got = UpdateFanHappiness(50, fixtures, "us", TicketNormal, DefaultAllocation().Marketing, MoraleVeryHigh, 5, 10)
	assert.Equal(t, 54, got)
	got = UpdateFanHappiness(50, fixtures, "us", TicketNormal, DefaultAllocation().Marketing, MoraleVeryLow, 5, 10)
	assert.Equal(t, 52, got)
}

func TestUpdateFanHappinessClamps(t *testing.T) {
	win := []Fixture{fanFixture("us", "them", 4, 2)}
	assert.Equal(t, MaxFanHappiness, UpdateFanHappiness(99, win, "us", TicketNormal, DefaultAllocation().Marketing, MoraleMedium, 5, 10))

	loss := []Fixture{fanFixture("us", "them", 1, 3)}
	assert.Equal(t, MinFanHappiness, UpdateFanHappiness(2, loss, "us", TicketVeryHigh, DefaultAllocation().Marketing, MoraleVeryLow, 9, 10))
}
