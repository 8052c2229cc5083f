package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autopilotState(t *testing.T) *State {
	t.Helper()
	s := newTestState(t)
	s.Delegated = true
	return s
}

func TestNextCPUActionPriorities(t *testing.T) {
	s := autopilotState(t)

	s.Status = SeasonEnded
	assert.Equal(t, ActionStartNewSeason, NextCPUAction(s).Kind)
	s.Status = SeasonInProgress

	s.ReplayPending = true
	assert.Equal(t, ActionAcknowledgeReplay, NextCPUAction(s).Kind)
	s.ReplayPending = false

	s.ResultsPending = true
	assert.Equal(t, ActionCloseResults, NextCPUAction(s).Kind)
	s.ResultsPending = false

	// Drill offers come next; the fresh state can afford the first one.
	got := NextCPUAction(s)
	assert.Equal(t, ActionSelectDrill, got.Kind)
	assert.Equal(t, s.DrillOffers[0].ID, got.DrillID)

	// Broke clubs pass on drills.
	fin := s.Finances[s.UserTeamID]
	fin.Budget = 1_000_000
	s.Finances[s.UserTeamID] = fin
	assert.Equal(t, ActionSkipDrills, NextCPUAction(s).Kind)
}

func TestNextCPUActionSponsorship(t *testing.T) {
	s := autopilotState(t)
	s.DrillOffers = nil

	// Big clean offers get signed.
	s.PendingOffer = &SponsorshipOffer{Sponsor: "Acme", Amount: 30_000_000}
	assert.Equal(t, ActionAcceptSponsorship, NextCPUAction(s).Kind)

	// Small offers are declined when solvent.
	s.PendingOffer = &SponsorshipOffer{Sponsor: "Acme", Amount: 10_000_000}
	assert.Equal(t, ActionRejectSponsorship, NextCPUAction(s).Kind)

	// Risky offers are declined when solvent.
	s.PendingOffer = &SponsorshipOffer{
		Sponsor: "Shady", Amount: 60_000_000,
		Effect: &MoraleEffect{Kind: MoraleEffectPenalty, Chance: 0.25},
	}
	assert.Equal(t, ActionRejectSponsorship, NextCPUAction(s).Kind)

	// A desperate club takes any money.
	fin := s.Finances[s.UserTeamID]
	fin.Budget = WeeklyExpenses*2 - 1
	s.Finances[s.UserTeamID] = fin
	s.PendingOffer = &SponsorshipOffer{Sponsor: "Shady", Amount: 5_000_000,
		Effect: &MoraleEffect{Kind: MoraleEffectPenalty, Chance: 0.25}}
	assert.Equal(t, ActionAcceptSponsorship, NextCPUAction(s).Kind)
}

func TestNextCPUActionFallsThroughToAdvance(t *testing.T) {
	s := autopilotState(t)
	s.DrillOffers = nil
	s.Week = 3 // odd week: no ticket review, no allocation review
	assert.Equal(t, ActionAdvanceWeek, NextCPUAction(s).Kind)
}

func TestCPUTicketPrice(t *testing.T) {
	fin := Finances{FanHappiness: 50, TicketLevel: TicketNormal}

	// Odd weeks are skipped unless happiness is critical.
	assert.Nil(t, cpuTicketPrice(fin, 3))

	fin.FanHappiness = 85
	got := cpuTicketPrice(fin, 3)
	require.NotNil(t, got)
	assert.Equal(t, TicketHigh, *got)

	// Even-week nudges move one step toward the mood.
	fin = Finances{FanHappiness: 65, TicketLevel: TicketVeryHigh}
	got = cpuTicketPrice(fin, 2)
	require.NotNil(t, got)
	assert.Equal(t, TicketHigh, *got)

	fin = Finances{FanHappiness: 33, TicketLevel: TicketNormal}
	got = cpuTicketPrice(fin, 2)
	require.NotNil(t, got)
	assert.Equal(t, TicketLow, *got)

	fin = Finances{FanHappiness: 45, TicketLevel: TicketHigh}
	got = cpuTicketPrice(fin, 2)
	require.NotNil(t, got)
	assert.Equal(t, TicketNormal, *got)

	// Already where the policy wants it: no action.
	fin = Finances{FanHappiness: 65, TicketLevel: TicketNormal}
	assert.Nil(t, cpuTicketPrice(fin, 2))
}

func TestCPUAllocationExpansion(t *testing.T) {
	fin := Finances{Budget: 400_000_000, Allocation: DefaultAllocation()}

	// Off-cycle weeks do nothing while the budget is healthy.
	assert.Nil(t, cpuAllocation(fin, 2))

	got := cpuAllocation(fin, 5)
	require.NotNil(t, got)
	assert.InDelta(t, 100, got.Sum(), 1e-9)
	assert.Greater(t, got.Marketing, DefaultAllocation().Marketing)
	assert.Greater(t, got.Facilities, DefaultAllocation().Facilities)
	assert.Greater(t, got.Scouting, DefaultAllocation().Scouting)
}

func TestCPUAllocationAusterity(t *testing.T) {
	fin := Finances{Budget: WeeklyExpenses, Allocation: DefaultAllocation()}

	// Critical budgets trigger immediately, even off-cycle.
	got := cpuAllocation(fin, 2)
	require.NotNil(t, got)
	assert.InDelta(t, 100, got.Sum(), 1e-9)
	assert.Less(t, got.Marketing, DefaultAllocation().Marketing)
	assert.Greater(t, got.Medical, DefaultAllocation().Medical)

	// Training absorbs the freed shares.
	training := got.TrainingBatting + got.TrainingPitching + got.TrainingDefense
	assert.GreaterOrEqual(t, training, 30.0)
}

func TestCPUAllocationDriftsBackToDefault(t *testing.T) {
	fin := Finances{
		Budget: 200_000_000, // neither critical nor flush
		Allocation: Allocation{
			TrainingBatting: 15, TrainingPitching: 15, TrainingDefense: 10,
			Marketing: 30, Facilities: 10, Scouting: 10, Medical: 10,
		},
	}
	got := cpuAllocation(fin, 5)
	require.NotNil(t, got)
	assert.Equal(t, DefaultAllocation().Marketing, got.Marketing)
	assert.Equal(t, DefaultAllocation().Facilities, got.Facilities)
	assert.Equal(t, DefaultAllocation().Scouting, got.Scouting)
	assert.InDelta(t, 100, got.Sum(), 1e-9)
}
