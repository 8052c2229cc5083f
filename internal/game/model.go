package game

import "errors"

// Amounts are whole KRW.
const (
	InitialBudget        = int64(500_000_000)
	WeeklyExpenses       = int64(50_000_000)
	IncomeHomeWin        = int64(70_000_000)
	IncomeHomeLossOrDraw = int64(40_000_000)

	GamesPerOpponent  = 4
	InitialSeasonYear = 2024

	MoraleBoostCost    = int64(10_000_000)
	LowBudgetThreshold = int64(50_000_000)

	InitialFanHappiness = 50
	MinFanHappiness     = 0
	MaxFanHappiness     = 100

	MaxDrillsOffered = 2
)

// Chance constants for the weekly morale and event rolls.
const (
	moraleWinIncreaseChance  = 0.7
	moraleLossDecreaseChance = 0.7
	moraleDrawShiftChance    = 0.3
	moraleLowBudgetChance    = 0.5
	moraleBoostSuccessRate   = 0.8
	fanAngerMoraleChance     = 0.15
	facilityMoraleChance     = 0.25
	medicalResilienceChance  = 0.25
	medicalResilienceShift   = 0.15
	scoutingDiscoveryChance  = 0.15
	sponsorshipOfferChance   = 0.2
)

// Allocation thresholds, in percentage points of the weekly budget.
const (
	trainingStatPointDivisor = 10
	maxTrainingStatEffect    = 2

	marketingIncomeDivisor    = 10
	maxMarketingIncomePercent = 10

	facilityHighThreshold = 25
	facilityLowThreshold  = 8
	scoutingHighThreshold = 25
	medicalHighThreshold  = 17
)

var (
	ErrTeamNotFound         = errors.New("team not found")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrMoraleAtMax          = errors.New("morale already at maximum")
	ErrNoPendingOffer       = errors.New("no pending sponsorship offer")
	ErrNoSuchDrill          = errors.New("drill not currently offered")
	ErrInvalidAllocation    = errors.New("allocation shares must be non-negative and sum to 100")
	ErrInvalidTicketLevel   = errors.New("unknown ticket price level")
	ErrSeasonActive         = errors.New("season still in progress")
	ErrSaveNotFound         = errors.New("save not found")
	ErrDuplicateIdempotency = errors.New("duplicate idempotency key")
)

// TotalWeeks is the number of schedule weeks for an n-team round robin
// repeated GamesPerOpponent times.
func TotalWeeks(numTeams int) int {
	return (numTeams - 1) * GamesPerOpponent
}
