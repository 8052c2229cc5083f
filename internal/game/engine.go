package game

import "fmt"

// Action kinds accepted by Apply. Unknown kinds are no-ops.
const (
	ActionAdvanceWeek         = "advance-week"
	ActionStartNewSeason      = "start-new-season"
	ActionBoostMorale         = "boost-morale"
	ActionAcceptSponsorship   = "accept-sponsorship"
	ActionRejectSponsorship   = "reject-sponsorship"
	ActionUpdateAllocation    = "update-allocation"
	ActionSetTicketPrice      = "set-ticket-price"
	ActionSelectDrill         = "select-drill"
	ActionSkipDrills          = "skip-drills"
	ActionToggleDelegation    = "toggle-delegation"
	ActionResetGame           = "reset-game"
	ActionCloseResults        = "close-results"
	ActionAcknowledgeReplay   = "acknowledge-replay"
	ActionClearScoutingReport = "clear-scouting-report"
)

// Action is one requested state transition with its payload.
type Action struct {
	Kind        string       `json:"kind"`
	Allocation  *Allocation  `json:"allocation,omitempty"`
	TicketLevel *TicketLevel `json:"ticket_level,omitempty"`
	DrillID     string       `json:"drill_id,omitempty"`
}

// NewState starts a fresh franchise for the chosen club.
func NewState(rng Rand, userTeamID string) (*State, error) {
	if _, ok := LeagueTeam(userTeamID); !ok {
		return nil, fmt.Errorf("%w: %q", ErrTeamNotFound, userTeamID)
	}
	return freshSeason(rng, userTeamID, InitialSeasonYear, false, nil), nil
}

func freshSeason(rng Rand, userTeamID string, year int, delegated bool, history []SeasonRecord) *State {
	teams := LeagueTeams()
	s := &State{
		UserTeamID: userTeamID,
		SeasonYear: year,
		Week:       1,
		Status:     SeasonInProgress,
		Teams:      teams,
		Schedule:   GenerateSchedule(teams),
		Standings:  InitStandings(teams),
		Finances:   make(map[string]Finances, len(teams)),
		Morale:     make(map[string]Morale, len(teams)),
		Delegated:  delegated,
		History:    history,
	}
	for _, t := range teams {
		alloc := DefaultAllocation()
		if t.ID != userTeamID {
			alloc = aiAllocation(rng)
		}
		s.Finances[t.ID] = Finances{
			Budget:       InitialBudget,
			Allocation:   alloc,
			FanHappiness: InitialFanHappiness,
			TicketLevel:  TicketNormal,
		}
		s.Morale[t.ID] = MoraleMedium
	}
	s.DrillOffers = RollDrillOffers(rng)
	s.StatsHistory = []StatsPoint{s.statsPoint(1)}
	return s
}

func (s *State) statsPoint(week int) StatsPoint {
	team, _ := s.TeamByID(s.UserTeamID)
	fin := s.Finances[s.UserTeamID]
	eff := EffectiveStats(team.Stats, fin.Allocation, s.Morale[s.UserTeamID], s.ActiveDrill)
	p := StatsPoint{
		Week:         week,
		Batting:      eff.Batting,
		Pitching:     eff.Pitching,
		Defense:      eff.Defense,
		Morale:       s.Morale[s.UserTeamID],
		FanHappiness: fin.FanHappiness,
		Budget:       fin.Budget,
	}
	if s.ActiveDrill != nil {
		p.DrillID = s.ActiveDrill.ID
	}
	return p
}

// refreshStatsPoint rewrites the dashboard row for the current week after a
// mid-week management action.
func (s *State) refreshStatsPoint() {
	for i := range s.StatsHistory {
		if s.StatsHistory[i].Week == s.Week {
			s.StatsHistory[i] = s.statsPoint(s.Week)
			return
		}
	}
	s.StatsHistory = append(s.StatsHistory, s.statsPoint(s.Week))
}

func resultFor(scored, allowed int) string {
	switch {
	case scored > allowed:
		return "win"
	case scored < allowed:
		return "loss"
	default:
		return "draw"
	}
}

// AdvanceWeek simulates every unplayed fixture of the current week and runs
// the weekly pipeline: standings, per-club morale, user-club fan happiness,
// back-office finances for every club, the drill clock, season-end
// bookkeeping and the sponsorship roll. Advancing an ended season is a
// no-op.
func AdvanceWeek(rng Rand, s *State) (*State, error) {
	if s.Status == SeasonEnded {
		return s.Clone(), nil
	}
	ns := s.Clone()
	ns.StatusMessage = ""
	totalWeeks := TotalWeeks(len(ns.Teams))
	if ns.Week > totalWeeks {
		ns.Status = SeasonEnded
		return ns, nil
	}
	weekIdx := ns.Week - 1
	if weekIdx >= len(ns.Schedule) {
		ns.Status = SeasonEnded
		ns.StatusMessage = fmt.Sprintf("No fixtures found for week %d; season closed early.", ns.Week)
		return ns, nil
	}

	week := ns.Schedule[weekIdx]
	for i := range week {
		fx := &week[i]
		if fx.Played {
			continue
		}
		home, _ := ns.TeamByID(fx.HomeID)
		away, _ := ns.TeamByID(fx.AwayID)
		homeSide := GameSide{Team: home, Morale: ns.Morale[fx.HomeID], Allocation: ns.Finances[fx.HomeID].Allocation}
		awaySide := GameSide{Team: away, Morale: ns.Morale[fx.AwayID], Allocation: ns.Finances[fx.AwayID].Allocation}
		if fx.HomeID == ns.UserTeamID {
			homeSide.Drill = ns.ActiveDrill
		}
		if fx.AwayID == ns.UserTeamID {
			awaySide.Drill = ns.ActiveDrill
		}

		res := SimulateGame(rng, homeSide, awaySide)
		fx.Played = true
		fx.HomeScore, fx.AwayScore = res.HomeScore, res.AwayScore
		ns.Standings = ApplyResult(ns.Standings, *fx)

		for _, side := range []struct {
			id     string
			result string
		}{
			{fx.HomeID, resultFor(res.HomeScore, res.AwayScore)},
			{fx.AwayID, resultFor(res.AwayScore, res.HomeScore)},
		} {
			fin := ns.Finances[side.id]
			in := MoraleUpdate{Result: side.result, Budget: fin.Budget, Allocation: fin.Allocation}
			if side.id == ns.UserTeamID {
				fh := fin.FanHappiness
				in.FanHappiness = &fh
			}
			ns.Morale[side.id] = UpdateMorale(rng, ns.Morale[side.id], in)
		}

		if fx.HomeID == ns.UserTeamID || fx.AwayID == ns.UserTeamID {
			ns.GameLog = res.Log
			ns.ReplayPending = true
		}
	}

	ns.LastResults = append([]Fixture(nil), week...)
	ns.ResultsPending = true

	// Fans react to the user club using the post-game table position.
	userFin := ns.Finances[ns.UserTeamID]
	userFin.FanHappiness = UpdateFanHappiness(
		userFin.FanHappiness, week, ns.UserTeamID,
		userFin.TicketLevel, userFin.Allocation.Marketing,
		ns.Morale[ns.UserTeamID], ns.Rank(ns.UserTeamID), len(ns.Teams),
	)
	ns.Finances[ns.UserTeamID] = userFin

	for i, t := range ns.Teams {
		outc := ProcessWeeklyFinances(rng, t, ns.Finances[t.ID], week, ns.Week)
		ns.Teams[i] = outc.Team
		ns.Finances[t.ID] = outc.Finances
		if t.ID == ns.UserTeamID && outc.ScoutingReport != "" {
			ns.ScoutingReport = outc.ScoutingReport
		}
	}

	// The drill clock runs down after the week it boosted, so a two-week
	// drill covers exactly two simulated weeks.
	if ns.ActiveDrill != nil {
		ns.ActiveDrill.RemainingWeeks--
		if ns.ActiveDrill.RemainingWeeks <= 0 {
			ns.ActiveDrill = nil
		}
	}
	if ns.ActiveDrill == nil {
		ns.DrillOffers = RollDrillOffers(rng)
	}

	ns.StandingsHistory = append(ns.StandingsHistory, StandingsSnapshot{
		Week:    ns.Week,
		Entries: append([]StandingsEntry(nil), ns.Standings...),
	})

	ns.Week++
	if ns.Week > totalWeeks {
		ns.Status = SeasonEnded
		var rec SeasonRecord
		for _, e := range ns.Standings {
			if e.TeamID == ns.UserTeamID {
				rec = SeasonRecord{
					Season: len(ns.History) + 1,
					Year:   ns.SeasonYear,
					TeamID: ns.UserTeamID,
					Rank:   ns.Rank(ns.UserTeamID),
					Wins:   e.Wins,
					Losses: e.Losses,
					Draws:  e.Draws,
				}
			}
		}
		ns.History = append(ns.History, rec)
	} else {
		ns.StatsHistory = append(ns.StatsHistory, ns.statsPoint(ns.Week))
	}

	if ns.PendingOffer == nil && ns.Status != SeasonEnded {
		if offer := RollSponsorshipOffer(rng, ns.OfferSeq); offer != nil {
			ns.PendingOffer = offer
			ns.OfferSeq++
		}
	}
	return ns, nil
}

// StartNewSeason rolls the franchise into the next year: fresh ratings,
// schedule, standings, finances and morale, keeping the franchise history
// and the delegation flag.
func StartNewSeason(rng Rand, s *State) (*State, error) {
	if s.Status != SeasonEnded {
		return nil, ErrSeasonActive
	}
	history := append([]SeasonRecord(nil), s.History...)
	return freshSeason(rng, s.UserTeamID, s.SeasonYear+1, s.Delegated, history), nil
}

// BoostMorale spends the boost fee on a clubhouse event with an 80% chance
// of lifting morale one level.
func BoostMorale(rng Rand, s *State) (*State, error) {
	if s.Morale[s.UserTeamID] == MoraleVeryHigh {
		return nil, ErrMoraleAtMax
	}
	if s.Finances[s.UserTeamID].Budget < MoraleBoostCost {
		return nil, ErrInsufficientFunds
	}
	ns := s.Clone()
	fin := ns.Finances[ns.UserTeamID]
	fin.Budget -= MoraleBoostCost
	fin.Expenses = append(fin.Expenses, LedgerEntry{
		Week:        ns.Week,
		Amount:      MoraleBoostCost,
		Description: "Team morale program",
	})
	ns.Finances[ns.UserTeamID] = fin
	if rng.Float64() < moraleBoostSuccessRate {
		ns.Morale[ns.UserTeamID] = ns.Morale[ns.UserTeamID].raise()
		ns.StatusMessage = "The clubhouse event worked; the squad looks sharper."
	} else {
		ns.StatusMessage = "The clubhouse event fell flat. The money is spent either way."
	}
	ns.refreshStatsPoint()
	return ns, nil
}

// AcceptSponsorship banks the pending offer and runs its optional morale
// effect through the weekly morale pipeline.
func AcceptSponsorship(rng Rand, s *State) (*State, error) {
	if s.PendingOffer == nil {
		return nil, ErrNoPendingOffer
	}
	ns := s.Clone()
	offer := ns.PendingOffer
	fin := ns.Finances[ns.UserTeamID]
	fin.Budget += offer.Amount
	fin.Income = append(fin.Income, LedgerEntry{
		Week:        ns.Week,
		Amount:      offer.Amount,
		Description: fmt.Sprintf("Sponsorship: %s", offer.Sponsor),
	})
	ns.Finances[ns.UserTeamID] = fin
	if offer.Effect != nil {
		ns.Morale[ns.UserTeamID] = UpdateMorale(rng, ns.Morale[ns.UserTeamID], MoraleUpdate{
			Budget:        fin.Budget,
			Allocation:    fin.Allocation,
			SponsorEffect: offer.Effect,
		})
	}
	ns.StatusMessage = fmt.Sprintf("Signed with %s.", offer.Sponsor)
	ns.PendingOffer = nil
	ns.refreshStatsPoint()
	return ns, nil
}

func RejectSponsorship(s *State) (*State, error) {
	if s.PendingOffer == nil {
		return nil, ErrNoPendingOffer
	}
	ns := s.Clone()
	ns.StatusMessage = fmt.Sprintf("Declined the offer from %s.", ns.PendingOffer.Sponsor)
	ns.PendingOffer = nil
	return ns, nil
}

// UpdateAllocation replaces the user club's budget split after validation
// and normalization.
func UpdateAllocation(s *State, a Allocation) (*State, error) {
	normalized, err := NormalizeAllocation(a)
	if err != nil {
		return nil, err
	}
	ns := s.Clone()
	fin := ns.Finances[ns.UserTeamID]
	fin.Allocation = normalized
	ns.Finances[ns.UserTeamID] = fin
	ns.StatusMessage = "Budget allocation updated."
	ns.refreshStatsPoint()
	return ns, nil
}

func SetTicketPrice(s *State, level TicketLevel) (*State, error) {
	if _, ok := ticketNames[level]; !ok {
		return nil, ErrInvalidTicketLevel
	}
	ns := s.Clone()
	fin := ns.Finances[ns.UserTeamID]
	fin.TicketLevel = level
	ns.Finances[ns.UserTeamID] = fin
	ns.StatusMessage = fmt.Sprintf("Ticket prices set to %s.", level)
	return ns, nil
}

// SelectDrill buys one of the offered drills and makes it the active drill.
func SelectDrill(s *State, drillID string) (*State, error) {
	var tpl *DrillTemplate
	for i := range s.DrillOffers {
		if s.DrillOffers[i].ID == drillID {
			tpl = &s.DrillOffers[i]
			break
		}
	}
	if tpl == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchDrill, drillID)
	}
	if s.Finances[s.UserTeamID].Budget < tpl.Cost {
		return nil, ErrInsufficientFunds
	}
	ns := s.Clone()
	fin := ns.Finances[ns.UserTeamID]
	fin.Budget -= tpl.Cost
	fin.Expenses = append(fin.Expenses, LedgerEntry{
		Week:        ns.Week,
		Amount:      tpl.Cost,
		Description: fmt.Sprintf("Special drill: %s", tpl.Name),
	})
	ns.Finances[ns.UserTeamID] = fin
	ns.ActiveDrill = &ActiveDrill{DrillTemplate: *tpl, RemainingWeeks: tpl.DurationWeeks}
	ns.DrillOffers = nil
	ns.StatusMessage = fmt.Sprintf("Started %s (%d weeks).", tpl.Name, tpl.DurationWeeks)
	ns.refreshStatsPoint()
	return ns, nil
}

func SkipDrills(s *State) *State {
	ns := s.Clone()
	ns.DrillOffers = nil
	return ns
}

func ToggleDelegation(s *State) *State {
	ns := s.Clone()
	ns.Delegated = !ns.Delegated
	if ns.Delegated {
		ns.StatusMessage = "Front office autopilot engaged."
	} else {
		ns.StatusMessage = "Front office autopilot disengaged."
	}
	return ns
}

func CloseResults(s *State) *State {
	ns := s.Clone()
	ns.ResultsPending = false
	ns.LastResults = nil
	return ns
}

func AcknowledgeReplay(s *State) *State {
	ns := s.Clone()
	ns.ReplayPending = false
	return ns
}

func ClearScoutingReport(s *State) *State {
	ns := s.Clone()
	ns.ScoutingReport = ""
	return ns
}

// Apply dispatches an action against a snapshot and returns the successor
// state. Unknown action kinds return the snapshot unchanged.
func Apply(rng Rand, s *State, a Action) (*State, error) {
	switch a.Kind {
	case ActionAdvanceWeek:
		return AdvanceWeek(rng, s)
	case ActionStartNewSeason:
		return StartNewSeason(rng, s)
	case ActionBoostMorale:
		return BoostMorale(rng, s)
	case ActionAcceptSponsorship:
		return AcceptSponsorship(rng, s)
	case ActionRejectSponsorship:
		return RejectSponsorship(s)
	case ActionUpdateAllocation:
		if a.Allocation == nil {
			return nil, ErrInvalidAllocation
		}
		return UpdateAllocation(s, *a.Allocation)
	case ActionSetTicketPrice:
		if a.TicketLevel == nil {
			return nil, ErrInvalidTicketLevel
		}
		return SetTicketPrice(s, *a.TicketLevel)
	case ActionSelectDrill:
		return SelectDrill(s, a.DrillID)
	case ActionSkipDrills:
		return SkipDrills(s), nil
	case ActionToggleDelegation:
		return ToggleDelegation(s), nil
	case ActionResetGame:
		return NewState(rng, s.UserTeamID)
	case ActionCloseResults:
		return CloseResults(s), nil
	case ActionAcknowledgeReplay:
		return AcknowledgeReplay(s), nil
	case ActionClearScoutingReport:
		return ClearScoutingReport(s), nil
	default:
		return s.Clone(), nil
	}
}
