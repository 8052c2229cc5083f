package game

import (
	"encoding/json"
	"fmt"
	"math"
)

type Stats struct {
	Batting  int `json:"batting"`
	Pitching int `json:"pitching"`
	Defense  int `json:"defense"`
}

type Team struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Color string `json:"color"`
	Stats Stats  `json:"stats"`
}

// Morale is an ordinal scale from very low to very high.
type Morale int

const (
	MoraleVeryLow Morale = iota
	MoraleLow
	MoraleMedium
	MoraleHigh
	MoraleVeryHigh
)

var moraleNames = map[Morale]string{
	MoraleVeryLow:  "very_low",
	MoraleLow:      "low",
	MoraleMedium:   "medium",
	MoraleHigh:     "high",
	MoraleVeryHigh: "very_high",
}

func (m Morale) String() string {
	if s, ok := moraleNames[m]; ok {
		return s
	}
	return fmt.Sprintf("morale(%d)", int(m))
}

// StatModifier is the flat rating adjustment applied at each level.
func (m Morale) StatModifier() int {
	switch m {
	case MoraleVeryLow:
		return -3
	case MoraleLow:
		return -1
	case MoraleHigh:
		return 1
	case MoraleVeryHigh:
		return 3
	default:
		return 0
	}
}

func (m Morale) raise() Morale {
	if m < MoraleVeryHigh {
		return m + 1
	}
	return m
}

func (m Morale) lower() Morale {
	if m > MoraleVeryLow {
		return m - 1
	}
	return m
}

func (m Morale) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Morale) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	parsed, err := ParseMorale(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func ParseMorale(s string) (Morale, error) {
	for level, name := range moraleNames {
		if name == s {
			return level, nil
		}
	}
	return MoraleMedium, fmt.Errorf("unknown morale level %q", s)
}

// TicketLevel sets the home gate multiplier and the weekly fan reaction.
type TicketLevel int

const (
	TicketVeryLow TicketLevel = iota
	TicketLow
	TicketNormal
	TicketHigh
	TicketVeryHigh
)

var ticketNames = map[TicketLevel]string{
	TicketVeryLow:  "very_low",
	TicketLow:      "low",
	TicketNormal:   "normal",
	TicketHigh:     "high",
	TicketVeryHigh: "very_high",
}

func (t TicketLevel) String() string {
	if s, ok := ticketNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ticket(%d)", int(t))
}

func (t TicketLevel) IncomeMultiplier() float64 {
	switch t {
	case TicketVeryLow:
		return 0.80
	case TicketLow:
		return 0.90
	case TicketHigh:
		return 1.15
	case TicketVeryHigh:
		return 1.30
	default:
		return 1.00
	}
}

func (t TicketLevel) HappinessImpact() int {
	switch t {
	case TicketVeryLow:
		return 2
	case TicketLow:
		return 1
	case TicketHigh:
		return -2
	case TicketVeryHigh:
		return -4
	default:
		return 0
	}
}

func (t TicketLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TicketLevel) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	parsed, err := ParseTicketLevel(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func ParseTicketLevel(s string) (TicketLevel, error) {
	for level, name := range ticketNames {
		if name == s {
			return level, nil
		}
	}
	return TicketNormal, fmt.Errorf("%w: %q", ErrInvalidTicketLevel, s)
}

// FanLevel is the banded view of the 0-100 fan happiness score.
type FanLevel int

const (
	FansAngry FanLevel = iota
	FansDisappointed
	FansNeutral
	FansHappy
	FansEcstatic
)

func FanLevelForScore(score int) FanLevel {
	switch {
	case score <= 19:
		return FansAngry
	case score <= 39:
		return FansDisappointed
	case score <= 59:
		return FansNeutral
	case score <= 79:
		return FansHappy
	default:
		return FansEcstatic
	}
}

func (f FanLevel) AttendanceModifier() float64 {
	switch f {
	case FansAngry:
		return -0.30
	case FansDisappointed:
		return -0.15
	case FansHappy:
		return 0.10
	case FansEcstatic:
		return 0.20
	default:
		return 0
	}
}

func (f FanLevel) String() string {
	switch f {
	case FansAngry:
		return "angry"
	case FansDisappointed:
		return "disappointed"
	case FansNeutral:
		return "neutral"
	case FansHappy:
		return "happy"
	default:
		return "ecstatic"
	}
}

// Allocation splits the weekly operating budget across seven departments.
// Values are percentage shares and must sum to 100.
type Allocation struct {
	TrainingBatting  float64 `json:"training_batting"`
	TrainingPitching float64 `json:"training_pitching"`
	TrainingDefense  float64 `json:"training_defense"`
	Marketing        float64 `json:"marketing"`
	Facilities       float64 `json:"facilities"`
	Scouting         float64 `json:"scouting"`
	Medical          float64 `json:"medical"`
}

func (a Allocation) Sum() float64 {
	return a.TrainingBatting + a.TrainingPitching + a.TrainingDefense +
		a.Marketing + a.Facilities + a.Scouting + a.Medical
}

type LedgerEntry struct {
	Week        int    `json:"week"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

type Finances struct {
	Budget       int64         `json:"budget"`
	Income       []LedgerEntry `json:"income"`
	Expenses     []LedgerEntry `json:"expenses"`
	Allocation   Allocation    `json:"allocation"`
	FanHappiness int           `json:"fan_happiness"`
	TicketLevel  TicketLevel   `json:"ticket_level"`
}

type Fixture struct {
	ID        string `json:"id"`
	Week      int    `json:"week"`
	HomeID    string `json:"home_id"`
	AwayID    string `json:"away_id"`
	Played    bool   `json:"played"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

type StandingsEntry struct {
	TeamID      string  `json:"team_id"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Draws       int     `json:"draws"`
	GamesPlayed int     `json:"games_played"`
	Points      float64 `json:"points"`
	WinPct      float64 `json:"win_pct"`
}

type StandingsSnapshot struct {
	Week    int              `json:"week"`
	Entries []StandingsEntry `json:"entries"`
}

type MoraleEffectKind string

const (
	MoraleEffectBoost   MoraleEffectKind = "boost"
	MoraleEffectPenalty MoraleEffectKind = "penalty"
)

type MoraleEffect struct {
	Kind   MoraleEffectKind `json:"kind"`
	Chance float64          `json:"chance"`
}

type SponsorshipOffer struct {
	ID      string        `json:"id"`
	Sponsor string        `json:"sponsor"`
	Amount  int64         `json:"amount"`
	Blurb   string        `json:"blurb"`
	Effect  *MoraleEffect `json:"effect,omitempty"`
}

type DrillTemplate struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Blurb         string `json:"blurb"`
	Cost          int64  `json:"cost"`
	Stat          string `json:"stat"` // batting, pitching, defense or all
	Boost         int    `json:"boost"`
	DurationWeeks int    `json:"duration_weeks"`
}

type ActiveDrill struct {
	DrillTemplate
	RemainingWeeks int `json:"remaining_weeks"`
}

type SeasonRecord struct {
	Season int    `json:"season"`
	Year   int    `json:"year"`
	TeamID string `json:"team_id"`
	Rank   int    `json:"rank"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
}

// StatsPoint is the user team's weekly dashboard row: effective ratings,
// morale, fan score and budget as of the start of that week.
type StatsPoint struct {
	Week         int    `json:"week"`
	Batting      int    `json:"batting"`
	Pitching     int    `json:"pitching"`
	Defense      int    `json:"defense"`
	Morale       Morale `json:"morale"`
	FanHappiness int    `json:"fan_happiness"`
	Budget       int64  `json:"budget"`
	DrillID      string `json:"drill_id,omitempty"`
}

type SeasonStatus string

const (
	SeasonInProgress SeasonStatus = "in_progress"
	SeasonEnded      SeasonStatus = "ended"
)

// State is the complete season snapshot. Transitions never mutate it in
// place; they clone first and return the successor.
type State struct {
	UserTeamID       string              `json:"user_team_id"`
	SeasonYear       int                 `json:"season_year"`
	Week             int                 `json:"week"`
	Status           SeasonStatus        `json:"status"`
	Teams            []Team              `json:"teams"`
	Schedule         [][]Fixture         `json:"schedule"`
	Standings        []StandingsEntry    `json:"standings"`
	StandingsHistory []StandingsSnapshot `json:"standings_history,omitempty"`
	Finances         map[string]Finances `json:"finances"`
	Morale           map[string]Morale   `json:"morale"`
	ActiveDrill      *ActiveDrill        `json:"active_drill,omitempty"`
	DrillOffers      []DrillTemplate     `json:"drill_offers,omitempty"`
	PendingOffer     *SponsorshipOffer   `json:"pending_offer,omitempty"`
	OfferSeq         int                 `json:"offer_seq"`
	Delegated        bool                `json:"delegated"`
	History          []SeasonRecord      `json:"history,omitempty"`
	StatsHistory     []StatsPoint        `json:"stats_history,omitempty"`
	LastResults      []Fixture           `json:"last_results,omitempty"`
	ResultsPending   bool                `json:"results_pending"`
	ReplayPending    bool                `json:"replay_pending"`
	GameLog          []string            `json:"game_log,omitempty"`
	ScoutingReport   string              `json:"scouting_report,omitempty"`
	StatusMessage    string              `json:"status_message,omitempty"`
}

// Clone deep-copies the state.
func (s *State) Clone() *State {
	out := *s
	out.Teams = append([]Team(nil), s.Teams...)
	out.Schedule = make([][]Fixture, len(s.Schedule))
	for i, week := range s.Schedule {
		out.Schedule[i] = append([]Fixture(nil), week...)
	}
	out.Standings = append([]StandingsEntry(nil), s.Standings...)
	out.StandingsHistory = make([]StandingsSnapshot, len(s.StandingsHistory))
	for i, snap := range s.StandingsHistory {
		out.StandingsHistory[i] = StandingsSnapshot{
			Week:    snap.Week,
			Entries: append([]StandingsEntry(nil), snap.Entries...),
		}
	}
	out.Finances = make(map[string]Finances, len(s.Finances))
	for id, fin := range s.Finances {
		fin.Income = append([]LedgerEntry(nil), fin.Income...)
		fin.Expenses = append([]LedgerEntry(nil), fin.Expenses...)
		out.Finances[id] = fin
	}
	out.Morale = make(map[string]Morale, len(s.Morale))
	for id, m := range s.Morale {
		out.Morale[id] = m
	}
	if s.ActiveDrill != nil {
		drill := *s.ActiveDrill
		out.ActiveDrill = &drill
	}
	out.DrillOffers = append([]DrillTemplate(nil), s.DrillOffers...)
	if s.PendingOffer != nil {
		offer := *s.PendingOffer
		if s.PendingOffer.Effect != nil {
			effect := *s.PendingOffer.Effect
			offer.Effect = &effect
		}
		out.PendingOffer = &offer
	}
	out.History = append([]SeasonRecord(nil), s.History...)
	out.StatsHistory = append([]StatsPoint(nil), s.StatsHistory...)
	out.LastResults = append([]Fixture(nil), s.LastResults...)
	out.GameLog = append([]string(nil), s.GameLog...)
	return &out
}

func (s *State) TeamByID(id string) (Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// WeekFixtures returns the fixtures scheduled for the given week, or nil
// when the schedule has no such week.
func (s *State) WeekFixtures(week int) []Fixture {
	if week < 1 || week > len(s.Schedule) {
		return nil
	}
	return s.Schedule[week-1]
}

// Rank is the 1-based standings position of a team, 0 if absent.
func (s *State) Rank(teamID string) int {
	for i, entry := range s.Standings {
		if entry.TeamID == teamID {
			return i + 1
		}
	}
	return 0
}

func roundKRW(v float64) int64 {
	return int64(math.Round(v))
}
