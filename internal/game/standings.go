package game

import "sort"

// InitStandings seeds a zeroed, sorted table for the given teams.
func InitStandings(teams []Team) []StandingsEntry {
	entries := make([]StandingsEntry, 0, len(teams))
	for _, t := range teams {
		entries = append(entries, StandingsEntry{TeamID: t.ID})
	}
	sortStandings(entries)
	return entries
}

// ApplyResult folds one final score into a copy of the table and re-sorts.
// The input slice is never modified.
func ApplyResult(standings []StandingsEntry, fx Fixture) []StandingsEntry {
	entries := append([]StandingsEntry(nil), standings...)

	var home, away *StandingsEntry
	for i := range entries {
		switch entries[i].TeamID {
		case fx.HomeID:
			home = &entries[i]
		case fx.AwayID:
			away = &entries[i]
		}
	}
	if home == nil || away == nil {
		return entries
	}

	home.GamesPlayed++
	away.GamesPlayed++
	switch {
	case fx.HomeScore > fx.AwayScore:
		home.Wins++
		away.Losses++
	case fx.AwayScore > fx.HomeScore:
		away.Wins++
		home.Losses++
	default:
		home.Draws++
		away.Draws++
	}
	for _, e := range []*StandingsEntry{home, away} {
		e.Points = float64(e.Wins) + 0.5*float64(e.Draws)
		if e.GamesPlayed > 0 {
			e.WinPct = e.Points / float64(e.GamesPlayed)
		}
	}

	sortStandings(entries)
	return entries
}

// Ordering: points desc, then wins desc, then losses asc.
func sortStandings(entries []StandingsEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Losses < b.Losses
	})
}
