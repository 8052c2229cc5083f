package game

import "fmt"

type matchup struct {
	home string
	away string
}

// GenerateSchedule builds the season fixture list with the circle method:
// each base round robin is repeated GamesPerOpponent times, alternating
// home and away on odd repeats so every pair meets evenly in both parks.
// Odd team counts get a bye slot that produces no fixture.
func GenerateSchedule(teams []Team) [][]Fixture {
	numTeams := len(teams)
	if numTeams < 2 {
		return nil
	}

	scheduleWeeks := TotalWeeks(numTeams)
	schedule := make([][]Fixture, scheduleWeeks)
	gameID := 0

	ids := make([]string, 0, numTeams+1)
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	if len(ids)%2 != 0 {
		ids = append(ids, "") // bye
	}
	n := len(ids)

	rounds := make([][]matchup, 0, n-1)
	rotation := append([]string(nil), ids...)
	for r := 0; r < n-1; r++ {
		var round []matchup
		for i := 0; i < n/2; i++ {
			home, away := rotation[i], rotation[n-1-i]
			if home != "" && away != "" {
				round = append(round, matchup{home: home, away: away})
			}
		}
		rounds = append(rounds, round)

		last := rotation[n-1]
		copy(rotation[2:], rotation[1:n-1])
		rotation[1] = last
	}

	for series := 0; series < GamesPerOpponent; series++ {
		for r, round := range rounds {
			week := series*len(rounds) + r
			if week >= scheduleWeeks {
				continue
			}
			for _, m := range round {
				home, away := m.home, m.away
				if series%2 != 0 {
					home, away = away, home
				}
				schedule[week] = append(schedule[week], Fixture{
					ID:     fmt.Sprintf("s%d-r%d-g%d", series, r, gameID),
					Week:   week + 1,
					HomeID: home,
					AwayID: away,
				})
				gameID++
			}
		}
	}

	out := schedule[:0]
	for _, week := range schedule {
		if len(week) > 0 {
			out = append(out, week)
		}
	}
	return out
}
