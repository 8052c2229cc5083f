package game

// leagueTeams is the fixed ten-team league. Ratings are the season-start
// baselines; weekly training drift moves the live copies in State.Teams.
var leagueTeams = []Team{
	{ID: "bears", Name: "Doosan Bears", City: "Seoul", Color: "gray", Stats: Stats{Batting: 82, Pitching: 80, Defense: 83}},
	{ID: "twins", Name: "LG Twins", City: "Seoul", Color: "red", Stats: Stats{Batting: 85, Pitching: 84, Defense: 82}},
	{ID: "wiz", Name: "KT Wiz", City: "Suwon", Color: "black", Stats: Stats{Batting: 80, Pitching: 81, Defense: 79}},
	{ID: "lions", Name: "Samsung Lions", City: "Daegu", Color: "blue", Stats: Stats{Batting: 77, Pitching: 75, Defense: 76}},
	{ID: "dinos", Name: "NC Dinos", City: "Changwon", Color: "sky", Stats: Stats{Batting: 79, Pitching: 78, Defense: 78}},
	{ID: "landers", Name: "SSG Landers", City: "Incheon", Color: "red", Stats: Stats{Batting: 76, Pitching: 72, Defense: 74}},
	{ID: "tigers", Name: "KIA Tigers", City: "Gwangju", Color: "crimson", Stats: Stats{Batting: 88, Pitching: 85, Defense: 86}},
	{ID: "giants", Name: "Lotte Giants", City: "Busan", Color: "orange", Stats: Stats{Batting: 73, Pitching: 70, Defense: 71}},
	{ID: "eagles", Name: "Hanwha Eagles", City: "Daejeon", Color: "orange", Stats: Stats{Batting: 70, Pitching: 68, Defense: 70}},
	{ID: "heroes", Name: "Kiwoom Heroes", City: "Seoul", Color: "purple", Stats: Stats{Batting: 78, Pitching: 74, Defense: 75}},
}

// LeagueTeams returns a fresh copy of the league catalog.
func LeagueTeams() []Team {
	return append([]Team(nil), leagueTeams...)
}

func LeagueTeam(id string) (Team, bool) {
	for _, t := range leagueTeams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}
