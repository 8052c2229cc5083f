package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pennant/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptShare(label string) (float64, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			printWarn("Enter a valid number.")
			continue
		}
		if v < 0 || v > 100 {
			printWarn("Shares are percentages between 0 and 100.")
			continue
		}
		return v, nil
	}
}

func decodeInto[T any](in any) (T, error) {
	var out T
	raw, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func formatWon(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "₩" + comma(v)
}

func colorizeWon(v int64) string {
	text := formatWon(v)
	switch {
	case v > 0:
		return success.Sprint("+" + text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func teamLabel(s *game.State, id string) string {
	if t, ok := s.TeamByID(id); ok {
		return t.City + " " + t.Name
	}
	return id
}

func renderStatus(s *game.State) {
	team, _ := s.TeamByID(s.UserTeamID)
	fin := s.Finances[s.UserTeamID]
	morale := s.Morale[s.UserTeamID]
	eff := game.EffectiveStats(team.Stats, fin.Allocation, morale, s.ActiveDrill)
	fans := game.FanLevelForScore(fin.FanHappiness)

	accent.Printf("\n== %s %s — Season %d, Week %d/%d ==\n",
		team.City, team.Name, s.SeasonYear, s.Week, game.TotalWeeks(len(s.Teams)))
	if s.Status == game.SeasonEnded {
		warn.Println("Season over. Run `pnt new-season` to roll into next year.")
	}

	for _, e := range s.Standings {
		if e.TeamID != s.UserTeamID {
			continue
		}
		fmt.Printf("Record:        %d-%d-%d (rank %d of %d)\n",
			e.Wins, e.Losses, e.Draws, s.Rank(s.UserTeamID), len(s.Teams))
	}
	fmt.Printf("Budget:        %s\n", formatWon(fin.Budget))
	fmt.Printf("Morale:        %s\n", morale)
	fmt.Printf("Fans:          %d/100 (%s)\n", fin.FanHappiness, fans)
	fmt.Printf("Tickets:       %s\n", fin.TicketLevel)
	fmt.Printf("Ratings:       bat %d / pitch %d / def %d\n", eff.Batting, eff.Pitching, eff.Defense)
	if s.ActiveDrill != nil {
		fmt.Printf("Active drill:  %s (%d weeks left)\n", s.ActiveDrill.Name, s.ActiveDrill.RemainingWeeks)
	}
	if s.Delegated {
		printInfo("Front office autopilot is ON.")
	}
	if s.PendingOffer != nil {
		warn.Printf("Sponsorship offer pending: run `pnt sponsor` to review.\n")
	}
	if len(s.DrillOffers) > 0 && s.ActiveDrill == nil {
		printInfo("Drill offers available: run `pnt drill`.")
	}
	if s.ScoutingReport != "" {
		accent.Println("\nScouting report")
		fmt.Println(s.ScoutingReport)
	}
	if s.StatusMessage != "" {
		printInfo(s.StatusMessage)
	}
}

func renderStandings(s *game.State) {
	accent.Printf("\n== Standings — Week %d ==\n", s.Week)
	fmt.Printf("%-4s %-24s %4s %4s %4s %6s %6s\n", "#", "TEAM", "W", "L", "D", "PTS", "PCT")
	for i, e := range s.Standings {
		line := fmt.Sprintf("%-4d %-24s %4d %4d %4d %6.1f %6.3f",
			i+1, truncate(teamLabel(s, e.TeamID), 24), e.Wins, e.Losses, e.Draws, e.Points, e.WinPct)
		if e.TeamID == s.UserTeamID {
			accent.Println(line)
		} else {
			fmt.Println(line)
		}
	}
}

func renderSchedule(s *game.State, all bool) {
	from, to := s.Week, s.Week+3
	if all {
		from, to = 1, len(s.Schedule)
	}
	accent.Println("\n== Schedule ==")
	for week := from; week <= to; week++ {
		fixtures := s.WeekFixtures(week)
		if fixtures == nil {
			continue
		}
		fmt.Printf("Week %d\n", week)
		for _, fx := range fixtures {
			marker := "  "
			if fx.HomeID == s.UserTeamID || fx.AwayID == s.UserTeamID {
				marker = accent.Sprint("* ")
			}
			if fx.Played {
				fmt.Printf("%s%-24s %2d : %-2d %s\n", marker,
					truncate(teamLabel(s, fx.HomeID), 24), fx.HomeScore, fx.AwayScore, teamLabel(s, fx.AwayID))
			} else {
				fmt.Printf("%s%-24s  vs   %s\n", marker,
					truncate(teamLabel(s, fx.HomeID), 24), teamLabel(s, fx.AwayID))
			}
		}
	}
}

func renderResults(s *game.State) {
	if len(s.LastResults) == 0 {
		return
	}
	accent.Printf("\n== Week %d results ==\n", s.LastResults[0].Week)
	for _, fx := range s.LastResults {
		line := fmt.Sprintf("%-24s %2d : %-2d %s",
			truncate(teamLabel(s, fx.HomeID), 24), fx.HomeScore, fx.AwayScore, teamLabel(s, fx.AwayID))
		if fx.HomeID == s.UserTeamID || fx.AwayID == s.UserTeamID {
			accent.Println(line)
		} else {
			fmt.Println(line)
		}
	}
}

// playReplay prints the play-by-play log, pacing the lines unless fast is
// set.
func playReplay(log []string, fast bool) {
	if len(log) == 0 {
		return
	}
	accent.Println("\n== Play-by-play ==")
	for _, line := range log {
		fmt.Println(line)
		if !fast {
			time.Sleep(120 * time.Millisecond)
		}
	}
}

func renderFinances(s *game.State) {
	fin := s.Finances[s.UserTeamID]
	accent.Println("\n== Front office ==")
	fmt.Printf("Budget: %s\n", formatWon(fin.Budget))

	accent.Println("\nAllocation")
	a := fin.Allocation
	rows := []struct {
		label string
		value float64
	}{
		{"Training (batting)", a.TrainingBatting},
		{"Training (pitching)", a.TrainingPitching},
		{"Training (defense)", a.TrainingDefense},
		{"Marketing", a.Marketing},
		{"Facilities", a.Facilities},
		{"Scouting", a.Scouting},
		{"Medical", a.Medical},
	}
	for _, row := range rows {
		fmt.Printf("%-22s %5.1f%%\n", row.label, row.value)
	}

	accent.Println("\nRecent ledger")
	printLedgerTail("income", fin.Income, 5)
	printLedgerTail("expense", fin.Expenses, 5)
}

func printLedgerTail(kind string, entries []game.LedgerEntry, n int) {
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	for _, e := range entries {
		amount := e.Amount
		if kind == "expense" {
			amount = -amount
		}
		fmt.Printf("wk %-3d %14s  %s\n", e.Week, colorizeWon(amount), e.Description)
	}
}

func renderOffer(offer *game.SponsorshipOffer) {
	accent.Println("\n== Sponsorship offer ==")
	fmt.Printf("Sponsor: %s\n", offer.Sponsor)
	fmt.Printf("Amount:  %s\n", formatWon(offer.Amount))
	fmt.Println(offer.Blurb)
	if offer.Effect != nil {
		switch offer.Effect.Kind {
		case game.MoraleEffectBoost:
			printInfo(fmt.Sprintf("Signing may lift clubhouse morale (%.0f%% chance).", offer.Effect.Chance*100))
		case game.MoraleEffectPenalty:
			printWarn(fmt.Sprintf("Signing may hurt clubhouse morale (%.0f%% chance).", offer.Effect.Chance*100))
		}
	}
}

func renderDrills(s *game.State) {
	if s.ActiveDrill != nil {
		accent.Println("\n== Active drill ==")
		fmt.Printf("%s — %s +%d, %d weeks left\n",
			s.ActiveDrill.Name, s.ActiveDrill.Stat, s.ActiveDrill.Boost, s.ActiveDrill.RemainingWeeks)
		return
	}
	if len(s.DrillOffers) == 0 {
		printInfo("No drill offers this week.")
		return
	}
	accent.Println("\n== Drill offers ==")
	for _, d := range s.DrillOffers {
		fmt.Printf("%-22s %-32s %s +%d, %dw, %s\n",
			d.ID, truncate(d.Blurb, 32), d.Stat, d.Boost, d.DurationWeeks, formatWon(d.Cost))
	}
	printInfo("Pick one with `pnt drill pick <id>` or `pnt drill skip`.")
}

func renderHistory(records []game.SeasonRecord) {
	if len(records) == 0 {
		printInfo("No completed seasons yet.")
		return
	}
	accent.Println("\n== Franchise history ==")
	fmt.Printf("%-8s %-6s %-6s %4s %4s %4s\n", "SEASON", "YEAR", "RANK", "W", "L", "D")
	for _, r := range records {
		fmt.Printf("%-8d %-6d %-6d %4d %4d %4d\n", r.Season, r.Year, r.Rank, r.Wins, r.Losses, r.Draws)
	}
}

func renderTeamList() {
	accent.Println("\n== League clubs ==")
	fmt.Printf("%-12s %-24s %4s %6s %4s\n", "ID", "TEAM", "BAT", "PITCH", "DEF")
	for _, t := range game.LeagueTeams() {
		fmt.Printf("%-12s %-24s %4d %6d %4d\n",
			t.ID, truncate(t.City+" "+t.Name, 24), t.Stats.Batting, t.Stats.Pitching, t.Stats.Defense)
	}
}
