package game

import "fmt"

const inningsPerGame = 9

// GameSide is one club's inputs to a single game simulation.
type GameSide struct {
	Team       Team
	Morale     Morale
	Allocation Allocation
	Drill      *ActiveDrill
}

// GameResult is a final score plus the full play-by-play log.
type GameResult struct {
	HomeScore int
	AwayScore int
	Log       []string
}

var (
	surnames   = []string{"Kim", "Lee", "Park", "Choi", "Jung", "Kang", "Cho", "Yoon", "Jang", "Lim"}
	givenNames = []string{
		"Min-jun", "Seo-jun", "Do-yun", "Ye-jun", "Si-woo", "Ha-jun", "Ji-ho",
		"Ju-won", "Ji-hu", "Jun-seo", "Seo-yeon", "Seo-yun", "Ji-woo", "Seo-hyun",
		"Ha-yun", "Min-seo", "Ji-yu", "Yun-seo", "Chae-won", "Su-a",
	}
)

func randomPlayerName(rng Rand) string {
	return fmt.Sprintf("%s %s", surnames[rng.Intn(len(surnames))], givenNames[rng.Intn(len(givenNames))])
}

// gameStats are the per-game effective ratings: base plus training, morale
// and drill adjustments, then a uniform jitter in [-5, +5] per stat, rolled
// once per game and floored at 10.
func gameStats(rng Rand, side GameSide) Stats {
	tb := trainingBonus(side.Allocation)
	db := drillBonus(side.Drill)
	mod := side.Morale.StatModifier()
	roll := func(base, train, drill int) int {
		v := base + train + mod + drill + rng.Intn(11) - 5
		if v < 10 {
			v = 10
		}
		return v
	}
	return Stats{
		Batting:  roll(side.Team.Stats.Batting, tb.Batting, db.Batting),
		Pitching: roll(side.Team.Stats.Pitching, tb.Pitching, db.Pitching),
		Defense:  roll(side.Team.Stats.Defense, tb.Defense, db.Defense),
	}
}

type halfInning struct {
	rng          Rand
	battingName  string
	batting      Stats
	fielding     Stats
	offenseBonus float64 // +5 when the home side bats
	defenseBonus float64 // +5 when the home side fields
	log          *[]string

	runs  int
	outs  int
	bases [3]bool
}

func (h *halfInning) logf(format string, args ...any) {
	*h.log = append(*h.log, fmt.Sprintf(format, args...))
}

func (h *halfInning) occupied() int {
	n := 0
	for _, b := range h.bases {
		if b {
			n++
		}
	}
	return n
}

func (h *halfInning) score(n int) {
	h.runs += n
	if n == 1 {
		h.logf("%s score a run!", h.battingName)
	} else {
		h.logf("%s plate %d runs!", h.battingName, n)
	}
}

func (h *halfInning) single(batter string) {
	h.logf("%s singles!", batter)
	if h.bases[2] {
		h.bases[2] = false
		h.score(1)
	}
	if h.bases[1] {
		h.bases[2] = true
		h.bases[1] = false
	}
	if h.bases[0] {
		h.bases[1] = true
	}
	h.bases[0] = true
}

// atBat resolves one plate appearance. Returns true when the batter was
// retired.
func (h *halfInning) atBat() bool {
	batter := randomPlayerName(h.rng)
	offense := float64(h.batting.Batting)*(0.8+h.rng.Float64()*0.4) + h.offenseBonus
	defense := float64(h.fielding.Pitching+h.fielding.Defense)/2*(0.8+h.rng.Float64()*0.4) + h.defenseBonus
	outcomeRoll := h.rng.Float64() * 100

	switch {
	case offense > defense+20 && outcomeRoll < 25:
		hitRoll := h.rng.Float64()
		switch {
		case hitRoll < 0.05:
			h.logf("%s hits a home run!", batter)
			n := 1 + h.occupied()
			h.bases = [3]bool{}
			h.score(n)
		case hitRoll < 0.20:
			h.logf("%s triples!", batter)
			for i := 2; i >= 0; i-- {
				if h.bases[i] {
					h.bases[i] = false
					h.score(1)
				}
			}
			h.bases[2] = true
		case hitRoll < 0.50:
			h.logf("%s doubles!", batter)
			if h.bases[2] {
				h.bases[2] = false
				h.score(1)
			}
			if h.bases[1] {
				h.bases[1] = false
				h.score(1)
			}
			if h.bases[0] {
				h.bases[2] = true
				h.bases[0] = false
			}
			h.bases[1] = true
		default:
			h.single(batter)
		}
		return false
	case offense > defense-10 && outcomeRoll < 45:
		if h.rng.Float64() < 0.7 {
			h.single(batter)
			return false
		}
		h.logf("%s walks.", batter)
		switch {
		case h.bases[0] && h.bases[1] && h.bases[2]:
			h.runs++
			h.logf("%s force in a run!", h.battingName)
		case h.bases[0] && h.bases[1]:
			h.bases[2] = true
		case h.bases[0]:
			h.bases[1] = true
		default:
			h.bases[0] = true
		}
		return false
	default:
		outRoll := h.rng.Float64()
		switch {
		case outRoll < 0.33:
			h.logf("%s grounds out.", batter)
		case outRoll < 0.66:
			h.logf("%s flies out.", batter)
		default:
			h.logf("%s strikes out!", batter)
		}
		h.outs++
		return true
	}
}

// SimulateGame plays nine innings between two clubs and returns the final
// score with a textual play-by-play. The home side bats with a +5 offense
// bonus and fields with a +5 defense bonus; the bottom of the ninth is
// skipped when the home side already leads, and a go-ahead run in the ninth
// ends the game as a walk-off.
func SimulateGame(rng Rand, home, away GameSide) GameResult {
	var res GameResult
	res.Log = append(res.Log, fmt.Sprintf("Play ball: %s vs %s", home.Team.Name, away.Team.Name))

	homeStats := gameStats(rng, home)
	awayStats := gameStats(rng, away)

	for inning := 1; inning <= inningsPerGame; inning++ {
		top := halfInning{
			rng:          rng,
			battingName:  away.Team.Name,
			batting:      awayStats,
			fielding:     homeStats,
			defenseBonus: 5,
			log:          &res.Log,
		}
		res.Log = append(res.Log, fmt.Sprintf("--- Top %d: %s at bat ---", inning, away.Team.Name))
		for top.outs < 3 {
			top.atBat()
		}
		if top.runs == 0 {
			res.Log = append(res.Log, fmt.Sprintf("Top %d: no runs for %s.", inning, away.Team.Name))
		}
		res.AwayScore += top.runs

		res.Log = append(res.Log, fmt.Sprintf("--- Bottom %d: %s at bat ---", inning, home.Team.Name))
		if inning == inningsPerGame && res.HomeScore > res.AwayScore {
			res.Log = append(res.Log, fmt.Sprintf("%s lead; the bottom of the %dth is not needed.", home.Team.Name, inning))
			break
		}

		bottom := halfInning{
			rng:          rng,
			battingName:  home.Team.Name,
			batting:      homeStats,
			fielding:     awayStats,
			offenseBonus: 5,
			log:          &res.Log,
		}
		walkOff := false
		for bottom.outs < 3 {
			bottom.atBat()
			if inning == inningsPerGame && res.HomeScore+bottom.runs > res.AwayScore && bottom.outs < 3 {
				res.HomeScore += bottom.runs
				res.Log = append(res.Log, fmt.Sprintf("Walk-off win for %s! Final score %d:%d.", home.Team.Name, res.HomeScore, res.AwayScore))
				walkOff = true
				break
			}
		}
		if walkOff {
			break
		}
		if bottom.runs == 0 {
			res.Log = append(res.Log, fmt.Sprintf("Bottom %d: no runs for %s.", inning, home.Team.Name))
		}
		res.HomeScore += bottom.runs
	}

	res.Log = append(res.Log, "--- Final ---")
	res.Log = append(res.Log, fmt.Sprintf("Final score: %s %d : %d %s", home.Team.Name, res.HomeScore, res.AwayScore, away.Team.Name))
	switch {
	case res.HomeScore > res.AwayScore:
		res.Log = append(res.Log, fmt.Sprintf("%s win!", home.Team.Name))
	case res.AwayScore > res.HomeScore:
		res.Log = append(res.Log, fmt.Sprintf("%s win!", away.Team.Name))
	default:
		res.Log = append(res.Log, "Draw!")
	}
	return res
}
