package game

var drillCatalog = []DrillTemplate{
	{
		ID:            "drill_bat_power",
		Name:          "Power Hitting Focus",
		Blurb:         "Focuses on slugging power and extra-base hits.",
		Cost:          7_500_000,
		Stat:          "batting",
		Boost:         2,
		DurationWeeks: 2,
	},
	{
		ID:            "drill_bat_contact",
		Name:          "Contact Hitting Clinic",
		Blurb:         "Aims to improve batting average and on-base percentage.",
		Cost:          6_000_000,
		Stat:          "batting",
		Boost:         1,
		DurationWeeks: 2,
	},
	{
		ID:            "drill_pitch_control",
		Name:          "Precision Pitching Drill",
		Blurb:         "Sharpens the staff's control and cuts down on walks.",
		Cost:          8_000_000,
		Stat:          "pitching",
		Boost:         2,
		DurationWeeks: 2,
	},
	{
		ID:            "drill_pitch_stamina",
		Name:          "Pitcher Stamina Building",
		Blurb:         "Helps pitchers stay effective deeper into games.",
		Cost:          5_000_000,
		Stat:          "pitching",
		Boost:         1,
		DurationWeeks: 3,
	},
	{
		ID:            "drill_def_agility",
		Name:          "Defensive Agility Course",
		Blurb:         "Improves fielders' range and reaction time.",
		Cost:          7_000_000,
		Stat:          "defense",
		Boost:         2,
		DurationWeeks: 2,
	},
	{
		ID:            "drill_def_teamwork",
		Name:          "Team Defensive Coordination",
		Blurb:         "Tightens communication and execution on defensive plays.",
		Cost:          5_500_000,
		Stat:          "defense",
		Boost:         1,
		DurationWeeks: 2,
	},
	{
		ID:            "drill_all_mental_game",
		Name:          "Mental Game Workshop",
		Blurb:         "Improves focus and clutch performance across the roster.",
		Cost:          10_000_000,
		Stat:          "all",
		Boost:         1,
		DurationWeeks: 1,
	},
}

// RollDrillOffers shuffles the drill catalog and offers the first two.
func RollDrillOffers(rng Rand) []DrillTemplate {
	shuffled := append([]DrillTemplate(nil), drillCatalog...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if len(shuffled) > MaxDrillsOffered {
		shuffled = shuffled[:MaxDrillsOffered]
	}
	return shuffled
}
