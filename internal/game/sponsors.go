package game

import "fmt"

type sponsorTemplate struct {
	sponsor   string
	minAmount int64
	maxAmount int64
	blurb     string
	effect    *MoraleEffect
}

var sponsorCatalog = []sponsorTemplate{
	{
		sponsor:   "Local Chicken Shack",
		minAmount: 5_000_000,
		maxAmount: 15_000_000,
		blurb:     "The neighborhood chicken joint wants to chip in a modest sum for the club.",
	},
	{
		sponsor:   "Rising IT Startup",
		minAmount: 20_000_000,
		maxAmount: 50_000_000,
		blurb:     "A fast-growing startup proposes a partnership. A chance to grow together!",
		effect:    &MoraleEffect{Kind: MoraleEffectBoost, Chance: 0.2},
	},
	{
		sponsor:   "Regional Beverage Co.",
		minAmount: 10_000_000,
		maxAmount: 30_000_000,
		blurb:     "A long-established regional bottler proposes a joint fan promotion.",
	},
	{
		sponsor:   "Global Tech Corp",
		minAmount: 50_000_000,
		maxAmount: 100_000_000,
		blurb:     "A global tech company offers a major sponsorship to pair with the club's image.",
		effect:    &MoraleEffect{Kind: MoraleEffectBoost, Chance: 0.35},
	},
	{
		sponsor:   "Slightly Shady Investment Firm",
		minAmount: 30_000_000,
		maxAmount: 75_000_000,
		blurb:     "An investment firm promising rapid growth offers big money, with some reputational concerns.",
		effect:    &MoraleEffect{Kind: MoraleEffectPenalty, Chance: 0.25},
	},
}

// RollSponsorshipOffer has a 20% weekly chance of producing an offer from a
// random sponsor, with the amount drawn uniformly from the sponsor's range.
// seq feeds the stable offer id.
func RollSponsorshipOffer(rng Rand, seq int) *SponsorshipOffer {
	if rng.Float64() >= sponsorshipOfferChance {
		return nil
	}
	tpl := sponsorCatalog[rng.Intn(len(sponsorCatalog))]
	amount := tpl.minAmount + int64(rng.Intn(int(tpl.maxAmount-tpl.minAmount+1)))
	offer := &SponsorshipOffer{
		ID:      fmt.Sprintf("sp-offer-%d", seq),
		Sponsor: tpl.sponsor,
		Amount:  amount,
		Blurb:   tpl.blurb,
	}
	if tpl.effect != nil {
		effect := *tpl.effect
		offer.Effect = &effect
	}
	return offer
}
