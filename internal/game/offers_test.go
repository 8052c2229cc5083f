package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollSponsorshipOffer(t *testing.T) {
	// The weekly roll misses 80% of the time.
	rng := &scriptRand{floats: []float64{0.5}}
	assert.Nil(t, RollSponsorshipOffer(rng, 0))

	// A hit picks a sponsor and an amount inside its range.
	rng = &scriptRand{floats: []float64{0.1}, ints: []int{1, 0}}
	offer := RollSponsorshipOffer(rng, 3)
	require.NotNil(t, offer)
	assert.Equal(t, "sp-offer-3", offer.ID)
	assert.Equal(t, "Rising IT Startup", offer.Sponsor)
	assert.Equal(t, int64(20_000_000), offer.Amount)
	require.NotNil(t, offer.Effect)
	assert.Equal(t, MoraleEffectBoost, offer.Effect.Kind)
}

func TestRollSponsorshipOfferAmountsStayInRange(t *testing.T) {
	rng := NewRand(11)
	byName := make(map[string]sponsorTemplate, len(sponsorCatalog))
	for _, tpl := range sponsorCatalog {
		byName[tpl.sponsor] = tpl
	}
	for i := 0; i < 200; i++ {
		offer := RollSponsorshipOffer(rng, i)
		if offer == nil {
			continue
		}
		tpl := byName[offer.Sponsor]
		assert.GreaterOrEqual(t, offer.Amount, tpl.minAmount)
		assert.LessOrEqual(t, offer.Amount, tpl.maxAmount)
	}
}

func TestRollDrillOffers(t *testing.T) {
	rng := NewRand(12)
	offers := RollDrillOffers(rng)
	require.Len(t, offers, MaxDrillsOffered)
	assert.NotEqual(t, offers[0].ID, offers[1].ID)

	// Offers are copies of catalog entries, complete with costs.
	for _, d := range offers {
		assert.NotEmpty(t, d.Name)
		assert.Greater(t, d.Cost, int64(0))
		assert.Greater(t, d.DurationWeeks, 0)
	}
}
