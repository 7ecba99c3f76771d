package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexdepth/internal/model"
)

func obsAt(venue string, feePPM uint32, price float64) model.PriceObservation {
	return model.PriceObservation{
		Pair:   "WETH/USDC",
		Venue:  venue,
		FeePPM: feePPM,
		Block:  100,
		Price:  price,
	}
}

func TestBestOpportunitySpreadCoversCosts(t *testing.T) {
	// 0.5% spread, 0.30% round-trip fees, $0.01 gas at $5000:
	// (0.005 - 0.003) * 5000 - 0.01 = 9.99.
	obs := []model.PriceObservation{
		obsAt("pancake_v2", 1500, 100.00),
		obsAt("uniswap_v3", 1500, 100.50),
	}

	opp, ok := BestOpportunity(obs, 5000, 0.01)
	require.True(t, ok)

	assert.Equal(t, "pancake_v2(1500)", opp.BuyVenue)
	assert.Equal(t, "uniswap_v3(1500)", opp.SellVenue)
	assert.InDelta(t, 0.005, opp.MidmarketSpread, 1e-12)
	assert.InDelta(t, 0.003, opp.RoundTripFee, 1e-12)
	assert.InDelta(t, 9.99, opp.NetProfit, 1e-9)
	assert.Equal(t, uint64(100), opp.Block)
	assert.Equal(t, "WETH/USDC", opp.Pair)
}

func TestBestOpportunityNeedsTwoPricedVenues(t *testing.T) {
	_, ok := BestOpportunity([]model.PriceObservation{obsAt("uniswap_v3", 500, 100)}, 5000, 0)
	assert.False(t, ok, "one venue is not an opportunity")

	_, ok = BestOpportunity([]model.PriceObservation{
		obsAt("uniswap_v3", 500, 100),
		obsAt("pancake_v2", 2500, 0),
	}, 5000, 0)
	assert.False(t, ok, "a zero price does not count as a venue")

	_, ok = BestOpportunity(nil, 5000, 0)
	assert.False(t, ok)
}

func TestBestOpportunityFeesEatThinSpreads(t *testing.T) {
	obs := []model.PriceObservation{
		obsAt("pancake_v2", 1500, 100.00),
		obsAt("uniswap_v3", 1500, 100.10),
	}

	_, ok := BestOpportunity(obs, 5000, 0.01)
	assert.False(t, ok, "a 0.1 percent spread cannot cover 0.30 percent fees")
}

func TestBestOpportunityPicksWidestNet(t *testing.T) {
	obs := []model.PriceObservation{
		obsAt("pancake_v2", 1500, 100.0),
		obsAt("uniswap_v3", 1500, 100.5),
		obsAt("quickswap", 1500, 102.0),
	}

	opp, ok := BestOpportunity(obs, 5000, 0.01)
	require.True(t, ok)

	assert.Equal(t, "pancake_v2(1500)", opp.BuyVenue)
	assert.Equal(t, "quickswap(1500)", opp.SellVenue)
}

func TestBestOpportunityTieKeepsFirstFound(t *testing.T) {
	obs := []model.PriceObservation{
		obsAt("pancake_v2", 1500, 100.0),
		obsAt("uniswap_v3", 1500, 101.0),
		obsAt("quickswap", 1500, 101.0),
	}

	opp, ok := BestOpportunity(obs, 5000, 0.01)
	require.True(t, ok)

	// (pancake, uniswap) and (pancake, quickswap) net the same; the first
	// enumerated combination wins.
	assert.Equal(t, "uniswap_v3(1500)", opp.SellVenue)
}
