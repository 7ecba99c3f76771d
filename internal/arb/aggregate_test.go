package arb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexdepth/internal/model"
)

func blockObs(block uint64, venue string, price float64) model.PriceObservation {
	return model.PriceObservation{
		Pair:   "WETH/USDC",
		Venue:  venue,
		FeePPM: 1500,
		Block:  block,
		Price:  price,
	}
}

func TestOpportunitiesOnePerBlock(t *testing.T) {
	// Three venues with a fat spread: several combinations clear the bar at
	// block 1, but the block must contribute exactly one opportunity.
	obs := []model.PriceObservation{
		blockObs(1, "pancake_v2", 100.0),
		blockObs(1, "uniswap_v3", 101.0),
		blockObs(1, "quickswap", 102.0),
		blockObs(2, "pancake_v2", 100.0),
		blockObs(2, "uniswap_v3", 100.5),
	}

	agg := Aggregator{FixedCost: 0.01}
	opps := agg.Opportunities(obs, 5000)

	require.Len(t, opps, 2)
	assert.Equal(t, uint64(1), opps[0].Block)
	assert.Equal(t, uint64(2), opps[1].Block)

	// Block 1 keeps the widest combination only.
	assert.Equal(t, "pancake_v2(1500)", opps[0].BuyVenue)
	assert.Equal(t, "quickswap(1500)", opps[0].SellVenue)
}

func TestRollupTotalsAndProjections(t *testing.T) {
	// Block 1: (0.005-0.003)*5000 - 0.01 = 9.99
	// Block 2: (0.010-0.003)*5000 - 0.01 = 34.99
	obs := []model.PriceObservation{
		blockObs(1, "pancake_v2", 100.0),
		blockObs(1, "uniswap_v3", 100.5),
		blockObs(2, "pancake_v2", 100.0),
		blockObs(2, "uniswap_v3", 101.0),
	}

	agg := Aggregator{FixedCost: 0.01, Span: 2 * time.Hour}
	rollup := agg.Rollup(obs, 5000)

	assert.Equal(t, float64(5000), rollup.TradeSize)
	assert.Equal(t, uint64(2), rollup.ProfitableCount)
	assert.InDelta(t, 44.98, rollup.TotalNet, 1e-9)
	assert.InDelta(t, 22.49, rollup.PerHour, 1e-9)
	assert.InDelta(t, 539.76, rollup.PerDay, 1e-9)
	assert.InDelta(t, 16192.8, rollup.PerMonth, 1e-6)

	pair, ok := rollup.Pairs["WETH/USDC"]
	require.True(t, ok)
	assert.Equal(t, uint64(2), pair.Blocks)
	assert.Equal(t, uint64(2), pair.ProfitableCount)
	assert.InDelta(t, 44.98, pair.TotalNet, 1e-9)
	assert.InDelta(t, 34.99, pair.MaxNet, 1e-9)
}

func TestRollupNoSpanNoProjections(t *testing.T) {
	obs := []model.PriceObservation{
		blockObs(1, "pancake_v2", 100.0),
		blockObs(1, "uniswap_v3", 100.5),
	}

	rollup := Aggregator{FixedCost: 0.01}.Rollup(obs, 5000)

	assert.Equal(t, uint64(1), rollup.ProfitableCount)
	assert.Zero(t, rollup.PerHour)
	assert.Zero(t, rollup.PerDay)
	assert.Zero(t, rollup.PerMonth)
}

func TestRollupSizesAreIndependent(t *testing.T) {
	// Margin is 0.2% of size; a $0.50 fixed cost sinks the small size while
	// the large one stays profitable.
	obs := []model.PriceObservation{
		blockObs(1, "pancake_v2", 100.0),
		blockObs(1, "uniswap_v3", 100.5),
	}

	agg := Aggregator{FixedCost: 0.5}
	rollups := agg.RollupSizes(obs, []float64{100, 5000})

	require.Len(t, rollups, 2)
	assert.Equal(t, uint64(0), rollups[0].ProfitableCount, "100-size run should find nothing")
	assert.Equal(t, uint64(1), rollups[1].ProfitableCount)
	assert.InDelta(t, 9.5, rollups[1].TotalNet, 1e-9)
}

func TestObservedSpan(t *testing.T) {
	obs := []model.PriceObservation{
		{Pair: "A/B", Block: 1, Price: 1, Timestamp: 1_700_000_000},
		{Pair: "A/B", Block: 2, Price: 1, Timestamp: 1_700_003_600},
		{Pair: "A/B", Block: 3, Price: 1},
	}

	assert.Equal(t, time.Hour, ObservedSpan(obs))
	assert.Zero(t, ObservedSpan(obs[:1]))
	assert.Zero(t, ObservedSpan(nil))
}
