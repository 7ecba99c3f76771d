package arb

import (
	"sort"
	"time"

	"dexdepth/internal/model"
)

// blockKey identifies one snapshot of one pair.
type blockKey struct {
	Pair  string
	Block uint64
}

// Aggregator turns raw price observations into deduplicated opportunities
// and per-pair / per-size rollups. Span is the wall-clock length of the
// observation window and drives the rate projections; a non-positive span
// leaves the projections at zero.
type Aggregator struct {
	FixedCost float64
	Span      time.Duration
}

// groupByBlock buckets observations by (pair, block), preserving input
// order inside each bucket so tie-breaks stay deterministic.
func groupByBlock(obs []model.PriceObservation) map[blockKey][]model.PriceObservation {
	groups := make(map[blockKey][]model.PriceObservation)
	for _, o := range obs {
		k := blockKey{Pair: o.Pair, Block: o.Block}
		groups[k] = append(groups[k], o)
	}
	return groups
}

// Opportunities returns at most one opportunity per (pair, block): the best
// venue combination at that snapshot. A block where several combinations
// clear the bar contributes a single entry, so a fat spread across three
// venues is not triple-counted. Results are sorted by pair then block.
func (a Aggregator) Opportunities(obs []model.PriceObservation, tradeSize float64) []model.Opportunity {
	groups := groupByBlock(obs)

	opps := make([]model.Opportunity, 0, len(groups))
	for _, group := range groups {
		if opp, ok := BestOpportunity(group, tradeSize, a.FixedCost); ok {
			opps = append(opps, opp)
		}
	}

	sort.Slice(opps, func(i, j int) bool {
		if opps[i].Pair != opps[j].Pair {
			return opps[i].Pair < opps[j].Pair
		}
		return opps[i].Block < opps[j].Block
	})
	return opps
}

// Rollup runs detection at one trade size and folds the results into
// per-pair and whole-run totals with time-normalized projections.
func (a Aggregator) Rollup(obs []model.PriceObservation, tradeSize float64) model.SizeRollup {
	groups := groupByBlock(obs)

	blocksPerPair := make(map[string]uint64)
	for k := range groups {
		blocksPerPair[k.Pair]++
	}

	rollup := model.SizeRollup{
		TradeSize: tradeSize,
		Pairs:     make(map[string]model.PairRollup),
	}

	for _, opp := range a.Opportunities(obs, tradeSize) {
		pr := rollup.Pairs[opp.Pair]
		pr.Pair = opp.Pair
		pr.Blocks = blocksPerPair[opp.Pair]
		pr.ProfitableCount++
		pr.TotalNet += opp.NetProfit
		if opp.NetProfit > pr.MaxNet {
			pr.MaxNet = opp.NetProfit
		}
		rollup.Pairs[opp.Pair] = pr

		rollup.ProfitableCount++
		rollup.TotalNet += opp.NetProfit
	}

	if hours := a.Span.Hours(); hours > 0 {
		rollup.PerHour = rollup.TotalNet / hours
		rollup.PerDay = rollup.PerHour * 24
		rollup.PerMonth = rollup.PerDay * 30
	}

	return rollup
}

// RollupSizes re-runs the whole detection once per trade size. Sizes are
// independent: an opportunity profitable at $500 may be underwater at
// $5000 once the fixed cost and fee drag scale differently.
func (a Aggregator) RollupSizes(obs []model.PriceObservation, tradeSizes []float64) []model.SizeRollup {
	rollups := make([]model.SizeRollup, 0, len(tradeSizes))
	for _, size := range tradeSizes {
		rollups = append(rollups, a.Rollup(obs, size))
	}
	return rollups
}

// ObservedSpan derives the observation window from the earliest and latest
// unix timestamps. Zero when fewer than two observations carry timestamps.
func ObservedSpan(obs []model.PriceObservation) time.Duration {
	var first, last uint64
	for _, o := range obs {
		if o.Timestamp == 0 {
			continue
		}
		if first == 0 || o.Timestamp < first {
			first = o.Timestamp
		}
		if o.Timestamp > last {
			last = o.Timestamp
		}
	}
	if first == 0 || last <= first {
		return 0
	}
	return time.Duration(last-first) * time.Second
}
