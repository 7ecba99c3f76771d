package arb

import "dexdepth/internal/model"

// BestOpportunity finds the single best buy/sell venue combination among the
// concurrent observations of one pair at one block.
//
// For every unordered venue pair the higher-priced venue sells and the
// lower-priced one buys; the reverse direction is never favorable and is not
// evaluated. Fewer than two positively-priced venues yields no opportunity,
// which is a data condition, not an error. Exact net-profit ties keep the
// combination discovered first in enumeration order.
func BestOpportunity(obs []model.PriceObservation, tradeSize, fixedCost float64) (model.Opportunity, bool) {
	var (
		best  model.Opportunity
		found bool
	)

	for i := 0; i < len(obs); i++ {
		if obs[i].Price <= 0 {
			continue
		}
		for j := i + 1; j < len(obs); j++ {
			if obs[j].Price <= 0 {
				continue
			}

			sell, buy := obs[i], obs[j]
			if buy.Price > sell.Price {
				sell, buy = buy, sell
			}

			spread := (sell.Price - buy.Price) / buy.Price
			rtFee := roundTripFee(buy.FeePPM, sell.FeePPM)
			net := (spread-rtFee)*tradeSize - fixedCost
			if net <= 0 {
				continue
			}

			if !found || net > best.NetProfit {
				best = model.Opportunity{
					Pair:            buy.Pair,
					Block:           buy.Block,
					BuyVenue:        buy.VenueLabel(),
					SellVenue:       sell.VenueLabel(),
					MidmarketSpread: spread,
					RoundTripFee:    rtFee,
					NetProfit:       net,
					TradeSize:       tradeSize,
				}
				found = true
			}
		}
	}

	return best, found
}

// roundTripFee sums the proportional fees of both legs as a fraction.
func roundTripFee(buyFeePPM, sellFeePPM uint32) float64 {
	return float64(buyFeePPM+sellFeePPM) / 1_000_000
}
