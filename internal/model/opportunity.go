package model

// Opportunity is the best directed buy/sell combination for one pair at one
// observation block. Ephemeral: computed, ranked, and discarded.
type Opportunity struct {
	Pair            string  `json:"pair"`
	Block           uint64  `json:"block"`
	BuyVenue        string  `json:"buy_venue"`
	SellVenue       string  `json:"sell_venue"`
	MidmarketSpread float64 `json:"midmarket_spread"`
	RoundTripFee    float64 `json:"round_trip_fee"`
	NetProfit       float64 `json:"net_profit"`
	TradeSize       float64 `json:"trade_size"`
}

// PairRollup aggregates deduplicated opportunities for one pair.
type PairRollup struct {
	Pair            string  `json:"pair"`
	Blocks          uint64  `json:"blocks"`
	ProfitableCount uint64  `json:"profitable_count"`
	TotalNet        float64 `json:"total_net"`
	MaxNet          float64 `json:"max_net"`
}

// SizeRollup aggregates one full deduplicated run at a single trade size.
// Profitability is not linear in size, so each size gets its own run.
type SizeRollup struct {
	TradeSize       float64               `json:"trade_size"`
	ProfitableCount uint64                `json:"profitable_count"`
	TotalNet        float64               `json:"total_net"`
	PerHour         float64               `json:"per_hour"`
	PerDay          float64               `json:"per_day"`
	PerMonth        float64               `json:"per_month"`
	Pairs           map[string]PairRollup `json:"pairs"`
}
