package model

import "time"

// Category is the three-way admission verdict for a pool.
type Category string

const (
	CategoryAdmit      Category = "admit"
	CategoryRestricted Category = "restricted"
	CategoryReject     Category = "reject"
)

// Assessment is the full output record for one assessed pool. This is the
// payload whitelist/blacklist updates are made from downstream.
type Assessment struct {
	Address        string       `json:"address"`
	Pair           string       `json:"pair"`
	Venue          string       `json:"venue"`
	FeeLabel       string       `json:"fee_label"`
	Facts          PoolFacts    `json:"facts"`
	Quotes         []QuotePoint `json:"quotes"`
	MaxWorkingSize uint64       `json:"max_working_size"`
	ImpactAtMax    *float64     `json:"impact_at_max,omitempty"`
	LiquidityScore int          `json:"liquidity_score"`
	Category       Category     `json:"category"`
	Reason         string       `json:"reason"`
	AssessedAt     time.Time    `json:"assessed_at"`
}
