package model

import (
	"fmt"
	"math/big"
	"strings"
)

// VenueKind selects the quoting strategy for a pool.
type VenueKind string

const (
	// VenueConstantProduct covers V2-style pools quoted from reserves.
	VenueConstantProduct VenueKind = "constant_product"
	// VenueQuoterV1 covers Uniswap V3 style venues with the five-argument
	// quoteExactInputSingle (explicit fee parameter).
	VenueQuoterV1 VenueKind = "quoter_v1"
	// VenueAlgebra covers Algebra-style venues whose quoter takes no fee
	// parameter and reports the fee in its return value.
	VenueAlgebra VenueKind = "algebra"
)

// ParseVenueKind maps a free-form venue label to a VenueKind.
// Matching is case-insensitive on well-known substrings; anything
// unrecognized is a configuration error.
func ParseVenueKind(label string) (VenueKind, error) {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "v2"):
		return VenueConstantProduct, nil
	case strings.Contains(l, "algebra"), strings.Contains(l, "quickswap"):
		return VenueAlgebra, nil
	case strings.Contains(l, "sushi"), strings.Contains(l, "uniswap"), strings.Contains(l, "v3"):
		return VenueQuoterV1, nil
	default:
		return "", fmt.Errorf("unknown venue label: %q", label)
	}
}

// Pool identifies one venue's market for a pair. Immutable once discovered;
// reserve/liquidity state is re-queried per assessment, never stored here.
type Pool struct {
	Venue   string    `json:"venue"`
	Kind    VenueKind `json:"kind"`
	Address string    `json:"address"`
	Base    Asset     `json:"base"`
	Quote   Asset     `json:"quote"`
	// FeePPM is the proportional fee in parts per million (3000 = 0.30%).
	// For Algebra venues this is advisory; the quoter reports the live fee.
	FeePPM      uint32 `json:"fee_ppm"`
	FeeReported bool   `json:"fee_reported"`
}

// Pair returns the BASE/QUOTE pair label.
func (p Pool) Pair() string {
	return p.Base.Symbol + "/" + p.Quote.Symbol
}

// FeeLabel renders the fee tier for reports, e.g. "0.30%".
func (p Pool) FeeLabel() string {
	if p.FeeReported {
		return "dyn"
	}
	return fmt.Sprintf("%.2f%%", float64(p.FeePPM)/10_000)
}

// PoolFacts holds on-chain validity state read at assessment time.
type PoolFacts struct {
	Exists      bool     `json:"exists"`
	Initialized bool     `json:"initialized"`
	Liquidity   *big.Int `json:"-"`
	// ReportedFeePPM is set when the venue exposes a live fee reading.
	ReportedFeePPM *uint32 `json:"reported_fee_ppm,omitempty"`
}
