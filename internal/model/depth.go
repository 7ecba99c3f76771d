package model

import "math/big"

// QuotePoint records the outcome of one oracle probe.
// Succeeded=false covers reverts, transport failures, and zero output alike.
type QuotePoint struct {
	SizeUnits uint64   `json:"size_units"`
	AmountOut *big.Int `json:"-"`
	RawOut    string   `json:"raw_out,omitempty"`
	Succeeded bool     `json:"succeeded"`
}

// DepthProfile is the result of probing one pool across the size ladder.
//
// BaselineRate is output-per-raw-input at the smallest ladder size and is nil
// when that probe failed; ImpactAtMax is nil whenever fewer than two probes
// succeeded. Nil means "no evidence", which is distinct from zero.
type DepthProfile struct {
	Points         []QuotePoint `json:"points"`
	MaxWorkingSize uint64       `json:"max_working_size"`
	BaselineRate   *float64     `json:"baseline_rate,omitempty"`
	ImpactAtMax    *float64     `json:"impact_at_max,omitempty"`
}

// SucceededCount returns how many ladder probes succeeded.
func (p DepthProfile) SucceededCount() int {
	n := 0
	for _, pt := range p.Points {
		if pt.Succeeded {
			n++
		}
	}
	return n
}

// SmallestSucceeded reports whether the smallest ladder size succeeded.
func (p DepthProfile) SmallestSucceeded() bool {
	return len(p.Points) > 0 && p.Points[0].Succeeded
}
