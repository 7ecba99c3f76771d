package model

import "strconv"

// PriceObservation is one point-in-time execution price for a pool at an
// observation block. Produced by the price logger; read-only here.
type PriceObservation struct {
	Pair      string  `json:"pair"`
	Venue     string  `json:"venue"`
	FeePPM    uint32  `json:"fee_ppm"`
	Block     uint64  `json:"block"`
	Price     float64 `json:"price"`
	Timestamp uint64  `json:"timestamp,omitempty"`
}

// VenueLabel renders venue plus fee tier, e.g. "uniswap_v3(500)".
// Used as the route label in opportunity output.
func (o PriceObservation) VenueLabel() string {
	return o.Venue + "(" + strconv.FormatUint(uint64(o.FeePPM), 10) + ")"
}
