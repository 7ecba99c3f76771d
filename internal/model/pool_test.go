package model

import "testing"

func TestParseVenueKind(t *testing.T) {
	cases := []struct {
		label string
		want  VenueKind
	}{
		{"pancake_v2", VenueConstantProduct},
		{"SushiSwap_V2", VenueConstantProduct},
		{"uniswap_v3", VenueQuoterV1},
		{"sushiswap", VenueQuoterV1},
		{"quickswap", VenueAlgebra},
		{"algebra_integral", VenueAlgebra},
	}

	for _, tc := range cases {
		got, err := ParseVenueKind(tc.label)
		if err != nil {
			t.Fatalf("ParseVenueKind(%q): unexpected error: %v", tc.label, err)
		}
		if got != tc.want {
			t.Fatalf("ParseVenueKind(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestParseVenueKindUnknown(t *testing.T) {
	if _, err := ParseVenueKind("curve"); err == nil {
		t.Fatalf("expected error for unknown venue label")
	}
}

func TestPoolPairAndFeeLabel(t *testing.T) {
	pool := Pool{
		Base:   Asset{Symbol: "WETH"},
		Quote:  Asset{Symbol: "USDC"},
		FeePPM: 3000,
	}

	if got := pool.Pair(); got != "WETH/USDC" {
		t.Fatalf("Pair() = %q", got)
	}
	if got := pool.FeeLabel(); got != "0.30%" {
		t.Fatalf("FeeLabel() = %q", got)
	}

	pool.FeeReported = true
	if got := pool.FeeLabel(); got != "dyn" {
		t.Fatalf("FeeLabel() with reported fee = %q", got)
	}
}

func TestVenueLabel(t *testing.T) {
	o := PriceObservation{Venue: "uniswap_v3", FeePPM: 500}
	if got := o.VenueLabel(); got != "uniswap_v3(500)" {
		t.Fatalf("VenueLabel() = %q", got)
	}
}
