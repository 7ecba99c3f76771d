package quote

import (
	"math/big"
	"testing"
)

func TestAmountOutExact(t *testing.T) {
	// 1000 in against balanced 1e6/1e6 reserves at 0.3%:
	// floor(1000*997*1e6 / (1e6*1000 + 1000*997)) = 996.
	out := AmountOut(big.NewInt(1000), big.NewInt(1_000_000), big.NewInt(1_000_000), 3)
	if out.Cmp(big.NewInt(996)) != 0 {
		t.Fatalf("AmountOut = %s, want 996", out)
	}
}

func TestAmountOutRealisticDecimals(t *testing.T) {
	// 1,000,000 USDC (6dp) vs 400 WETH (18dp), $1 in at 0.3% fee.
	// Mid price is 0.0004 WETH per USDC; the output lands just below
	// 0.0004 * 0.997 = 0.0003988 WETH.
	usdcReserve, _ := new(big.Int).SetString("1000000000000", 10)
	wethReserve, _ := new(big.Int).SetString("400000000000000000000", 10)
	oneUSDC := big.NewInt(1_000_000)

	out := AmountOut(oneUSDC, usdcReserve, wethReserve, 3)

	lo, _ := new(big.Int).SetString("398700000000000", 10)
	hi, _ := new(big.Int).SetString("398800000000000", 10)
	if out.Cmp(lo) <= 0 || out.Cmp(hi) > 0 {
		t.Fatalf("AmountOut = %s, want in (%s, %s]", out, lo, hi)
	}
}

func TestAmountOutVoidInputs(t *testing.T) {
	reserve := big.NewInt(1_000_000)

	if out := AmountOut(nil, reserve, reserve, 3); out.Sign() != 0 {
		t.Fatalf("nil input should yield zero, got %s", out)
	}
	if out := AmountOut(big.NewInt(0), reserve, reserve, 3); out.Sign() != 0 {
		t.Fatalf("zero input should yield zero, got %s", out)
	}
	if out := AmountOut(big.NewInt(1000), big.NewInt(0), reserve, 3); out.Sign() != 0 {
		t.Fatalf("empty reserve should yield zero, got %s", out)
	}
	if out := AmountOut(big.NewInt(1000), reserve, reserve, 1000); out.Sign() != 0 {
		t.Fatalf("100%% fee should yield zero, got %s", out)
	}
}

func TestAmountOutRateDegradesWithSize(t *testing.T) {
	reserveIn := big.NewInt(1_000_000_000)
	reserveOut := big.NewInt(2_000_000_000)

	prevRate := 0.0
	for i, size := range []int64{1_000, 100_000, 10_000_000, 500_000_000} {
		out := AmountOut(big.NewInt(size), reserveIn, reserveOut, 3)
		rate := float64(out.Int64()) / float64(size)
		if i > 0 && rate >= prevRate {
			t.Fatalf("rate must degrade with size: %v then %v at size %d", prevRate, rate, size)
		}
		prevRate = rate
	}
}

func TestFeePerMille(t *testing.T) {
	cases := []struct {
		ppm  uint32
		want uint32
	}{
		{3000, 3},
		{2500, 2},
		{10_000, 10},
		{0, 0},
	}
	for _, tc := range cases {
		if got := feePerMille(tc.ppm); got != tc.want {
			t.Fatalf("feePerMille(%d) = %d, want %d", tc.ppm, got, tc.want)
		}
	}
}
