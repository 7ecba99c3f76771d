package depth

import (
	"fmt"
	"math/big"

	"dexdepth/internal/model"
)

// Thresholds parameterizes the admission decision. Different callers
// legitimately run different admission sizes (500 vs 1000), so nothing in
// the decision list is hard-coded.
type Thresholds struct {
	// MinLiquidity is the on-chain liquidity floor below which a pool is
	// rejected outright.
	MinLiquidity *big.Int
	// AdmitSize is the working size (in reference units) a pool must reach
	// for admission.
	AdmitSize uint64
	// AdmitImpactPct is the impact ceiling (percent) for a clean admit.
	AdmitImpactPct float64
	// RestrictImpactPct is the looser ceiling for restricted admission.
	RestrictImpactPct float64
	// SmallTradeMin/Max bound the band in which a pool can still be
	// restricted as a small-trade-only venue.
	SmallTradeMin uint64
	SmallTradeMax uint64
}

// Validate rejects threshold sets that cannot produce a coherent decision.
func (t Thresholds) Validate() error {
	if t.AdmitSize == 0 {
		return fmt.Errorf("admission size must be positive")
	}
	if t.AdmitImpactPct <= 0 || t.RestrictImpactPct < t.AdmitImpactPct {
		return fmt.Errorf("impact ceilings must satisfy 0 < admit <= restrict, got %.2f/%.2f", t.AdmitImpactPct, t.RestrictImpactPct)
	}
	if t.SmallTradeMin == 0 || t.SmallTradeMax < t.SmallTradeMin {
		return fmt.Errorf("small-trade band must satisfy 0 < min <= max, got %d/%d", t.SmallTradeMin, t.SmallTradeMax)
	}
	return nil
}

// DefaultThresholds matches the common assessment profile.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinLiquidity:      big.NewInt(1000),
		AdmitSize:         1000,
		AdmitImpactPct:    5,
		RestrictImpactPct: 10,
		SmallTradeMin:     10,
		SmallTradeMax:     100,
	}
}

// Categorize runs the ordered admission decision list. Pure: the same facts,
// profile, score, and thresholds always yield the same verdict, and no prior
// verdict is remembered.
func Categorize(facts model.PoolFacts, profile model.DepthProfile, score int, th Thresholds) (model.Category, string) {
	if !facts.Exists {
		return model.CategoryReject, "pool does not exist"
	}
	if !facts.Initialized {
		return model.CategoryReject, "pool not initialized"
	}
	if th.MinLiquidity != nil && facts.Liquidity != nil && facts.Liquidity.Cmp(th.MinLiquidity) < 0 {
		return model.CategoryReject, fmt.Sprintf("on-chain liquidity %s below floor %s", facts.Liquidity, th.MinLiquidity)
	}

	maxSize := profile.MaxWorkingSize
	impact := profile.ImpactAtMax

	if maxSize == 0 {
		return model.CategoryReject, "all probe sizes failed"
	}

	if maxSize >= th.AdmitSize {
		switch {
		case impact == nil:
			// Succeeded at size without a baseline; no impact evidence.
			return model.CategoryReject, fmt.Sprintf("handles %d but smallest probe failed, impact unknown", maxSize)
		case *impact <= th.AdmitImpactPct:
			return model.CategoryAdmit, fmt.Sprintf("handles %d at %.1f%% impact, score=%d", maxSize, *impact, score)
		case *impact <= th.RestrictImpactPct:
			return model.CategoryRestricted, fmt.Sprintf("handles %d but with elevated impact (%.1f%%)", maxSize, *impact)
		default:
			return model.CategoryReject, fmt.Sprintf("impact unacceptable at target size: %.1f%% at %d", *impact, maxSize)
		}
	}

	if maxSize >= th.SmallTradeMin && maxSize <= th.SmallTradeMax {
		if impact != nil && *impact <= th.RestrictImpactPct {
			return model.CategoryRestricted, fmt.Sprintf("small-trade pool only: max %d at %.1f%% impact", maxSize, *impact)
		}
		if impact == nil {
			return model.CategoryReject, fmt.Sprintf("small-trade size %d with no impact evidence", maxSize)
		}
		return model.CategoryReject, fmt.Sprintf("high impact even at small size: %.1f%% at %d", *impact, maxSize)
	}

	return model.CategoryReject, fmt.Sprintf("insufficient depth: max working size %d", maxSize)
}
