package depth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/big"

	"dexdepth/internal/model"
	"dexdepth/internal/quote"
)

// ErrLadderInvalid marks a malformed probe ladder. A configuration error:
// it aborts the run before any oracle call.
var ErrLadderInvalid = errors.New("invalid probe ladder")

// ValidateLadder checks the probe size ladder: at least two sizes, strictly
// ascending, all positive.
func ValidateLadder(ladder []uint64) error {
	if len(ladder) < 2 {
		return fmt.Errorf("%w: need at least two sizes, got %d", ErrLadderInvalid, len(ladder))
	}
	for i, size := range ladder {
		if size == 0 {
			return fmt.Errorf("%w: size at index %d is zero", ErrLadderInvalid, i)
		}
		if i > 0 && size <= ladder[i-1] {
			return fmt.Errorf("%w: sizes must be strictly ascending, got %d then %d", ErrLadderInvalid, ladder[i-1], size)
		}
	}
	return nil
}

// Profile probes one pool across the ladder and assembles its depth profile.
//
// Every size is probed even after a failure: dynamic-fee venues have been
// observed to fail at one size and succeed at a larger one, and the failed
// points belong in the profile. The baseline rate comes only from the
// smallest ladder size; if that probe fails there is no baseline and the
// impact stays undefined no matter what larger probes return.
func Profile(ctx context.Context, oracle quote.Oracle, pool model.Pool, ladder []uint64) (model.DepthProfile, error) {
	if err := ValidateLadder(ladder); err != nil {
		return model.DepthProfile{}, err
	}

	profile := model.DepthProfile{Points: make([]model.QuotePoint, 0, len(ladder))}

	for _, size := range ladder {
		amountIn := pool.Quote.Raw(size)
		point := model.QuotePoint{SizeUnits: size}

		out, err := oracle.Quote(ctx, pool, amountIn)
		if err == nil && out != nil && out.Sign() > 0 {
			point.Succeeded = true
			point.AmountOut = out
			point.RawOut = out.String()
		}
		profile.Points = append(profile.Points, point)

		if point.Succeeded && size > profile.MaxWorkingSize {
			profile.MaxWorkingSize = size
		}
	}

	if profile.SmallestSucceeded() {
		rate := executionRate(profile.Points[0], pool)
		profile.BaselineRate = &rate
	}

	profile.ImpactAtMax = impactAtMax(profile, pool)
	return profile, nil
}

// impactAtMax scans from the top of the ladder down for the largest
// successful probe and compares its rate against the baseline. Nil without a
// baseline or a second successful point: one point is no evidence of impact.
func impactAtMax(profile model.DepthProfile, pool model.Pool) *float64 {
	if profile.BaselineRate == nil || *profile.BaselineRate <= 0 {
		return nil
	}
	for i := len(profile.Points) - 1; i > 0; i-- {
		point := profile.Points[i]
		if !point.Succeeded {
			continue
		}
		rate := executionRate(point, pool)
		impact := math.Abs(1-rate / *profile.BaselineRate) * 100
		return &impact
	}
	return nil
}

// executionRate is raw output per raw input at one probe point. Float is
// fine here: the rate only feeds the reported impact percentage, never the
// swap math itself.
func executionRate(point model.QuotePoint, pool model.Pool) float64 {
	amountIn := pool.Quote.Raw(point.SizeUnits)
	in, _ := new(big.Float).SetInt(amountIn).Float64()
	out, _ := new(big.Float).SetInt(point.AmountOut).Float64()
	if in == 0 {
		return 0
	}
	return out / in
}
