package quote

import (
	"context"
	"math/big"
	"time"

	"dexdepth/internal/metrics"
	"dexdepth/internal/model"
)

// Instrumented wraps an Oracle with latency and failure metrics.
type Instrumented struct {
	Inner Oracle
}

func (i Instrumented) Quote(ctx context.Context, pool model.Pool, amountIn *big.Int) (*big.Int, error) {
	start := time.Now()
	out, err := i.Inner.Quote(ctx, pool, amountIn)
	metrics.QuoteLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.QuoteFailures.Inc()
	}
	return out, err
}
