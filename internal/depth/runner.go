package depth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dexdepth/internal/metrics"
	"dexdepth/internal/model"
	"dexdepth/internal/quote"
)

// RunConfig holds runtime settings for an assessment run.
type RunConfig struct {
	Ladder     []uint64
	Thresholds Thresholds
	Workers    int
}

// Runner assesses a set of pools: validity facts, depth profile, score,
// verdict. Pools are independent, so profiling runs on a bounded worker
// pool with no shared mutable state.
type Runner struct {
	cfg      RunConfig
	registry *quote.Registry
	facts    *quote.FactsReader
	logger   *zap.Logger
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, registry *quote.Registry, facts *quote.FactsReader, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Runner{cfg: cfg, registry: registry, facts: facts, logger: logger}
}

// Run assesses every pool and returns one record per pool, in input order.
// Per-pool quote failures are data, not errors: a pool that cannot be
// probed still surfaces as a Reject with its reason. Only configuration
// problems (bad ladder, bad thresholds, unresolvable venue) abort the run,
// and those are caught before the first oracle call.
func (r *Runner) Run(ctx context.Context, pools []model.Pool) ([]model.Assessment, error) {
	if err := ValidateLadder(r.cfg.Ladder); err != nil {
		return nil, err
	}
	if err := r.cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	if len(pools) == 0 {
		return nil, fmt.Errorf("no pools to assess")
	}

	oracles := make([]quote.Oracle, len(pools))
	for i, pool := range pools {
		oracle, err := r.registry.ForPool(pool)
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", pool.Address, err)
		}
		oracles[i] = quote.Instrumented{Inner: oracle}
	}

	results := make([]model.Assessment, len(pools))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i := range pools {
		i := i
		g.Go(func() error {
			assessment, err := r.assessOne(gctx, oracles[i], pools[i])
			if err != nil {
				return err
			}
			results[i] = assessment
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *Runner) assessOne(ctx context.Context, oracle quote.Oracle, pool model.Pool) (model.Assessment, error) {
	assessment := model.Assessment{
		Address:    pool.Address,
		Pair:       pool.Pair(),
		Venue:      pool.Venue,
		AssessedAt: time.Now().UTC(),
	}

	facts, err := r.facts.Fetch(ctx, pool)
	if err != nil {
		if ctx.Err() != nil {
			return model.Assessment{}, ctx.Err()
		}
		r.logger.Warn("pool facts unavailable", zap.String("pool", pool.Address), zap.Error(err))
		assessment.FeeLabel = pool.FeeLabel()
		assessment.Category = model.CategoryReject
		assessment.Reason = fmt.Sprintf("validity facts unavailable: %v", err)
		r.record(assessment.Category)
		return assessment, nil
	}
	assessment.Facts = facts

	if pool.FeeReported && facts.ReportedFeePPM != nil {
		pool.FeePPM = *facts.ReportedFeePPM
	}
	assessment.FeeLabel = pool.FeeLabel()

	var profile model.DepthProfile
	if facts.Exists && facts.Initialized {
		profile, err = Profile(ctx, oracle, pool, r.cfg.Ladder)
		if err != nil {
			return model.Assessment{}, err
		}
	}

	score := Score(profile)
	category, reason := Categorize(facts, profile, score, r.cfg.Thresholds)

	assessment.Quotes = profile.Points
	assessment.MaxWorkingSize = profile.MaxWorkingSize
	assessment.ImpactAtMax = profile.ImpactAtMax
	assessment.LiquidityScore = score
	assessment.Category = category
	assessment.Reason = reason

	r.logger.Info("pool assessed",
		zap.String("pool", pool.Address),
		zap.String("pair", assessment.Pair),
		zap.String("venue", pool.Venue),
		zap.Uint64("max_working_size", profile.MaxWorkingSize),
		zap.Int("score", score),
		zap.String("category", string(category)),
		zap.String("reason", reason),
	)
	r.record(category)

	return assessment, nil
}

func (r *Runner) record(category model.Category) {
	metrics.PoolsAssessed.Inc()
	metrics.Verdicts.WithLabelValues(string(category)).Inc()
}
