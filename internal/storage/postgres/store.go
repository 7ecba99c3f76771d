package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dexdepth/internal/model"
)

// Store provides Postgres persistence for assessments and rollups.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutAssessments inserts or updates assessment records keyed by pool address.
// A re-run of the same pool replaces the previous verdict.
func (s *Store) PutAssessments(ctx context.Context, assessments []model.Assessment) error {
	if len(assessments) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range assessments {
		var liquidity *string
		if a.Facts.Liquidity != nil {
			v := a.Facts.Liquidity.String()
			liquidity = &v
		}
		batch.Queue(`
			INSERT INTO pool_assessments (
				pool_address, pair, venue, fee_label, pool_exists, initialized, liquidity,
				max_working_size, impact_at_max, liquidity_score, category, reason,
				assessed_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now(),now())
			ON CONFLICT (pool_address)
			DO UPDATE SET
				pair = EXCLUDED.pair,
				venue = EXCLUDED.venue,
				fee_label = EXCLUDED.fee_label,
				pool_exists = EXCLUDED.pool_exists,
				initialized = EXCLUDED.initialized,
				liquidity = EXCLUDED.liquidity,
				max_working_size = EXCLUDED.max_working_size,
				impact_at_max = EXCLUDED.impact_at_max,
				liquidity_score = EXCLUDED.liquidity_score,
				category = EXCLUDED.category,
				reason = EXCLUDED.reason,
				assessed_at = EXCLUDED.assessed_at,
				updated_at = now()
		`,
			a.Address,
			a.Pair,
			a.Venue,
			a.FeeLabel,
			a.Facts.Exists,
			a.Facts.Initialized,
			liquidity,
			int64(a.MaxWorkingSize),
			a.ImpactAtMax,
			a.LiquidityScore,
			string(a.Category),
			a.Reason,
			a.AssessedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range assessments {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertSizeRollups inserts or updates per-size rollups and their per-pair
// breakdowns from one analysis run.
func (s *Store) UpsertSizeRollups(ctx context.Context, rollups []model.SizeRollup) error {
	if len(rollups) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	queued := 0
	for _, r := range rollups {
		batch.Queue(`
			INSERT INTO arb_size_rollups (
				trade_size, profitable_count, total_net, per_hour, per_day, per_month,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,now(),now())
			ON CONFLICT (trade_size)
			DO UPDATE SET
				profitable_count = EXCLUDED.profitable_count,
				total_net = EXCLUDED.total_net,
				per_hour = EXCLUDED.per_hour,
				per_day = EXCLUDED.per_day,
				per_month = EXCLUDED.per_month,
				updated_at = now()
		`,
			r.TradeSize,
			int64(r.ProfitableCount),
			r.TotalNet,
			r.PerHour,
			r.PerDay,
			r.PerMonth,
		)
		queued++

		for _, p := range r.Pairs {
			batch.Queue(`
				INSERT INTO arb_pair_rollups (
					trade_size, pair, blocks, profitable_count, total_net, max_net,
					created_at, updated_at
				) VALUES ($1,$2,$3,$4,$5,$6,now(),now())
				ON CONFLICT (trade_size, pair)
				DO UPDATE SET
					blocks = EXCLUDED.blocks,
					profitable_count = EXCLUDED.profitable_count,
					total_net = EXCLUDED.total_net,
					max_net = EXCLUDED.max_net,
					updated_at = now()
			`,
				r.TradeSize,
				p.Pair,
				int64(p.Blocks),
				int64(p.ProfitableCount),
				p.TotalNet,
				p.MaxNet,
			)
			queued++
		}
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
