package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dexdepth/internal/chain"
	"dexdepth/internal/config"
	"dexdepth/internal/depth"
	"dexdepth/internal/metrics"
	"dexdepth/internal/model"
	"dexdepth/internal/quote"
	"dexdepth/internal/storage"
	"dexdepth/internal/storage/postgres"
)

func runAssess(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAssess(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	pools, err := config.LoadPools(cfg.PoolsFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Serve(ctx, cfg.MetricsAddr, logger)

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("chain id: %w", err)
	}
	head, err := chainClient.LatestBlockNumber(ctx)
	if err != nil {
		return fmt.Errorf("latest block: %w", err)
	}
	logger.Info("connected", zap.String("chain_id", chainID.String()), zap.Uint64("head", head))

	pacer := quote.NewPacer(cfg.QuoteDelay)

	registry, err := quote.NewRegistry(chainClient, pacer, cfg.CallTimeout, cfg.Quoters)
	if err != nil {
		return err
	}
	factsReader, err := quote.NewFactsReader(chainClient, pacer, cfg.CallTimeout, logger)
	if err != nil {
		return err
	}

	if err := quote.ResolveDecimals(ctx, chainClient, pacer, cfg.CallTimeout, pools); err != nil {
		return err
	}

	runner := depth.NewRunner(depth.RunConfig{
		Ladder: cfg.Ladder,
		Thresholds: depth.Thresholds{
			MinLiquidity:      new(big.Int).SetUint64(cfg.MinLiquidity),
			AdmitSize:         cfg.AdmitSize,
			AdmitImpactPct:    cfg.AdmitImpactPct,
			RestrictImpactPct: cfg.RestrictImpactPct,
			SmallTradeMin:     cfg.SmallTradeMin,
			SmallTradeMax:     cfg.SmallTradeMax,
		},
		Workers: cfg.Workers,
	}, registry, factsReader, logger)

	sinks := storage.Multi{}
	if cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(cfg.Out))
	}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sinks = append(sinks, store)
	}

	logger.Info("assess start",
		zap.String("rpc", cfg.RPCURL),
		zap.Int("pools", len(pools)),
		zap.Uint64s("ladder", cfg.Ladder),
		zap.Int("workers", cfg.Workers),
		zap.String("out", cfg.Out),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	assessments, err := runner.Run(ctx, pools)
	if err != nil {
		return err
	}

	if err := sinks.PutAssessments(ctx, assessments); err != nil {
		return fmt.Errorf("store assessments: %w", err)
	}

	counts := map[model.Category]int{}
	for _, a := range assessments {
		counts[a.Category]++
	}
	logger.Info("assess done",
		zap.Int("assessed", len(assessments)),
		zap.Int("admit", counts[model.CategoryAdmit]),
		zap.Int("restricted", counts[model.CategoryRestricted]),
		zap.Int("reject", counts[model.CategoryReject]),
	)

	return nil
}
