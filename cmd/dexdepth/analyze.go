package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dexdepth/internal/arb"
	"dexdepth/internal/config"
	"dexdepth/internal/model"
	"dexdepth/internal/storage/postgres"
)

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAnalyze(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := arb.LoadObservations(cfg.In)
	if err != nil {
		return err
	}

	span := time.Duration(cfg.Hours * float64(time.Hour))
	if span <= 0 {
		span = arb.ObservedSpan(obs)
	}

	logger.Info("analyze start",
		zap.String("in", cfg.In),
		zap.Int("observations", len(obs)),
		zap.Float64s("trade_sizes", cfg.TradeSizes),
		zap.Float64("fixed_cost", cfg.FixedCost),
		zap.Duration("span", span),
	)

	agg := arb.Aggregator{FixedCost: cfg.FixedCost, Span: span}
	rollups := agg.RollupSizes(obs, cfg.TradeSizes)

	printRollups(rollups)

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.UpsertSizeRollups(ctx, rollups); err != nil {
			return fmt.Errorf("store rollups: %w", err)
		}
	}

	return nil
}

func printRollups(rollups []model.SizeRollup) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tPROFITABLE\tTOTAL NET\tPER HOUR\tPER DAY\tPER MONTH")
	for _, r := range rollups {
		fmt.Fprintf(w, "%.0f\t%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
			r.TradeSize, r.ProfitableCount, r.TotalNet, r.PerHour, r.PerDay, r.PerMonth)
	}
	w.Flush()

	for _, r := range rollups {
		if len(r.Pairs) == 0 {
			continue
		}
		pairs := make([]model.PairRollup, 0, len(r.Pairs))
		for _, p := range r.Pairs {
			pairs = append(pairs, p)
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].TotalNet > pairs[j].TotalNet })

		fmt.Printf("\nsize %.0f by pair:\n", r.TradeSize)
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PAIR\tBLOCKS\tPROFITABLE\tTOTAL NET\tMAX NET")
		for _, p := range pairs {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.2f\n",
				p.Pair, p.Blocks, p.ProfitableCount, p.TotalNet, p.MaxNet)
		}
		w.Flush()
	}
}
