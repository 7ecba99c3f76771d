package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "dexdepth",
		Short:        "DEX liquidity depth assessment and arbitrage analysis",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	assessCmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess pool depth and produce admission verdicts",
		RunE:  runAssess,
	}

	assessCmd.Flags().String("rpc", "", "chain RPC URL")
	assessCmd.Flags().String("pools", "", "pools file (JSON list of pools to assess)")
	assessCmd.Flags().String("quoter", "", "venue quoter addresses (comma-separated venue=address)")
	assessCmd.Flags().String("ladder", "1,10,100,1000,5000", "probe sizes in reference units (comma-separated, ascending)")
	assessCmd.Flags().Uint64("min-liquidity", 1000, "on-chain liquidity floor")
	assessCmd.Flags().Uint64("admit-size", 1000, "working size required for admission")
	assessCmd.Flags().Float64("admit-impact-pct", 5, "impact ceiling for a clean admit (percent)")
	assessCmd.Flags().Float64("restrict-impact-pct", 10, "impact ceiling for restricted admission (percent)")
	assessCmd.Flags().Uint64("small-trade-min", 10, "lower bound of the small-trade band")
	assessCmd.Flags().Uint64("small-trade-max", 100, "upper bound of the small-trade band")
	assessCmd.Flags().Int("workers", 4, "concurrent pool assessments")
	assessCmd.Flags().Duration("quote-delay", 200*time.Millisecond, "minimum delay between oracle calls")
	assessCmd.Flags().Duration("call-timeout", 10*time.Second, "per-call RPC timeout")
	assessCmd.Flags().String("out", "./data/assessments.jsonl", "output JSONL path")
	assessCmd.Flags().String("pg-dsn", "", "Postgres DSN (optional second sink)")
	assessCmd.Flags().String("metrics-addr", "", "metrics listen address, empty disables")
	assessCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(assessCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Detect and aggregate arbitrage opportunities from price observations",
		RunE:  runAnalyze,
	}

	analyzeCmd.Flags().String("in", "", "input price observations CSV")
	analyzeCmd.Flags().String("trade-sizes", "500,1000,5000", "trade sizes to analyze (comma-separated)")
	analyzeCmd.Flags().Float64("fixed-cost", 0.01, "fixed cost per round trip (gas, in quote units)")
	analyzeCmd.Flags().Float64("hours", 0, "observation window in hours, 0 derives it from timestamps")
	analyzeCmd.Flags().String("pg-dsn", "", "Postgres DSN for persisting rollups (optional)")
	analyzeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(analyzeCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
