package config

import (
	"github.com/spf13/pflag"
)

// AnalyzeConfig holds configuration for the analyze command.
type AnalyzeConfig struct {
	In         string
	TradeSizes []float64
	FixedCost  float64
	Hours      float64
	PGDSN      string
	LogLevel   string
}

// LoadAnalyze merges config file, environment variables, and flags into
// AnalyzeConfig, then validates it.
func LoadAnalyze(cfgFile string, flags *pflag.FlagSet) (AnalyzeConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return AnalyzeConfig{}, err
	}

	v.SetDefault("trade-sizes", "500,1000,5000")
	v.SetDefault("fixed-cost", 0.01)
	v.SetDefault("log-level", "info")

	sizes, err := parseFloats("trade-sizes", getStringSlice(v, "trade-sizes"))
	if err != nil {
		return AnalyzeConfig{}, err
	}

	cfg := AnalyzeConfig{
		In:         v.GetString("in"),
		TradeSizes: sizes,
		FixedCost:  v.GetFloat64("fixed-cost"),
		Hours:      v.GetFloat64("hours"),
		PGDSN:      v.GetString("pg-dsn"),
		LogLevel:   v.GetString("log-level"),
	}

	if err := cfg.Validate(); err != nil {
		return AnalyzeConfig{}, err
	}
	return cfg, nil
}

// Validate runs the pre-flight checks for an analysis run.
func (c AnalyzeConfig) Validate() error {
	if c.In == "" {
		return invalid("in", "required")
	}
	if len(c.TradeSizes) == 0 {
		return invalid("trade-sizes", "need at least one trade size")
	}
	for _, size := range c.TradeSizes {
		if size <= 0 {
			return invalid("trade-sizes", "sizes must be positive, got %v", size)
		}
	}
	if c.FixedCost < 0 {
		return invalid("fixed-cost", "must not be negative")
	}
	if c.Hours < 0 {
		return invalid("hours", "must not be negative")
	}
	return nil
}
