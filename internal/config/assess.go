package config

import (
	"time"

	"github.com/spf13/pflag"
)

// AssessConfig holds configuration for the assess command.
type AssessConfig struct {
	RPCURL            string
	PoolsFile         string
	Quoters           map[string]string
	Ladder            []uint64
	MinLiquidity      uint64
	AdmitSize         uint64
	AdmitImpactPct    float64
	RestrictImpactPct float64
	SmallTradeMin     uint64
	SmallTradeMax     uint64
	Workers           int
	QuoteDelay        time.Duration
	CallTimeout       time.Duration
	Out               string
	PGDSN             string
	MetricsAddr       string
	LogLevel          string
}

// LoadAssess merges config file, environment variables, and flags into
// AssessConfig, then validates it.
func LoadAssess(cfgFile string, flags *pflag.FlagSet) (AssessConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return AssessConfig{}, err
	}

	v.SetDefault("ladder", "1,10,100,1000,5000")
	v.SetDefault("min-liquidity", uint64(1000))
	v.SetDefault("admit-size", uint64(1000))
	v.SetDefault("admit-impact-pct", 5.0)
	v.SetDefault("restrict-impact-pct", 10.0)
	v.SetDefault("small-trade-min", uint64(10))
	v.SetDefault("small-trade-max", uint64(100))
	v.SetDefault("workers", 4)
	v.SetDefault("quote-delay", 200*time.Millisecond)
	v.SetDefault("call-timeout", 10*time.Second)
	v.SetDefault("out", "./data/assessments.jsonl")
	v.SetDefault("log-level", "info")

	ladder, err := parseUints("ladder", getStringSlice(v, "ladder"))
	if err != nil {
		return AssessConfig{}, err
	}

	cfg := AssessConfig{
		RPCURL:            v.GetString("rpc"),
		PoolsFile:         v.GetString("pools"),
		Quoters:           getStringMap(v, "quoter"),
		Ladder:            ladder,
		MinLiquidity:      v.GetUint64("min-liquidity"),
		AdmitSize:         v.GetUint64("admit-size"),
		AdmitImpactPct:    v.GetFloat64("admit-impact-pct"),
		RestrictImpactPct: v.GetFloat64("restrict-impact-pct"),
		SmallTradeMin:     v.GetUint64("small-trade-min"),
		SmallTradeMax:     v.GetUint64("small-trade-max"),
		Workers:           v.GetInt("workers"),
		QuoteDelay:        v.GetDuration("quote-delay"),
		CallTimeout:       v.GetDuration("call-timeout"),
		Out:               v.GetString("out"),
		PGDSN:             v.GetString("pg-dsn"),
		MetricsAddr:       v.GetString("metrics-addr"),
		LogLevel:          v.GetString("log-level"),
	}

	if err := cfg.Validate(); err != nil {
		return AssessConfig{}, err
	}
	return cfg, nil
}

// Validate runs the pre-flight checks. Everything here fails before the
// first RPC call is made.
func (c AssessConfig) Validate() error {
	if c.RPCURL == "" {
		return invalid("rpc", "required")
	}
	if c.PoolsFile == "" {
		return invalid("pools", "required")
	}
	if len(c.Ladder) < 2 {
		return invalid("ladder", "need at least two probe sizes, got %d", len(c.Ladder))
	}
	for i := 1; i < len(c.Ladder); i++ {
		if c.Ladder[i] <= c.Ladder[i-1] {
			return invalid("ladder", "sizes must be strictly ascending")
		}
	}
	if c.Ladder[0] == 0 {
		return invalid("ladder", "sizes must be positive")
	}
	if c.Workers < 1 {
		return invalid("workers", "must be at least 1")
	}
	if err := positiveDuration("quote-delay", c.QuoteDelay); err != nil {
		return err
	}
	if c.CallTimeout <= 0 {
		return invalid("call-timeout", "must be positive")
	}
	if c.Out == "" && c.PGDSN == "" {
		return invalid("out", "need at least one sink: --out or --pg-dsn")
	}
	return nil
}
