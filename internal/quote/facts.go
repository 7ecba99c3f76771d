package quote

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"dexdepth/internal/model"
)

// FactsReader collects on-chain pool validity facts before depth probing.
type FactsReader struct {
	caller  ContractCaller
	pacer   *Pacer
	timeout time.Duration
	logger  *zap.Logger
}

func NewFactsReader(caller ContractCaller, pacer *Pacer, timeout time.Duration, logger *zap.Logger) (*FactsReader, error) {
	if err := loadABIs(); err != nil {
		return nil, fmt.Errorf("parse pool abi: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FactsReader{caller: caller, pacer: pacer, timeout: timeout, logger: logger}, nil
}

// Fetch reads existence, initialization, and liquidity for a pool. A pool
// with no deployed code short-circuits to "does not exist"; later reads are
// best effort and leave the corresponding fact at its zero value.
func (f *FactsReader) Fetch(ctx context.Context, pool model.Pool) (model.PoolFacts, error) {
	facts := model.PoolFacts{Liquidity: big.NewInt(0)}
	addr := common.HexToAddress(pool.Address)

	code, err := f.caller.CodeAt(ctx, addr)
	if err != nil {
		return facts, fmt.Errorf("code at %s: %w", pool.Address, err)
	}
	if len(code) == 0 {
		return facts, nil
	}
	facts.Exists = true

	switch pool.Kind {
	case model.VenueConstantProduct:
		f.fillReserveFacts(ctx, addr, &facts)
	case model.VenueAlgebra:
		f.fillAlgebraFacts(ctx, addr, &facts)
	default:
		f.fillConcentratedFacts(ctx, addr, &facts)
	}

	return facts, nil
}

// fillReserveFacts treats a V2 pool as initialized when both reserves are
// non-zero; the smaller reserve stands in for the liquidity reading.
func (f *FactsReader) fillReserveFacts(ctx context.Context, addr common.Address, facts *model.PoolFacts) {
	values, err := callMethod(ctx, f.caller, f.pacer, f.timeout, addr, v2PairABI, "getReserves")
	if err != nil || len(values) < 2 {
		f.logger.Debug("getReserves failed", zap.String("pool", addr.Hex()), zap.Error(err))
		return
	}
	reserve0, ok0 := values[0].(*big.Int)
	reserve1, ok1 := values[1].(*big.Int)
	if !ok0 || !ok1 {
		return
	}
	if reserve0.Sign() > 0 && reserve1.Sign() > 0 {
		facts.Initialized = true
		if reserve0.Cmp(reserve1) < 0 {
			facts.Liquidity = new(big.Int).Set(reserve0)
		} else {
			facts.Liquidity = new(big.Int).Set(reserve1)
		}
	}
}

func (f *FactsReader) fillConcentratedFacts(ctx context.Context, addr common.Address, facts *model.PoolFacts) {
	values, err := callMethod(ctx, f.caller, f.pacer, f.timeout, addr, v3PoolABI, "slot0")
	if err != nil || len(values) == 0 {
		f.logger.Debug("slot0 failed", zap.String("pool", addr.Hex()), zap.Error(err))
		return
	}
	sqrtPrice, ok := values[0].(*big.Int)
	if ok && sqrtPrice.Sign() > 0 {
		facts.Initialized = true
	}

	values, err = callMethod(ctx, f.caller, f.pacer, f.timeout, addr, v3PoolABI, "liquidity")
	if err != nil || len(values) == 0 {
		f.logger.Debug("liquidity failed", zap.String("pool", addr.Hex()), zap.Error(err))
		return
	}
	if liq, ok := values[0].(*big.Int); ok {
		facts.Liquidity = new(big.Int).Set(liq)
	}

	if values, err = callMethod(ctx, f.caller, f.pacer, f.timeout, addr, v3PoolABI, "fee"); err == nil && len(values) > 0 {
		if fee, ok := values[0].(*big.Int); ok && fee.IsUint64() {
			ppm := uint32(fee.Uint64())
			facts.ReportedFeePPM = &ppm
		}
	}
}

// fillAlgebraFacts reads Algebra pools, which expose globalState() instead
// of slot0() and report their dynamic fee in its third output. Calling
// slot0() on these contracts reverts.
func (f *FactsReader) fillAlgebraFacts(ctx context.Context, addr common.Address, facts *model.PoolFacts) {
	values, err := callMethod(ctx, f.caller, f.pacer, f.timeout, addr, algebraPoolABI, "globalState")
	if err != nil || len(values) < 3 {
		f.logger.Debug("globalState failed", zap.String("pool", addr.Hex()), zap.Error(err))
		return
	}
	price, ok := values[0].(*big.Int)
	if ok && price.Sign() > 0 {
		facts.Initialized = true
	}
	if fee, ok := values[2].(uint16); ok {
		ppm := uint32(fee)
		facts.ReportedFeePPM = &ppm
	}

	values, err = callMethod(ctx, f.caller, f.pacer, f.timeout, addr, algebraPoolABI, "liquidity")
	if err != nil || len(values) == 0 {
		f.logger.Debug("liquidity failed", zap.String("pool", addr.Hex()), zap.Error(err))
		return
	}
	if liq, ok := values[0].(*big.Int); ok {
		facts.Liquidity = new(big.Int).Set(liq)
	}
}
