package quote

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"dexdepth/internal/model"
)

// ConstantProductOracle quotes V2-style pools from getReserves() and the
// constant-product formula. No quoter contract involved.
type ConstantProductOracle struct {
	caller  ContractCaller
	pacer   *Pacer
	timeout time.Duration
}

func NewConstantProductOracle(caller ContractCaller, pacer *Pacer, timeout time.Duration) (*ConstantProductOracle, error) {
	if err := loadABIs(); err != nil {
		return nil, fmt.Errorf("parse pair abi: %w", err)
	}
	return &ConstantProductOracle{caller: caller, pacer: pacer, timeout: timeout}, nil
}

func (o *ConstantProductOracle) Quote(ctx context.Context, pool model.Pool, amountIn *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, fmt.Errorf("%w: zero input", ErrQuoteFailed)
	}

	reserveIn, reserveOut, err := o.orientedReserves(ctx, pool)
	if err != nil {
		return nil, err
	}

	out := AmountOut(amountIn, reserveIn, reserveOut, feePerMille(pool.FeePPM))
	if out.Sign() <= 0 {
		return nil, fmt.Errorf("%w: zero output", ErrQuoteFailed)
	}
	return out, nil
}

// orientedReserves returns (reserve of quote asset, reserve of base asset)
// for the quote->base direction the ladder probes in.
func (o *ConstantProductOracle) orientedReserves(ctx context.Context, pool model.Pool) (*big.Int, *big.Int, error) {
	pair := common.HexToAddress(pool.Address)

	values, err := callMethod(ctx, o.caller, o.pacer, o.timeout, pair, v2PairABI, "getReserves")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: getReserves: %v", ErrQuoteFailed, err)
	}
	if len(values) < 2 {
		return nil, nil, fmt.Errorf("%w: short getReserves result", ErrQuoteFailed)
	}
	reserve0, ok0 := values[0].(*big.Int)
	reserve1, ok1 := values[1].(*big.Int)
	if !ok0 || !ok1 {
		return nil, nil, fmt.Errorf("%w: unexpected reserve types", ErrQuoteFailed)
	}
	if reserve0.Sign() == 0 || reserve1.Sign() == 0 {
		return nil, nil, fmt.Errorf("%w: empty reserves", ErrQuoteFailed)
	}

	values, err = callMethod(ctx, o.caller, o.pacer, o.timeout, pair, v2PairABI, "token0")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: token0: %v", ErrQuoteFailed, err)
	}
	token0, ok := values[0].(common.Address)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unexpected token0 type", ErrQuoteFailed)
	}

	switch strings.ToLower(token0.Hex()) {
	case strings.ToLower(pool.Quote.Address):
		return reserve0, reserve1, nil
	case strings.ToLower(pool.Base.Address):
		return reserve1, reserve0, nil
	default:
		return nil, nil, fmt.Errorf("%w: token0 %s matches neither side of %s", ErrQuoteFailed, token0.Hex(), pool.Pair())
	}
}

// AmountOut computes the constant-product swap output with the proportional
// fee applied as an integer numerator multiplier (e.g. 0.3% -> 997/1000).
// Pure integer arithmetic; returns zero when inputs make the trade void.
func AmountOut(amountIn, reserveIn, reserveOut *big.Int, feePerMille uint32) *big.Int {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return big.NewInt(0)
	}
	if reserveIn == nil || reserveIn.Sign() <= 0 || reserveOut == nil || reserveOut.Sign() <= 0 {
		return big.NewInt(0)
	}
	if feePerMille >= 1000 {
		return big.NewInt(0)
	}

	multiplier := big.NewInt(int64(1000 - feePerMille))
	amountInWithFee := new(big.Int).Mul(amountIn, multiplier)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, big.NewInt(1000))
	denominator.Add(denominator, amountInWithFee)
	return numerator.Div(numerator, denominator)
}

// feePerMille converts a parts-per-million fee into the per-mille multiplier
// form the formula wants. 3000 ppm -> 3.
func feePerMille(feePPM uint32) uint32 {
	return feePPM / 1000
}
