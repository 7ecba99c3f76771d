package quote

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"dexdepth/internal/model"
)

// QuoterOracle quotes concentrated-liquidity pools through a venue quoter
// contract. The call shape differs by venue kind: QuoterV1 venues take an
// explicit fee parameter, Algebra venues do not and report the fee back.
// The result is opaque to the engine: a non-zero amount or a failure.
type QuoterOracle struct {
	caller  ContractCaller
	quoter  common.Address
	kind    model.VenueKind
	pacer   *Pacer
	timeout time.Duration
}

func NewQuoterOracle(caller ContractCaller, quoter common.Address, kind model.VenueKind, pacer *Pacer, timeout time.Duration) (*QuoterOracle, error) {
	if err := loadABIs(); err != nil {
		return nil, fmt.Errorf("parse quoter abi: %w", err)
	}
	switch kind {
	case model.VenueQuoterV1, model.VenueAlgebra:
	default:
		return nil, fmt.Errorf("venue kind %q has no quoter encoding", kind)
	}
	return &QuoterOracle{
		caller:  caller,
		quoter:  quoter,
		kind:    kind,
		pacer:   pacer,
		timeout: timeout,
	}, nil
}

func (o *QuoterOracle) Quote(ctx context.Context, pool model.Pool, amountIn *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, fmt.Errorf("%w: zero input", ErrQuoteFailed)
	}

	tokenIn := common.HexToAddress(pool.Quote.Address)
	tokenOut := common.HexToAddress(pool.Base.Address)
	limit := big.NewInt(0)

	var (
		values []interface{}
		err    error
	)
	switch o.kind {
	case model.VenueQuoterV1:
		fee := new(big.Int).SetUint64(uint64(pool.FeePPM))
		values, err = callMethod(ctx, o.caller, o.pacer, o.timeout, o.quoter, quoterABI,
			"quoteExactInputSingle", tokenIn, tokenOut, fee, amountIn, limit)
	case model.VenueAlgebra:
		values, err = callMethod(ctx, o.caller, o.pacer, o.timeout, o.quoter, algebraABI,
			"quoteExactInputSingle", tokenIn, tokenOut, amountIn, limit)
	default:
		return nil, fmt.Errorf("venue kind %q has no quoter encoding", o.kind)
	}
	if err != nil {
		// Reverts and transport errors are the same answer here.
		return nil, fmt.Errorf("%w: %v", ErrQuoteFailed, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty quoter result", ErrQuoteFailed)
	}

	amountOut, ok := values[0].(*big.Int)
	if !ok || amountOut.Sign() <= 0 {
		return nil, fmt.Errorf("%w: zero output", ErrQuoteFailed)
	}
	return amountOut, nil
}
