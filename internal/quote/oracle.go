package quote

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"dexdepth/internal/model"
)

// ErrQuoteFailed marks a probe that produced no usable output. Reverts,
// transport errors, and zero output all collapse to this one failure; the
// engine treats "the trade would revert" as a data point, not a fault to
// retry.
var ErrQuoteFailed = errors.New("quote failed")

// ContractCaller is the slice of the chain client the oracles need.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	CodeAt(ctx context.Context, address common.Address) ([]byte, error)
}

// Oracle answers "how much of the counter-asset does amountIn buy in this
// pool right now". amountIn is in the reference asset's raw precision.
type Oracle interface {
	Quote(ctx context.Context, pool model.Pool, amountIn *big.Int) (*big.Int, error)
}

// Pacer enforces a minimum delay between upstream calls. A courtesy rate
// limit toward the query provider, not a correctness requirement.
type Pacer struct {
	mu    sync.Mutex
	last  time.Time
	every time.Duration
}

func NewPacer(every time.Duration) *Pacer {
	return &Pacer{every: every}
}

// Wait blocks until the minimum delay since the previous call has elapsed.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.every <= 0 {
		return nil
	}

	p.mu.Lock()
	now := time.Now()
	next := p.last.Add(p.every)
	if next.Before(now) {
		next = now
	}
	p.last = next
	p.mu.Unlock()

	wait := time.Until(next)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// callMethod packs, paces, executes, and unpacks one read-only contract call.
// A per-call timeout keeps a stuck upstream from blocking the whole run.
func callMethod(
	ctx context.Context,
	caller ContractCaller,
	pacer *Pacer,
	timeout time.Duration,
	to common.Address,
	parsed abi.ABI,
	method string,
	args ...interface{},
) ([]interface{}, error) {
	if err := pacer.Wait(ctx); err != nil {
		return nil, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	resp, err := caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}
