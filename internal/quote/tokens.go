package quote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TokenDecimalsCache caches ERC-20 decimals by token address.
type TokenDecimalsCache struct {
	mu   sync.RWMutex
	data map[common.Address]uint8
}

func NewTokenDecimalsCache() *TokenDecimalsCache {
	return &TokenDecimalsCache{data: make(map[common.Address]uint8)}
}

func (c *TokenDecimalsCache) Get(address common.Address) (uint8, bool) {
	c.mu.RLock()
	decimals, ok := c.data[address]
	c.mu.RUnlock()
	return decimals, ok
}

func (c *TokenDecimalsCache) Set(address common.Address, decimals uint8) {
	c.mu.Lock()
	c.data[address] = decimals
	c.mu.Unlock()
}

// FetchTokenDecimals reads decimals() for a token, consulting the cache first.
func FetchTokenDecimals(ctx context.Context, caller ContractCaller, pacer *Pacer, timeout time.Duration, token common.Address, cache *TokenDecimalsCache) (uint8, error) {
	if cache != nil {
		if decimals, ok := cache.Get(token); ok {
			return decimals, nil
		}
	}
	if err := loadABIs(); err != nil {
		return 0, fmt.Errorf("parse erc20 abi: %w", err)
	}

	values, err := callMethod(ctx, caller, pacer, timeout, token, erc20ABI, "decimals")
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("empty decimals result for %s", token.Hex())
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unsupported decimals type %T", values[0])
	}

	if cache != nil {
		cache.Set(token, decimals)
	}
	return decimals, nil
}
