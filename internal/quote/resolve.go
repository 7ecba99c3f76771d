package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"dexdepth/internal/model"
)

// ResolveDecimals fills in asset decimals left at zero in the pool list by
// reading decimals() on chain. One cache serves the whole run; the same
// token appearing in many pools costs one call. Pools with decimals already
// configured are left untouched.
func ResolveDecimals(ctx context.Context, caller ContractCaller, pacer *Pacer, timeout time.Duration, pools []model.Pool) error {
	cache := NewTokenDecimalsCache()

	for i := range pools {
		for _, asset := range []*model.Asset{&pools[i].Base, &pools[i].Quote} {
			if asset.Decimals != 0 {
				continue
			}
			if !common.IsHexAddress(asset.Address) {
				return fmt.Errorf("asset %s: invalid address %q", asset.Symbol, asset.Address)
			}
			decimals, err := FetchTokenDecimals(ctx, caller, pacer, timeout, common.HexToAddress(asset.Address), cache)
			if err != nil {
				return fmt.Errorf("resolve decimals for %s: %w", asset.Symbol, err)
			}
			asset.Decimals = decimals
		}
	}
	return nil
}
