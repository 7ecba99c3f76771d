package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"dexdepth/internal/model"
)

// Registry hands out the right Oracle for a pool's venue kind. Venue tags
// are resolved to typed kinds before any chain call is attempted, so an
// unknown venue surfaces as a configuration error up front.
type Registry struct {
	constProduct *ConstantProductOracle
	quoters      map[string]*QuoterOracle
}

// NewRegistry builds oracles for every configured venue. quoterAddrs maps a
// venue label to its quoter contract address; constant-product venues need
// no entry.
func NewRegistry(caller ContractCaller, pacer *Pacer, timeout time.Duration, quoterAddrs map[string]string) (*Registry, error) {
	constProduct, err := NewConstantProductOracle(caller, pacer, timeout)
	if err != nil {
		return nil, err
	}

	reg := &Registry{
		constProduct: constProduct,
		quoters:      make(map[string]*QuoterOracle, len(quoterAddrs)),
	}

	for venue, addr := range quoterAddrs {
		kind, err := model.ParseVenueKind(venue)
		if err != nil {
			return nil, err
		}
		if kind == model.VenueConstantProduct {
			continue
		}
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("venue %q: invalid quoter address %q", venue, addr)
		}
		oracle, err := NewQuoterOracle(caller, common.HexToAddress(addr), kind, pacer, timeout)
		if err != nil {
			return nil, fmt.Errorf("venue %q: %w", venue, err)
		}
		reg.quoters[strings.ToLower(venue)] = oracle
	}

	return reg, nil
}

// ForPool returns the oracle serving the pool's venue.
func (r *Registry) ForPool(pool model.Pool) (Oracle, error) {
	switch pool.Kind {
	case model.VenueConstantProduct:
		return r.constProduct, nil
	case model.VenueQuoterV1, model.VenueAlgebra:
		oracle, ok := r.quoters[strings.ToLower(pool.Venue)]
		if !ok {
			return nil, fmt.Errorf("venue %q: no quoter configured", pool.Venue)
		}
		return oracle, nil
	default:
		return nil, fmt.Errorf("unknown venue kind %q", pool.Kind)
	}
}
