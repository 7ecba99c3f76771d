package quote

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"dexdepth/internal/model"
)

// fakeCaller answers eth_call by method selector; anything without a
// configured response reverts, like a contract missing that method.
type fakeCaller struct {
	code      []byte
	responses map[[4]byte][]byte
}

func (f *fakeCaller) CodeAt(_ context.Context, _ common.Address) ([]byte, error) {
	return f.code, nil
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if len(msg.Data) < 4 {
		return nil, errors.New("missing selector")
	}
	var sel [4]byte
	copy(sel[:], msg.Data)
	resp, ok := f.responses[sel]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return resp, nil
}

func respond(t *testing.T, a abi.ABI, method string, values ...interface{}) ([4]byte, []byte) {
	t.Helper()
	m, ok := a.Methods[method]
	if !ok {
		t.Fatalf("no method %s in abi", method)
	}
	out, err := m.Outputs.Pack(values...)
	if err != nil {
		t.Fatalf("pack %s outputs: %v", method, err)
	}
	var sel [4]byte
	copy(sel[:], m.ID)
	return sel, out
}

func factsPool(kind model.VenueKind) model.Pool {
	return model.Pool{
		Venue:   string(kind),
		Kind:    kind,
		Address: "0x00000000000000000000000000000000000000aa",
		Base:    model.Asset{Symbol: "WETH", Address: "0x00000000000000000000000000000000000000b1", Decimals: 18},
		Quote:   model.Asset{Symbol: "USDC", Address: "0x00000000000000000000000000000000000000b2", Decimals: 6},
		FeePPM:  3000,
	}
}

func newTestFactsReader(t *testing.T, caller ContractCaller) *FactsReader {
	t.Helper()
	reader, err := NewFactsReader(caller, nil, 0, nil)
	if err != nil {
		t.Fatalf("new facts reader: %v", err)
	}
	return reader
}

func TestFetchFactsNoCode(t *testing.T) {
	reader := newTestFactsReader(t, &fakeCaller{})

	facts, err := reader.Fetch(context.Background(), factsPool(model.VenueConstantProduct))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facts.Exists || facts.Initialized {
		t.Fatalf("empty code must mean not exists, got %+v", facts)
	}
}

func TestFetchFactsConstantProduct(t *testing.T) {
	caller := &fakeCaller{code: []byte{0x60}, responses: map[[4]byte][]byte{}}
	sel, out := respond(t, v2PairABI, "getReserves", big.NewInt(500), big.NewInt(1_000_000), uint32(0))
	caller.responses[sel] = out

	reader := newTestFactsReader(t, caller)
	facts, err := reader.Fetch(context.Background(), factsPool(model.VenueConstantProduct))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !facts.Exists || !facts.Initialized {
		t.Fatalf("funded pair must be live, got %+v", facts)
	}
	// The smaller reserve stands in for liquidity.
	if facts.Liquidity.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("liquidity = %s, want 500", facts.Liquidity)
	}
}

func TestFetchFactsConstantProductEmptyReserve(t *testing.T) {
	caller := &fakeCaller{code: []byte{0x60}, responses: map[[4]byte][]byte{}}
	sel, out := respond(t, v2PairABI, "getReserves", big.NewInt(0), big.NewInt(1_000_000), uint32(0))
	caller.responses[sel] = out

	reader := newTestFactsReader(t, caller)
	facts, err := reader.Fetch(context.Background(), factsPool(model.VenueConstantProduct))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !facts.Exists || facts.Initialized {
		t.Fatalf("one-sided pair must not count as initialized, got %+v", facts)
	}
}

func TestFetchFactsQuoterV1(t *testing.T) {
	caller := &fakeCaller{code: []byte{0x60}, responses: map[[4]byte][]byte{}}
	sel, out := respond(t, v3PoolABI, "slot0",
		new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(0),
		uint16(0), uint16(0), uint16(0), uint8(0), false)
	caller.responses[sel] = out
	sel, out = respond(t, v3PoolABI, "liquidity", big.NewInt(12_345))
	caller.responses[sel] = out
	sel, out = respond(t, v3PoolABI, "fee", big.NewInt(3000))
	caller.responses[sel] = out

	reader := newTestFactsReader(t, caller)
	facts, err := reader.Fetch(context.Background(), factsPool(model.VenueQuoterV1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !facts.Exists || !facts.Initialized {
		t.Fatalf("priced pool must be live, got %+v", facts)
	}
	if facts.Liquidity.Cmp(big.NewInt(12_345)) != 0 {
		t.Fatalf("liquidity = %s, want 12345", facts.Liquidity)
	}
	if facts.ReportedFeePPM == nil || *facts.ReportedFeePPM != 3000 {
		t.Fatalf("reported fee = %v, want 3000", facts.ReportedFeePPM)
	}
}

func TestFetchFactsAlgebraUsesGlobalState(t *testing.T) {
	// The caller only understands globalState()/liquidity(); slot0() and
	// fee() revert, as they do on a real Algebra contract.
	caller := &fakeCaller{code: []byte{0x60}, responses: map[[4]byte][]byte{}}
	sel, out := respond(t, algebraPoolABI, "globalState",
		new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(0),
		uint16(100), uint16(0), uint8(0), uint8(0), true)
	caller.responses[sel] = out
	sel, out = respond(t, algebraPoolABI, "liquidity", big.NewInt(777))
	caller.responses[sel] = out

	reader := newTestFactsReader(t, caller)
	facts, err := reader.Fetch(context.Background(), factsPool(model.VenueAlgebra))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !facts.Exists || !facts.Initialized {
		t.Fatalf("priced pool must be live, got %+v", facts)
	}
	if facts.Liquidity.Cmp(big.NewInt(777)) != 0 {
		t.Fatalf("liquidity = %s, want 777", facts.Liquidity)
	}
	if facts.ReportedFeePPM == nil || *facts.ReportedFeePPM != 100 {
		t.Fatalf("reported dynamic fee = %v, want 100", facts.ReportedFeePPM)
	}
}

func TestFetchFactsAlgebraUnpricedPool(t *testing.T) {
	caller := &fakeCaller{code: []byte{0x60}, responses: map[[4]byte][]byte{}}
	sel, out := respond(t, algebraPoolABI, "globalState",
		big.NewInt(0), big.NewInt(0),
		uint16(100), uint16(0), uint8(0), uint8(0), false)
	caller.responses[sel] = out

	reader := newTestFactsReader(t, caller)
	facts, err := reader.Fetch(context.Background(), factsPool(model.VenueAlgebra))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if facts.Initialized {
		t.Fatalf("zero price must not count as initialized")
	}
}
