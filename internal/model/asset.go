package model

import "math/big"

// Asset identifies a token by symbol and address with its native precision.
type Asset struct {
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	Decimals uint8  `json:"decimals"`
}

// Raw converts a whole-unit amount into the asset's native integer precision.
func (a Asset) Raw(units uint64) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(a.Decimals)), nil)
	return new(big.Int).Mul(new(big.Int).SetUint64(units), scale)
}

// Human converts a raw integer amount into whole units as a float.
// Display only; never used for swap math.
func (a Asset) Human(raw *big.Int) float64 {
	if raw == nil {
		return 0
	}
	f := new(big.Float).SetInt(raw)
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(a.Decimals)), nil))
	out, _ := new(big.Float).Quo(f, scale).Float64()
	return out
}
