package config

import (
	"encoding/json"
	"fmt"
	"os"

	"dexdepth/internal/model"
)

// poolEntry is the JSON shape of one pool in the pools file. The venue
// kind is derived from the venue label, not spelled out per entry.
type poolEntry struct {
	Venue       string      `json:"venue"`
	Address     string      `json:"address"`
	Base        model.Asset `json:"base"`
	Quote       model.Asset `json:"quote"`
	FeePPM      uint32      `json:"fee_ppm"`
	FeeReported bool        `json:"fee_reported"`
}

// LoadPools reads the pool list to assess. Each entry's venue label is
// parsed into a venue kind here, so an unrecognized venue fails the run
// up front instead of at quote time.
func LoadPools(path string) ([]model.Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pools file: %w", err)
	}

	var entries []poolEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse pools file: %w", err)
	}
	if len(entries) == 0 {
		return nil, invalid("pools", "pools file %s lists no pools", path)
	}

	pools := make([]model.Pool, 0, len(entries))
	for i, e := range entries {
		if e.Address == "" {
			return nil, invalid("pools", "entry %d: address required", i)
		}
		if e.Base.Symbol == "" || e.Quote.Symbol == "" {
			return nil, invalid("pools", "entry %d (%s): base and quote symbols required", i, e.Address)
		}
		kind, err := model.ParseVenueKind(e.Venue)
		if err != nil {
			return nil, invalid("pools", "entry %d (%s): %v", i, e.Address, err)
		}
		pools = append(pools, model.Pool{
			Venue:       e.Venue,
			Kind:        kind,
			Address:     e.Address,
			Base:        e.Base,
			Quote:       e.Quote,
			FeePPM:      e.FeePPM,
			FeeReported: e.FeeReported || kind == model.VenueAlgebra,
		})
	}

	return pools, nil
}
