package arb

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dexdepth/internal/model"
)

// LoadObservations reads price observations from a CSV produced by the
// price logger. The header row names the columns; required columns are
// pair, venue (or dex), fee, block, and price. A timestamp column is
// optional. Rows with an unparsable price or block are rejected, not
// skipped: a corrupt input file should fail loudly.
func LoadObservations(path string) ([]model.PriceObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open observations: %w", err)
	}
	defer f.Close()

	obs, err := ReadObservations(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obs, nil
}

// ReadObservations parses CSV observation rows from r.
func ReadObservations(r io.Reader) ([]model.PriceObservation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if alt, ok := cols["dex"]; ok {
		if _, has := cols["venue"]; !has {
			cols["venue"] = alt
		}
	}
	if alt, ok := cols["ts"]; ok {
		if _, has := cols["timestamp"]; !has {
			cols["timestamp"] = alt
		}
	}
	for _, required := range []string{"pair", "venue", "fee", "block", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var obs []model.PriceObservation
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		fee, err := strconv.ParseUint(record[cols["fee"]], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: fee: %w", line, err)
		}
		block, err := strconv.ParseUint(record[cols["block"]], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: block: %w", line, err)
		}
		price, err := strconv.ParseFloat(record[cols["price"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: price: %w", line, err)
		}

		o := model.PriceObservation{
			Pair:   record[cols["pair"]],
			Venue:  record[cols["venue"]],
			FeePPM: uint32(fee),
			Block:  block,
			Price:  price,
		}
		if i, ok := cols["timestamp"]; ok && i < len(record) && record[i] != "" {
			ts, err := strconv.ParseUint(record[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: timestamp: %w", line, err)
			}
			o.Timestamp = ts
		}
		obs = append(obs, o)
	}

	return obs, nil
}
