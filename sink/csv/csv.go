// Package csv persists enriched bank records as a flat CSV file
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/sig-0/bankcaps/storage/types"
)

var ErrInvalidHeader = errors.New("invalid CSV header")

// Write writes the records to the file at the given path,
// replacing any existing content
func Write(path string, banks []*types.EnrichedBank) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create CSV file: %w", err)
	}

	if err = Encode(f, banks); err != nil {
		_ = f.Close()

		return err
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("unable to close CSV file: %w", err)
	}

	return nil
}

// Encode writes the header and the records as CSV
func Encode(w io.Writer, banks []*types.EnrichedBank) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(types.Columns); err != nil {
		return fmt.Errorf("unable to write CSV header: %w", err)
	}

	for _, bank := range banks {
		record := []string{
			bank.Name,
			formatFloat(bank.MarketCapUSD),
			formatFloat(bank.MarketCapGBP),
			formatFloat(bank.MarketCapEUR),
			formatFloat(bank.MarketCapINR),
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("unable to write CSV record: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("unable to flush CSV: %w", err)
	}

	return nil
}

// Read reads the records back from the file at the given path
func Read(path string) ([]*types.EnrichedBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open CSV file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses CSV content produced by Encode
func Decode(r io.Reader) ([]*types.EnrichedBank, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(types.Columns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read CSV header: %w", err)
	}

	if !slices.Equal(header, types.Columns) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, header)
	}

	banks := make([]*types.EnrichedBank, 0)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("unable to read CSV record: %w", err)
		}

		values := make([]float64, 0, len(record)-1)

		for _, raw := range record[1:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("unable to parse CSV value %q: %w", raw, err)
			}

			values = append(values, v)
		}

		banks = append(banks, &types.EnrichedBank{
			Bank: types.Bank{
				Name:         record[0],
				MarketCapUSD: values[0],
			},
			MarketCapGBP: values[1],
			MarketCapEUR: values[2],
			MarketCapINR: values[3],
		})
	}

	return banks, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
