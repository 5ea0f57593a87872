// Package rates loads the exchange rate table used to project
// USD market caps into other currencies
package rates

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sig-0/bankcaps/storage/types"
)

const (
	currencyColumn = "Currency"
	rateColumn     = "Rate"
)

var (
	ErrMissingRate     = errors.New("missing exchange rate")
	ErrInvalidRate     = errors.New("invalid exchange rate")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidHeader   = errors.New("invalid exchange rate header")
)

// MissingRateError is returned when the table has no rate for a currency
type MissingRateError struct {
	Currency types.Currency
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("missing exchange rate for %s", e.Currency)
}

func (e *MissingRateError) Is(target error) bool {
	return target == ErrMissingRate
}

// Table is a read-only mapping of currency code -> USD multiplier
type Table struct {
	rates map[types.Currency]float64
}

// NewTable creates a new rate table from the given rates.
// The map is copied, later changes to it are not visible
func NewTable(rates map[types.Currency]float64) (*Table, error) {
	t := &Table{
		rates: make(map[types.Currency]float64, len(rates)),
	}

	for code, rate := range rates {
		if err := validate(code, rate); err != nil {
			return nil, err
		}

		t.rates[code] = rate
	}

	return t, nil
}

// Rate returns the multiplier for the given currency
func (t *Table) Rate(code types.Currency) (float64, error) {
	rate, ok := t.rates[code]
	if !ok {
		return 0, &MissingRateError{Currency: code}
	}

	return rate, nil
}

// Len returns the number of currencies in the table
func (t *Table) Len() int {
	return len(t.rates)
}

// Load reads the rate table from the CSV file at the given path
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open exchange rate file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read reads the rate table from CSV content with a Currency,Rate header
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read exchange rate header: %w", err)
	}

	currencyIdx, rateIdx := -1, -1

	for i, column := range header {
		switch strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")) {
		case currencyColumn:
			currencyIdx = i
		case rateColumn:
			rateIdx = i
		}
	}

	if currencyIdx == -1 || rateIdx == -1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, header)
	}

	rates := make(map[types.Currency]float64)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("unable to read exchange rate row: %w", err)
		}

		code := types.Currency(strings.ToUpper(strings.TrimSpace(record[currencyIdx])))

		rate, err := strconv.ParseFloat(strings.TrimSpace(record[rateIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w for %s: %w", ErrInvalidRate, code, err)
		}

		rates[code] = rate
	}

	return NewTable(rates)
}

func validate(code types.Currency, rate float64) error {
	if strings.TrimSpace(code.String()) == "" {
		return ErrInvalidCurrency
	}

	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return fmt.Errorf("%w for %s: %v", ErrInvalidRate, code, rate)
	}

	return nil
}
