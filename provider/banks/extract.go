package banks

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sig-0/bankcaps/storage/types"
)

// minCells is the minimum number of td cells a row needs to be a candidate
const minCells = 3

var (
	ErrTooFewCells          = errors.New("too few cells")
	ErrInvalidMarketCap     = errors.New("invalid market cap")
	ErrNonPositiveMarketCap = errors.New("non-positive market cap")
)

// Cell is the flattened content of a single table cell
type Cell struct {
	// Text is the raw text of the cell, whitespace included
	Text string

	// Name is the cell text with every text fragment trimmed
	Name string

	// HasLink marks cells that contain an anchor element
	HasLink bool
}

// ExtractionError is returned for rows that can't produce a bank record.
// It signals that the row should be skipped, not that the scan failed
type ExtractionError struct {
	Err  error  // the cause
	Text string // the cleaned market cap text
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("unable to extract market cap %q: %s", e.Text, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extract converts a single row of cells into a bank record
func Extract(cells []Cell) (*types.Bank, error) {
	if len(cells) < minCells {
		return nil, &ExtractionError{Err: ErrTooFewCells}
	}

	// Rank and name columns can merge depending on the markup,
	// the link marks the actual name cell
	nameCell := cells[1]
	if cells[0].HasLink {
		nameCell = cells[0]
	}

	mcCell := cells[1]
	if len(cells) > 2 {
		mcCell = cells[2]
	}

	text := cleanMarketCap(mcCell.Text)

	marketCap, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, &ExtractionError{
			Err:  fmt.Errorf("%w: %w", ErrInvalidMarketCap, err),
			Text: text,
		}
	}

	if math.IsNaN(marketCap) || math.IsInf(marketCap, 0) {
		return nil, &ExtractionError{Err: ErrInvalidMarketCap, Text: text}
	}

	if marketCap <= 0 {
		return nil, &ExtractionError{Err: ErrNonPositiveMarketCap, Text: text}
	}

	return &types.Bank{
		Name:         nameCell.Name,
		MarketCapUSD: marketCap,
	}, nil
}

// cleanMarketCap strips the currency prefix, the thousands separators
// and any trailing footnote marker from the market cap text:
// "US$ 1,234.5[3]\n" -> "1234.5"
func cleanMarketCap(s string) string {
	s = strings.ReplaceAll(s, "US$", "")
	s = strings.ReplaceAll(s, ",", "")
	s, _, _ = strings.Cut(s, "[")

	return strings.TrimSpace(s)
}
