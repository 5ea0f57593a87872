// Package xlsx exports enriched bank records as an Excel workbook
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sig-0/bankcaps/storage/types"
)

// SheetName is the worksheet holding the bank records
const SheetName = "Largest_banks"

// Write writes the records to a new workbook at the given path,
// replacing any existing file
func Write(path string, banks []*types.EnrichedBank) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet instead of leaving an empty one behind
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("unable to name sheet: %w", err)
	}

	header := make([]any, 0, len(types.Columns))
	for _, column := range types.Columns {
		header = append(header, column)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("unable to write header: %w", err)
	}

	for i, bank := range banks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("unable to resolve cell: %w", err)
		}

		row := []any{
			bank.Name,
			bank.MarketCapUSD,
			bank.MarketCapGBP,
			bank.MarketCapEUR,
			bank.MarketCapINR,
		}

		if err = f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("unable to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("unable to save workbook: %w", err)
	}

	return nil
}
