// Package report renders tabular query results as aligned text
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sig-0/bankcaps/storage/types"
)

// Write renders the table with a header row, one line per row
func Write(w io.Writer, table *types.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, strings.Join(table.Columns, "\t")); err != nil {
		return err
	}

	for _, row := range table.Rows {
		cells := make([]string, 0, len(row))

		for _, v := range row {
			cells = append(cells, formatValue(v))
		}

		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
