// Package banks provides the largest banks page provider.
//
// # Source
//
// URL: https://web.archive.org/web/20230908091635/https://en.wikipedia.org/wiki/List_of_largest_banks
//
// The page lists banks ranked by market capitalization (US$ billion).
// The provider fetches it once and scans a single table:
//
//   - the first table.wikitable element, or
//   - the first table element of any kind, if no wikitable exists
//
// Rows with fewer than 3 td cells (headers, spacers) are ignored. For the
// remaining rows, the name is taken from the first cell when it holds a
// link, otherwise from the second cell. The market cap is taken from the
// third cell and cleaned before parsing:
//
//	"US$ 1,234.5[3]\n" -> "1234.5"
//
// Rows whose market cap does not parse to a positive number are skipped.
// Scanning stops after 10 accepted rows.
package banks
