package banks

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/sig-0/bankcaps/storage/types"
)

// DefaultMaxRecords is the default cap on accepted rows
const DefaultMaxRecords = 10

// TableStrategy locates the table to scan in the document.
// It returns nil if the document has no suitable table
type TableStrategy func(doc *goquery.Document) *goquery.Selection

// FirstMatch returns a strategy that picks the first element matching the selector
func FirstMatch(selector string) TableStrategy {
	return func(doc *goquery.Document) *goquery.Selection {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			return nil
		}

		return sel
	}
}

// DefaultStrategies prefers the styled wikitable over any other table
func DefaultStrategies() []TableStrategy {
	return []TableStrategy{
		FirstMatch("table.wikitable"),
		FirstMatch("table"),
	}
}

// Scanner extracts bank records from the first matching table of a document
type Scanner struct {
	logger     *slog.Logger
	strategies []TableStrategy
	maxRecords int
}

// NewScanner creates a new table scanner
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		strategies: DefaultStrategies(),
		maxRecords: DefaultMaxRecords,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan returns up to maxRecords bank records, in table order.
// A document without any table yields an empty result
func (s *Scanner) Scan(doc *goquery.Document) []*types.Bank {
	table := s.locate(doc)
	if table == nil {
		s.logger.Warn("no table found in document")

		return []*types.Bank{}
	}

	banks := make([]*types.Bank, 0, s.maxRecords)

	table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if len(banks) >= s.maxRecords {
			return false
		}

		cells := rowCells(tr)
		if len(cells) < minCells {
			return true
		}

		bank, err := Extract(cells)
		if err != nil {
			var extractErr *ExtractionError

			if errors.As(err, &extractErr) {
				s.logger.Warn(
					"skipping row",
					"text", extractErr.Text,
					"err", extractErr.Err,
				)
			}

			return true
		}

		banks = append(banks, bank)

		return len(banks) < s.maxRecords
	})

	return banks
}

// locate runs the table strategies in order, the first hit wins
func (s *Scanner) locate(doc *goquery.Document) *goquery.Selection {
	for _, strategy := range s.strategies {
		if table := strategy(doc); table != nil {
			return table
		}
	}

	return nil
}

// rowCells flattens the td cells of a table row
func rowCells(tr *goquery.Selection) []Cell {
	tds := tr.Find("td")
	cells := make([]Cell, 0, tds.Length())

	tds.Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, Cell{
			Text:    td.Text(),
			Name:    strippedText(td),
			HasLink: td.Find("a").Length() > 0,
		})
	})

	return cells
}

// strippedText joins the trimmed text fragments of the selection:
// "<a> Bank </a>\n<sup>[1]</sup>" -> "Bank[1]"
func strippedText(sel *goquery.Selection) string {
	var (
		b    strings.Builder
		walk func(n *html.Node)
	)

	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return b.String()
}
