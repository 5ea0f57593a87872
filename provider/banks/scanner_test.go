package banks

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseDoc constructs a query doc from the raw HTML
func parseDoc(t *testing.T, raw string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	require.NoError(t, err)

	return doc
}

// bankRows generates n valid bank table rows
func bankRows(n int) string {
	var b strings.Builder

	for i := 1; i <= n; i++ {
		fmt.Fprintf(
			&b,
			`<tr><td>%d</td><td><a href="/wiki/Bank_%d">Bank %d</a></td><td>%d.5</td></tr>`,
			i, i, i, 1000-i,
		)
	}

	return b.String()
}

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("no table", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><p>nothing here</p></body></html>`)

		banks := NewScanner().Scan(doc)

		require.NotNil(t, banks)
		assert.Empty(t, banks)
	})

	t.Run("single wikitable row", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `
<table class="wikitable sortable">
  <tr><th>Rank</th><th>Bank name</th><th>Market cap (US$ billion)</th></tr>
  <tr>
    <td>1</td>
    <td><span class="flagicon"><a href="/wiki/US"><img src="flag.png"></a></span> <a href="/wiki/Bank_A">Bank A</a></td>
    <td>US$ 500.00<sup>[note]</sup>
</td>
  </tr>
</table>`)

		banks := NewScanner().Scan(doc)
		require.Len(t, banks, 1)

		assert.Equal(t, "Bank A", banks[0].Name)
		assert.Equal(t, 500.0, banks[0].MarketCapUSD)
	})

	t.Run("wikitable preferred", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `
<table class="infobox"><tr><td>1</td><td>Decoy</td><td>1.0</td></tr></table>
<table class="wikitable"><tr><td>1</td><td>Real</td><td>2.0</td></tr></table>`)

		banks := NewScanner().Scan(doc)
		require.Len(t, banks, 1)

		assert.Equal(t, "Real", banks[0].Name)
	})

	t.Run("first table fallback", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `
<table><tr><td>1</td><td>First</td><td>3.0</td></tr></table>
<table><tr><td>1</td><td>Second</td><td>4.0</td></tr></table>`)

		banks := NewScanner().Scan(doc)
		require.Len(t, banks, 1)

		assert.Equal(t, "First", banks[0].Name)
		assert.Equal(t, 3.0, banks[0].MarketCapUSD)
	})

	t.Run("invalid rows skipped", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `
<table class="wikitable">
  <tr><th>Rank</th><th>Bank name</th><th>Market cap</th></tr>
  <tr><td>1</td><td>Short</td></tr>
  <tr><td>2</td><td>Bad</td><td>n/a</td></tr>
  <tr><td>3</td><td>Good</td><td>1,234.5[2]</td></tr>
</table>`)

		banks := NewScanner().Scan(doc)
		require.Len(t, banks, 1)

		assert.Equal(t, "Good", banks[0].Name)
		assert.Equal(t, 1234.5, banks[0].MarketCapUSD)
	})

	t.Run("capped at max records", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<table class="wikitable">`+bankRows(25)+`</table>`)

		banks := NewScanner().Scan(doc)
		require.Len(t, banks, DefaultMaxRecords)

		// Source order is preserved
		for i, bank := range banks {
			assert.Equal(t, fmt.Sprintf("Bank %d", i+1), bank.Name)
		}
	})

	t.Run("custom max records", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<table class="wikitable">`+bankRows(8)+`</table>`)

		banks := NewScanner(WithMaxRecords(3)).Scan(doc)

		assert.Len(t, banks, 3)
	})

	t.Run("fewer rows than max", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<table class="wikitable">`+bankRows(4)+`</table>`)

		banks := NewScanner().Scan(doc)

		assert.Len(t, banks, 4)
	})

	t.Run("custom strategies", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `
<table class="wikitable"><tr><td>1</td><td>Wiki</td><td>1.0</td></tr></table>
<table id="banks"><tr><td>1</td><td>Custom</td><td>2.0</td></tr></table>`)

		banks := NewScanner(
			WithStrategies(FirstMatch("#missing"), FirstMatch("table#banks")),
		).Scan(doc)
		require.Len(t, banks, 1)

		assert.Equal(t, "Custom", banks[0].Name)
	})
}
