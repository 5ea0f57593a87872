package types

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
	CurrencyINR Currency = "INR"
)

func (c Currency) String() string {
	return string(c)
}

// Column names shared by the flat file and the relational table, in order
const (
	ColumnName = "Name"
	ColumnUSD  = "MC_USD_Billion"
	ColumnGBP  = "MC_GBP_Billion"
	ColumnEUR  = "MC_EUR_Billion"
	ColumnINR  = "MC_INR_Billion"
)

// Columns is the fixed column order of every bank data set
var Columns = []string{
	ColumnName,
	ColumnUSD,
	ColumnGBP,
	ColumnEUR,
	ColumnINR,
}

// Bank is a single extracted row of the largest banks table
type Bank struct {
	Name         string  `json:"name"`
	MarketCapUSD float64 `json:"mc_usd_billion"`
}

// EnrichedBank is a Bank with the market capitalization
// projected into the target currencies
type EnrichedBank struct {
	Bank

	MarketCapGBP float64 `json:"mc_gbp_billion"`
	MarketCapEUR float64 `json:"mc_eur_billion"`
	MarketCapINR float64 `json:"mc_inr_billion"`
}

// Table is a generic tabular query result
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
