package currencies

import "github.com/sig-0/bankcaps/storage/types"

var (
	USD types.Currency = "USD"
	GBP types.Currency = "GBP"
	EUR types.Currency = "EUR"
	INR types.Currency = "INR"
)

// Targets are the currencies every bank market cap is projected into
var Targets = []types.Currency{
	GBP,
	EUR,
	INR,
}
