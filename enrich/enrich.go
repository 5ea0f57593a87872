// Package enrich projects USD market caps into the target currencies
package enrich

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sig-0/bankcaps/provider/currencies"
	"github.com/sig-0/bankcaps/storage/types"
)

// places is the number of decimal places every projected value is rounded to
const places = 2

// RateSource resolves the USD multiplier for a currency
type RateSource interface {
	Rate(types.Currency) (float64, error)
}

// Project converts every bank market cap into GBP, EUR and INR.
// All target rates are resolved upfront, so a missing rate fails the
// projection as a whole, even for an empty input
func Project(banks []*types.Bank, rates RateSource) ([]*types.EnrichedBank, error) {
	multipliers := make(map[types.Currency]decimal.Decimal, len(currencies.Targets))

	for _, code := range currencies.Targets {
		rate, err := rates.Rate(code)
		if err != nil {
			return nil, fmt.Errorf("unable to resolve %s rate: %w", code, err)
		}

		multipliers[code] = decimal.NewFromFloat(rate)
	}

	out := make([]*types.EnrichedBank, 0, len(banks))

	for _, bank := range banks {
		usd := decimal.NewFromFloat(bank.MarketCapUSD)

		convert := func(code types.Currency) float64 {
			return usd.Mul(multipliers[code]).Round(places).InexactFloat64()
		}

		out = append(out, &types.EnrichedBank{
			Bank:         *bank,
			MarketCapGBP: convert(currencies.GBP),
			MarketCapEUR: convert(currencies.EUR),
			MarketCapINR: convert(currencies.INR),
		})
	}

	return out, nil
}
