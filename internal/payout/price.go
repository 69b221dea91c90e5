package payout

import (
	"github.com/shopspring/decimal"

	"ignitionPayout/internal/amount"
)

// Price is the rate of a base/quote pair, in quote units per one base unit.
type Price struct {
	Base  string
	Quote string
	Rate  decimal.Decimal
}

// Exchange converts amount of asset into the other asset of the pair.
// ok is false when asset is neither base nor quote. err reports arithmetic
// failures, including a zero rate when converting from the quote side.
func (p Price) Exchange(asset string, value decimal.Decimal) (other string, converted decimal.Decimal, ok bool, err error) {
	switch asset {
	case p.Base:
		converted, err = amount.CheckedMul(p.Rate, value)
		return p.Quote, converted, true, err
	case p.Quote:
		converted, err = amount.CheckedDiv(value, p.Rate)
		return p.Base, converted, true, err
	default:
		return "", decimal.Zero, false, nil
	}
}

// Counterpart returns the other asset of the pair.
func (p Price) Counterpart(asset string) (string, bool) {
	switch asset {
	case p.Base:
		return p.Quote, true
	case p.Quote:
		return p.Base, true
	default:
		return "", false
	}
}
