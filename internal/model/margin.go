package model

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// MarginPercent computes (price - cost) / price * 100 rounded to 2 decimals.
// Returns zero when price is not positive — every margin computation in the
// system goes through this guard, including final-price overrides.
func MarginPercent(cost, price int64) decimal.Decimal {
	if price <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(price - cost).
		Div(decimal.NewFromInt(price)).
		Mul(hundred).
		Round(2)
}
