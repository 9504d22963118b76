package models

import "github.com/shopspring/decimal"

// MoneyPlaces matches the NUMERIC(10,2) money columns.
const MoneyPlaces = 2

func init() {
	// Prices go over the wire as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundMoney rounds half away from zero to whole cents.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyPlaces)
}
