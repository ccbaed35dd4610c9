package utils

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places amounts are shown with.
const MoneyPlaces = 2

// FormatMoney renders an amount with two decimal places, e.g. 12.5 -> "12.50".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPlaces)
}

// RoundMoney rounds half away from zero to two decimal places.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// Percent returns part/whole*100 rounded to two places, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(MoneyPlaces)
}
