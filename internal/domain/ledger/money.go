package ledger

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places every stored amount carries.
const MoneyScale = 2

// Cents rounds d to MoneyScale. Stores without a fixed-point type (SQLite)
// hand back sums and balances as doubles; everything read is passed through here.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// IsWholeCents reports whether d is representable without rounding.
func IsWholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
