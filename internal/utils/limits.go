package utils

import (
	"math"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Column limits of the schema in migrations/.
const (
	// MaxInteger is the largest value of an INTEGER column.
	MaxInteger = math.MaxInt32
	// MoneyDecimals is the scale of a NUMERIC(12, 2) column.
	MoneyDecimals = 2
)

// MaxMoney is the largest value of a NUMERIC(12, 2) column.
var MaxMoney = decimal.RequireFromString("9999999999.99")

// FitsMoney reports whether d can be stored in a NUMERIC(12, 2) column without overflow or rounding.
func FitsMoney(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(MaxMoney) && d.Equal(d.Round(MoneyDecimals))
}

// FitsVarchar reports whether s fits a VARCHAR(n) column, which counts characters, not bytes.
func FitsVarchar(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}
