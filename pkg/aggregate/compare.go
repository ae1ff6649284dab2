package aggregate

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ComparativeMetrics pairs the aggregates of two consecutive periods.
type ComparativeMetrics struct {
	Current         PeriodAggregate
	Previous        PeriodAggregate
	PercentVariance decimal.Decimal
}

// Compare computes the percentage variance of current against previous, rounded to two decimals.
// When the previous total is not positive the variance is zero.
func Compare(current, previous PeriodAggregate) ComparativeMetrics {
	return ComparativeMetrics{
		Current:         current,
		Previous:        previous,
		PercentVariance: PercentVariance(current.TotalAmount, previous.TotalAmount),
	}
}

func PercentVariance(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Mul(hundred).Div(previous).Round(2)
}

// Difference is the current total minus the previous total.
func (m ComparativeMetrics) Difference() decimal.Decimal {
	return m.Current.TotalAmount.Sub(m.Previous.TotalAmount)
}
