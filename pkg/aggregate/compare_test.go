package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func aggregateOf(total string) PeriodAggregate {
	return Summarize([]Record{record(date(2024, time.June, 1), "fuel", total)})
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		current  PeriodAggregate
		previous PeriodAggregate
		want     string
	}{
		{"identical aggregates", aggregateOf("250.00"), aggregateOf("250.00"), "0.00"},
		{"growth", aggregateOf("150"), aggregateOf("100"), "50.00"},
		{"decline with rounding", aggregateOf("100"), aggregateOf("300"), "-66.67"},
		{"previous is zero", aggregateOf("100"), Empty(), "0.00"},
		{"both zero", Empty(), Empty(), "0.00"},
		{"current is zero", Empty(), aggregateOf("80"), "-100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := Compare(tt.current, tt.previous)
			assert.Equal(t, tt.want, metrics.PercentVariance.StringFixed(2))
			assert.Equal(t, tt.current, metrics.Current)
			assert.Equal(t, tt.previous, metrics.Previous)
		})
	}
}

func TestPercentVariance_NegativePreviousIsGuarded(t *testing.T) {
	assert.True(t, PercentVariance(decimal.NewFromInt(10), decimal.NewFromInt(-5)).IsZero())
}

func TestComparativeMetrics_Difference(t *testing.T) {
	metrics := Compare(aggregateOf("440"), aggregateOf("330.50"))

	assert.Equal(t, "109.50", metrics.Difference().StringFixed(2))
}
