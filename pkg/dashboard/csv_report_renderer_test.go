package dashboard

import (
	"testing"
	"time"

	"github.com/driverledger/driverledger/pkg/aggregate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvReportRendererImpl_RenderExpenseReport(t *testing.T) {
	tests := []struct {
		name   string
		report ExpenseReport
		want   string
	}{
		{
			name: "report with categories and months",
			report: ExpenseReport{
				Year: 2024,
				Categories: []aggregate.CategoryTotal{
					{Category: "fuel", Total: decimal.RequireFromString("120"), Count: 2},
					{Category: "food, snacks", Total: decimal.RequireFromString("30"), Count: 1},
				},
				Months: []aggregate.MonthTotal{
					{YearMonth: aggregate.YearMonth{Year: 2024, Month: time.February}, Total: decimal.RequireFromString("70"), Count: 1},
					{YearMonth: aggregate.YearMonth{Year: 2024, Month: time.June}, Total: decimal.RequireFromString("80"), Count: 2},
				},
				TotalExpenses:     decimal.RequireFromString("150"),
				TotalTransactions: 3,
				MonthlyAverage:    decimal.RequireFromString("12.5"),
				TotalEarnings:     decimal.RequireFromString("380"),
				NetProfit:         decimal.RequireFromString("230"),
			},
			want: "Category,Total,Count\n" +
				"fuel,120.00,2\n" +
				"\"food, snacks\",30.00,1\n" +
				"\n" +
				"Month,Total,Count\n" +
				"2024-02,70.00,1\n" +
				"2024-06,80.00,2\n" +
				"\n" +
				"Year,2024\n" +
				"Total expenses,150.00\n" +
				"Transactions,3\n" +
				"Monthly average,12.50\n" +
				"Total earnings,380.00\n" +
				"Net profit,230.00\n",
		},
		{
			name:   "empty report",
			report: ExpenseReport{Year: 2023},
			want: "Category,Total,Count\n" +
				"\n" +
				"Month,Total,Count\n" +
				"\n" +
				"Year,2023\n" +
				"Total expenses,0.00\n" +
				"Transactions,0\n" +
				"Monthly average,0.00\n" +
				"Total earnings,0.00\n" +
				"Net profit,0.00\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewCsvReportRenderer()

			got, err := renderer.RenderExpenseReport(tt.report)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
