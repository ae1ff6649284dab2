package dashboard

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type ReportRenderer interface {
	RenderExpenseReport(report ExpenseReport) (string, error)
}

type CsvReportRendererImpl struct {
}

func NewCsvReportRenderer() *CsvReportRendererImpl {
	return &CsvReportRendererImpl{}
}

// RenderExpenseReport writes the category breakdown, then the monthly breakdown, then the totals.
func (t *CsvReportRendererImpl) RenderExpenseReport(report ExpenseReport) (string, error) {
	data := make([][]string, 0, len(report.Categories)+len(report.Months)+10)

	data = append(data, []string{"Category", "Total", "Count"})
	for _, c := range report.Categories {
		data = append(data, []string{c.Category, c.Total.StringFixed(2), strconv.Itoa(c.Count)})
	}

	data = append(data, []string{}, []string{"Month", "Total", "Count"})
	for _, m := range report.Months {
		data = append(data, []string{m.YearMonth.String(), m.Total.StringFixed(2), strconv.Itoa(m.Count)})
	}

	data = append(data,
		[]string{},
		[]string{"Year", strconv.Itoa(report.Year)},
		[]string{"Total expenses", report.TotalExpenses.StringFixed(2)},
		[]string{"Transactions", strconv.Itoa(report.TotalTransactions)},
		[]string{"Monthly average", report.MonthlyAverage.StringFixed(2)},
		[]string{"Total earnings", report.TotalEarnings.StringFixed(2)},
		[]string{"Net profit", report.NetProfit.StringFixed(2)},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
