package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/driverledger/driverledger/pkg/fortnight"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCategory is used for records without a category.
const DefaultCategory = "Outros"

// EntityType names the kind of financial record held by the store.
type EntityType string

const (
	Routes            EntityType = "routes"
	Expenses          EntityType = "expenses"
	AssistantPackages EntityType = "assistant_packages"
)

// ParseEntityType accepts the EntityType names.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case Routes, Expenses, AssistantPackages:
		return EntityType(s), nil
	}
	return "", fmt.Errorf("unknown entity type: %s", s)
}

// Record is the common shape of routes, expenses and assistant packages as seen by the
// aggregation logic.
type Record struct {
	Id       uuid.UUID
	OwnerId  int
	Date     time.Time
	Category string
	Amount   decimal.Decimal
	// Units is what per-unit averages are computed over (packages for routes, delivered packages
	// for assistant packages, 1 for an expense).
	Units int
	Extra map[string]any
}

// CategoryTotal is the sum and number of records sharing a category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// MonthTotal is the sum and number of records dated within a calendar month.
type MonthTotal struct {
	YearMonth YearMonth
	Total     decimal.Decimal
	Count     int
}

// PeriodAggregate summarizes a set of records. It is derived on every request and never stored.
type PeriodAggregate struct {
	Count       int
	TotalAmount decimal.Decimal
	Units       int
	// ByCategory is in first-seen order.
	ByCategory []CategoryTotal
	// ByMonth is sorted ascending.
	ByMonth []MonthTotal
}

// Empty is the aggregate of no records.
func Empty() PeriodAggregate {
	return PeriodAggregate{
		TotalAmount: decimal.Zero,
		ByCategory:  []CategoryTotal{},
		ByMonth:     []MonthTotal{},
	}
}

// Aggregate summarizes the records whose date falls within the period (inclusive, date only).
func Aggregate(records []Record, period fortnight.Period) PeriodAggregate {
	return Summarize(Filter(records, period))
}

// Filter returns the records dated within the period, preserving order.
func Filter(records []Record, period fortnight.Period) []Record {
	included := make([]Record, 0, len(records))
	for _, r := range records {
		if period.Contains(r.Date) {
			included = append(included, r)
		}
	}
	return included
}

// Summarize aggregates all given records without any date filtering.
func Summarize(records []Record) PeriodAggregate {
	agg := Empty()
	categoryIdx := make(map[string]int)
	monthIdx := make(map[YearMonth]int)

	for _, r := range records {
		agg.Count++
		agg.Units += r.Units
		agg.TotalAmount = agg.TotalAmount.Add(r.Amount)

		category := categoryOf(r)
		if i, ok := categoryIdx[category]; ok {
			agg.ByCategory[i].Total = agg.ByCategory[i].Total.Add(r.Amount)
			agg.ByCategory[i].Count++
		} else {
			categoryIdx[category] = len(agg.ByCategory)
			agg.ByCategory = append(agg.ByCategory, CategoryTotal{Category: category, Total: r.Amount, Count: 1})
		}

		ym := YearMonthOf(r.Date)
		if i, ok := monthIdx[ym]; ok {
			agg.ByMonth[i].Total = agg.ByMonth[i].Total.Add(r.Amount)
			agg.ByMonth[i].Count++
		} else {
			monthIdx[ym] = len(agg.ByMonth)
			agg.ByMonth = append(agg.ByMonth, MonthTotal{YearMonth: ym, Total: r.Amount, Count: 1})
		}
	}

	sortMonths(agg.ByMonth)
	return agg
}

// CategoryTotals groups records by category, sorted descending by total. Ties keep alphabetical order.
func CategoryTotals(records []Record) []CategoryTotal {
	totals := Summarize(records).ByCategory
	sort.SliceStable(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// MonthlyTotals groups the records dated within the given year by month, ascending.
func MonthlyTotals(records []Record, year int) []MonthTotal {
	inYear := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Date.Year() == year {
			inYear = append(inYear, r)
		}
	}
	return Summarize(inYear).ByMonth
}

// AveragePerUnit divides total by units, returning zero when there are no units.
func AveragePerUnit(total decimal.Decimal, units int) decimal.Decimal {
	if units <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(units))).Round(2)
}

// AveragePerUnit is the total amount per unit of the aggregate.
func (a PeriodAggregate) AveragePerUnit() decimal.Decimal {
	return AveragePerUnit(a.TotalAmount, a.Units)
}

// Category returns the total for the given category, zero if absent.
func (a PeriodAggregate) Category(name string) decimal.Decimal {
	for _, c := range a.ByCategory {
		if c.Category == name {
			return c.Total
		}
	}
	return decimal.Zero
}

// Month returns the total for the given month, zero if absent.
func (a PeriodAggregate) Month(ym YearMonth) decimal.Decimal {
	for _, m := range a.ByMonth {
		if m.YearMonth == ym {
			return m.Total
		}
	}
	return decimal.Zero
}

func categoryOf(r Record) string {
	category := strings.TrimSpace(r.Category)
	if category == "" {
		return DefaultCategory
	}
	return category
}

func sortMonths(months []MonthTotal) {
	sort.Slice(months, func(i, j int) bool {
		return months[i].YearMonth.Before(months[j].YearMonth)
	})
}
