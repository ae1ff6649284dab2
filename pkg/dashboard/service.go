package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/driverledger/driverledger/internal/utils"
	"github.com/driverledger/driverledger/pkg/aggregate"
	"github.com/driverledger/driverledger/pkg/fortnight"
	"github.com/driverledger/driverledger/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var monthsInYear = decimal.NewFromInt(12)

// NetResult is earnings minus expenses and assistant costs, per period.
type NetResult struct {
	Current         decimal.Decimal
	Previous        decimal.Decimal
	PercentVariance decimal.Decimal
}

type Dashboard struct {
	Current  fortnight.Period
	Previous fortnight.Period

	Earnings       aggregate.ComparativeMetrics
	Expenses       aggregate.ComparativeMetrics
	AssistantCosts aggregate.ComparativeMetrics
	NetResult      NetResult

	// Package counts of the current period.
	RoutePackages             int
	LoosePackages             int
	PackagesHandled           int
	AverageEarningsPerPackage decimal.Decimal
}

type ExpenseReport struct {
	Year              int
	Categories        []aggregate.CategoryTotal
	Months            []aggregate.MonthTotal
	TotalExpenses     decimal.Decimal
	TotalTransactions int
	MonthlyAverage    decimal.Decimal
	TotalEarnings     decimal.Decimal
	NetProfit         decimal.Decimal
}

type Service interface {
	GetDashboardMetrics(ctx context.Context, ref time.Time) (Dashboard, error)
	GetCategoryReport(ctx context.Context) ([]aggregate.CategoryTotal, error)
	GetMonthlyReport(ctx context.Context, entity aggregate.EntityType, year int) ([]aggregate.MonthTotal, error)
	GetExpenseReport(ctx context.Context, year int) (ExpenseReport, error)
	Today() time.Time
}

type ServiceImpl struct {
	store RecordStore
	clock utils.Clock
}

func NewService(store RecordStore, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{store: store, clock: clock}
}

// Today is the clock's current calendar date, as stored in the record dates.
func (s *ServiceImpl) Today() time.Time {
	y, m, d := s.clock.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetDashboardMetrics compares the fortnight containing ref with the one before it.
func (s *ServiceImpl) GetDashboardMetrics(ctx context.Context, ref time.Time) (Dashboard, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to get current user: %w", err)
	}
	current := fortnight.Current(ref)
	previous := fortnight.Previous(ref)
	log.Debugf("Computing dashboard of user %d for %s against %s", userId, current, previous)

	var routes, expenses, packages []aggregate.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		routes = s.recordsBetween(gctx, aggregate.Routes, userId, previous.Start, current.End)
		return nil
	})
	g.Go(func() error {
		expenses = s.recordsBetween(gctx, aggregate.Expenses, userId, previous.Start, current.End)
		return nil
	})
	g.Go(func() error {
		packages = s.recordsBetween(gctx, aggregate.AssistantPackages, userId, previous.Start, current.End)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	earnings := compareRecords(routes, current, previous)
	expenseMetrics := compareRecords(expenses, current, previous)
	assistantCosts := compareRecords(packages, current, previous)

	currentNet := net(earnings.Current, expenseMetrics.Current, assistantCosts.Current)
	previousNet := net(earnings.Previous, expenseMetrics.Previous, assistantCosts.Previous)

	currentRoutes := aggregate.Filter(routes, current)
	return Dashboard{
		Current:        current,
		Previous:       previous,
		Earnings:       earnings,
		Expenses:       expenseMetrics,
		AssistantCosts: assistantCosts,
		NetResult: NetResult{
			Current:         currentNet,
			Previous:        previousNet,
			PercentVariance: aggregate.PercentVariance(currentNet, previousNet),
		},
		RoutePackages:             intExtra(currentRoutes, ExtraRoutePackages),
		LoosePackages:             intExtra(currentRoutes, ExtraLoosePackages),
		PackagesHandled:           earnings.Current.Units,
		AverageEarningsPerPackage: earnings.Current.AveragePerUnit(),
	}, nil
}

// GetCategoryReport totals the full expense history by category, largest first.
func (s *ServiceImpl) GetCategoryReport(ctx context.Context) ([]aggregate.CategoryTotal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return aggregate.CategoryTotals(s.records(ctx, aggregate.Expenses, userId)), nil
}

func (s *ServiceImpl) GetMonthlyReport(ctx context.Context, entity aggregate.EntityType, year int) ([]aggregate.MonthTotal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := aggregate.ParseEntityType(string(entity)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	from, to := yearBounds(year)
	return aggregate.MonthlyTotals(s.recordsBetween(ctx, entity, userId, from, to), year), nil
}

// GetExpenseReport summarizes the expenses of a year and sets them against the route earnings of
// the same year.
func (s *ServiceImpl) GetExpenseReport(ctx context.Context, year int) (ExpenseReport, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return ExpenseReport{}, fmt.Errorf("failed to get current user: %w", err)
	}
	from, to := yearBounds(year)

	var expenses, routes []aggregate.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		expenses = s.recordsBetween(gctx, aggregate.Expenses, userId, from, to)
		return nil
	})
	g.Go(func() error {
		routes = s.recordsBetween(gctx, aggregate.Routes, userId, from, to)
		return nil
	})
	if err := g.Wait(); err != nil {
		return ExpenseReport{}, err
	}

	summary := aggregate.Summarize(expenses)
	earnings := aggregate.Summarize(routes).TotalAmount
	return ExpenseReport{
		Year:              year,
		Categories:        aggregate.CategoryTotals(expenses),
		Months:            summary.ByMonth,
		TotalExpenses:     summary.TotalAmount,
		TotalTransactions: summary.Count,
		MonthlyAverage:    summary.TotalAmount.Div(monthsInYear).Round(2),
		TotalEarnings:     earnings,
		NetProfit:         earnings.Sub(summary.TotalAmount),
	}, nil
}

// recordsBetween never fails: an unavailable store yields no records.
func (s *ServiceImpl) recordsBetween(ctx context.Context, entity aggregate.EntityType, userId int, from, to time.Time) []aggregate.Record {
	records, err := s.store.QueryByOwnerAndDateRange(ctx, entity, userId, from, to)
	if err != nil {
		log.Warnf("Record store unavailable for %s, using an empty aggregate: %v", entity, err)
		return []aggregate.Record{}
	}
	return records
}

func (s *ServiceImpl) records(ctx context.Context, entity aggregate.EntityType, userId int) []aggregate.Record {
	records, err := s.store.QueryByOwner(ctx, entity, userId)
	if err != nil {
		log.Warnf("Record store unavailable for %s, using an empty aggregate: %v", entity, err)
		return []aggregate.Record{}
	}
	return records
}

func compareRecords(records []aggregate.Record, current, previous fortnight.Period) aggregate.ComparativeMetrics {
	return aggregate.Compare(aggregate.Aggregate(records, current), aggregate.Aggregate(records, previous))
}

func net(earnings, expenses, assistantCosts aggregate.PeriodAggregate) decimal.Decimal {
	return earnings.TotalAmount.Sub(expenses.TotalAmount).Sub(assistantCosts.TotalAmount)
}

func yearBounds(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
