package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/driverledger/driverledger/pkg/aggregate"
	"github.com/driverledger/driverledger/pkg/assistant_package"
	"github.com/driverledger/driverledger/pkg/expense"
	"github.com/driverledger/driverledger/pkg/route"
)

// Keys of aggregate.Record.Extra.
const (
	ExtraRoutePackages = "route_packages"
	ExtraLoosePackages = "loose_packages"
	ExtraTotalStops    = "total_stops"
	ExtraPayment       = "payment_method"
)

// RecordStore reads the financial records of one owner as aggregate.Record values.
type RecordStore interface {
	// QueryByOwnerAndDateRange returns the owner's records dated within [from, to], both inclusive.
	QueryByOwnerAndDateRange(ctx context.Context, entity aggregate.EntityType, ownerId int, from, to time.Time) ([]aggregate.Record, error)
	// QueryByOwner returns the full history of the owner's records.
	QueryByOwner(ctx context.Context, entity aggregate.EntityType, ownerId int) ([]aggregate.Record, error)
}

// RepositoryRecordStore serves records from the route, expense and assistant package repositories.
type RepositoryRecordStore struct {
	routes   route.Repository
	expenses expense.Repository
	packages assistant_package.Repository
}

func NewRepositoryRecordStore(routes route.Repository, expenses expense.Repository, packages assistant_package.Repository) *RepositoryRecordStore {
	return &RepositoryRecordStore{routes: routes, expenses: expenses, packages: packages}
}

func (s *RepositoryRecordStore) QueryByOwnerAndDateRange(ctx context.Context, entity aggregate.EntityType, ownerId int, from, to time.Time) ([]aggregate.Record, error) {
	switch entity {
	case aggregate.Routes:
		routes, err := s.routes.ListRoutesBetween(ctx, ownerId, from, to)
		if err != nil {
			return nil, err
		}
		return routeRecords(ownerId, routes), nil
	case aggregate.Expenses:
		expenses, err := s.expenses.ListExpensesBetween(ctx, ownerId, from, to)
		if err != nil {
			return nil, err
		}
		return expenseRecords(ownerId, expenses), nil
	case aggregate.AssistantPackages:
		packages, err := s.packages.ListPackagesBetween(ctx, ownerId, from, to)
		if err != nil {
			return nil, err
		}
		return packageRecords(ownerId, packages), nil
	}
	return nil, fmt.Errorf("unknown entity type: %s", entity)
}

func (s *RepositoryRecordStore) QueryByOwner(ctx context.Context, entity aggregate.EntityType, ownerId int) ([]aggregate.Record, error) {
	switch entity {
	case aggregate.Routes:
		routes, err := s.routes.ListRoutes(ctx, ownerId)
		if err != nil {
			return nil, err
		}
		return routeRecords(ownerId, routes), nil
	case aggregate.Expenses:
		expenses, err := s.expenses.ListExpenses(ctx, ownerId)
		if err != nil {
			return nil, err
		}
		return expenseRecords(ownerId, expenses), nil
	case aggregate.AssistantPackages:
		packages, err := s.packages.ListPackages(ctx, ownerId)
		if err != nil {
			return nil, err
		}
		return packageRecords(ownerId, packages), nil
	}
	return nil, fmt.Errorf("unknown entity type: %s", entity)
}

// Routes are categorized by vehicle type and counted in handled packages.
func routeRecords(ownerId int, routes []route.Route) []aggregate.Record {
	records := make([]aggregate.Record, 0, len(routes))
	for _, r := range routes {
		records = append(records, aggregate.Record{
			Id:       r.Id,
			OwnerId:  ownerId,
			Date:     r.Date,
			Category: string(r.VehicleType),
			Amount:   r.TotalValue,
			Units:    r.Packages(),
			Extra: map[string]any{
				ExtraRoutePackages: r.TotalPackages,
				ExtraLoosePackages: r.LoosePackages,
			},
		})
	}
	return records
}

func expenseRecords(ownerId int, expenses []expense.Expense) []aggregate.Record {
	records := make([]aggregate.Record, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, aggregate.Record{
			Id:       e.Id,
			OwnerId:  ownerId,
			Date:     e.Date,
			Category: e.Category,
			Amount:   e.Amount,
			Units:    1,
			Extra: map[string]any{
				ExtraPayment: e.PaymentMethod,
			},
		})
	}
	return records
}

// Assistant packages are categorized by assistant and counted in delivered packages.
func packageRecords(ownerId int, packages []assistant_package.AssistantPackage) []aggregate.Record {
	records := make([]aggregate.Record, 0, len(packages))
	for _, p := range packages {
		records = append(records, aggregate.Record{
			Id:       p.Id,
			OwnerId:  ownerId,
			Date:     p.DeliveryDate,
			Category: p.AssistantName,
			Amount:   p.TotalValue,
			Units:    p.PackagesDelivered,
			Extra: map[string]any{
				ExtraTotalStops: p.TotalStops,
			},
		})
	}
	return records
}

// intExtra sums an integer Extra field over records.
func intExtra(records []aggregate.Record, key string) int {
	total := 0
	for _, r := range records {
		if v, ok := r.Extra[key].(int); ok {
			total += v
		}
	}
	return total
}
