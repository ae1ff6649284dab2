package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/driverledger/driverledger/internal/test_utils"
	"github.com/driverledger/driverledger/internal/utils"
	"github.com/driverledger/driverledger/pkg/aggregate"
	"github.com/driverledger/driverledger/pkg/assistant_package"
	"github.com/driverledger/driverledger/pkg/expense"
	"github.com/driverledger/driverledger/pkg/route"
	"github.com/driverledger/driverledger/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryRecordStore_Postgres(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	ownerId := test_utils.InsertUser(t, db, "owner@example.com")
	otherId := test_utils.InsertUser(t, db, "other@example.com")
	routes := route.NewRepository(db)
	expenses := expense.NewRepository(db)
	packages := assistant_package.NewRepository(db)
	bg := context.Background()

	attrs := route.Attributes{VehicleType: route.Passeio, TotalPackages: 100, LoosePackages: 5, HasHelper: true}
	_, err := routes.StoreRoute(bg, ownerId, route.Route{
		Date: day(2024, time.June, 20), Name: "Centro", DestinationCity: "Campinas",
		Attributes: attrs, TotalValue: route.Price(attrs),
	})
	require.NoError(t, err)
	for _, e := range []struct {
		owner    int
		date     time.Time
		category string
		amount   string
	}{
		{ownerId, day(2024, time.June, 3), "fuel", "50"},
		{ownerId, day(2024, time.June, 20), "food", "30"},
		{otherId, day(2024, time.June, 20), "fuel", "999"},
	} {
		_, err := expenses.StoreExpense(bg, e.owner, expense.Expense{
			Date: e.date, Description: e.category, Category: e.category,
			Amount: decimal.RequireFromString(e.amount), PaymentMethod: "pix",
		})
		require.NoError(t, err)
	}
	_, err = packages.StorePackage(bg, ownerId, assistant_package.AssistantPackage{
		AssistantName: "Ana", DeliveryDate: day(2024, time.June, 16), TotalStops: 10, PackagesDelivered: 8,
		ValuePerStop: decimal.RequireFromString("2"), TotalValue: decimal.RequireFromString("20"),
	})
	require.NoError(t, err)

	store := NewRepositoryRecordStore(routes, expenses, packages)
	dashboardService := NewService(store, &utils.MockClock{FixedNow: day(2024, time.June, 20)})
	ctx := user.WithUser(bg, user.User{Id: ownerId})

	t.Run("category report is per owner and largest first", func(t *testing.T) {
		totals, err := dashboardService.GetCategoryReport(ctx)

		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, "fuel", totals[0].Category)
		assert.Equal(t, "50.00", totals[0].Total.StringFixed(2))
		assert.Equal(t, "food", totals[1].Category)
		assert.Equal(t, "30.00", totals[1].Total.StringFixed(2))
	})

	t.Run("date range includes both ends", func(t *testing.T) {
		records, err := store.QueryByOwnerAndDateRange(bg, aggregate.Expenses, ownerId, day(2024, time.June, 3), day(2024, time.June, 20))

		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("dashboard reads every entity", func(t *testing.T) {
		dashboard, err := dashboardService.GetDashboardMetrics(ctx, day(2024, time.June, 20))

		require.NoError(t, err)
		assert.Equal(t, "380.00", dashboard.Earnings.Current.TotalAmount.StringFixed(2))
		assert.Equal(t, "30.00", dashboard.Expenses.Current.TotalAmount.StringFixed(2))
		assert.Equal(t, "50.00", dashboard.Expenses.Previous.TotalAmount.StringFixed(2))
		assert.Equal(t, "20.00", dashboard.AssistantCosts.Current.TotalAmount.StringFixed(2))
		assert.Equal(t, "330.00", dashboard.NetResult.Current.StringFixed(2))
		assert.Equal(t, 105, dashboard.PackagesHandled)
	})
}
