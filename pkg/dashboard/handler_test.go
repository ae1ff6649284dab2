package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/driverledger/driverledger/pkg/route"
	"github.com/driverledger/driverledger/pkg/user"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withUser(userId int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := user.WithUser(r.Context(), user.User{Id: userId})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setupRouter(t *testing.T) (*mux.Router, func()) {
	teardown := setup(t)
	handler := NewHandler(service, NewCsvReportRenderer())
	router := mux.NewRouter()
	router.Handle("/api/dashboard", withUser(1, http.HandlerFunc(handler.GetDashboard))).Methods("GET")
	router.Handle("/api/report/category", withUser(1, http.HandlerFunc(handler.GetCategoryReport))).Methods("GET")
	router.Handle("/api/report/monthly", withUser(1, http.HandlerFunc(handler.GetMonthlyReport))).Methods("GET")
	router.Handle("/api/report/expenses", withUser(1, http.HandlerFunc(handler.GetExpenseReport))).Methods("GET")
	return router, teardown
}

func doRequest(router http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_GetDashboard(t *testing.T) {
	router, teardown := setupRouter(t)
	defer teardown()
	storeRoute(t, 1, day(2024, time.June, 20), route.Passeio, 100, 5, "380")
	storeExpense(t, 1, day(2024, time.June, 3), "fuel", "50")

	t.Run("defaults to the fortnight of today", func(t *testing.T) {
		w := doRequest(router, "/api/dashboard")

		require.Equal(t, http.StatusOK, w.Code)
		var dashboard DashboardDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dashboard))
		assert.Equal(t, "2024-06-16", dashboard.CurrentPeriod.Start)
		assert.Equal(t, "2024-06-30", dashboard.CurrentPeriod.End)
		assert.Equal(t, "2nd", dashboard.CurrentPeriod.Half)
		assert.Equal(t, "2024-06-01", dashboard.PreviousPeriod.Start)
		assert.Equal(t, "380.00", dashboard.Earnings.Current.TotalAmount)
		assert.Equal(t, "0.00", dashboard.Earnings.PercentVariance)
		assert.Equal(t, "50.00", dashboard.Expenses.Previous.TotalAmount)
		assert.Equal(t, "-50.00", dashboard.Expenses.Difference)
		assert.Equal(t, "380.00", dashboard.NetResult.Current)
		assert.Equal(t, 105, dashboard.PackagesHandled)
		assert.Equal(t, "3.62", dashboard.AverageEarningsPerPackage)
	})

	t.Run("uses the given date", func(t *testing.T) {
		w := doRequest(router, "/api/dashboard?date=2024-07-01")

		require.Equal(t, http.StatusOK, w.Code)
		var dashboard DashboardDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dashboard))
		assert.Equal(t, "2024-07-01", dashboard.CurrentPeriod.Start)
		assert.Equal(t, "2024-06-16", dashboard.PreviousPeriod.Start)
		assert.Equal(t, "380.00", dashboard.Earnings.Previous.TotalAmount)
		assert.Equal(t, "-100.00", dashboard.Earnings.PercentVariance)
	})

	t.Run("rejects an invalid date", func(t *testing.T) {
		w := doRequest(router, "/api/dashboard?date=20-06-2024")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetCategoryReport(t *testing.T) {
	router, teardown := setupRouter(t)
	defer teardown()
	storeExpense(t, 1, day(2024, time.June, 3), "fuel", "50")
	storeExpense(t, 1, day(2024, time.June, 20), "food", "30")

	w := doRequest(router, "/api/report/category")

	require.Equal(t, http.StatusOK, w.Code)
	var totals []CategoryTotalDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&totals))
	assert.Equal(t, []CategoryTotalDTO{
		{Category: "fuel", Total: "50.00", Count: 1},
		{Category: "food", Total: "30.00", Count: 1},
	}, totals)
}

func TestHandler_GetMonthlyReport(t *testing.T) {
	router, teardown := setupRouter(t)
	defer teardown()
	storeRoute(t, 1, day(2024, time.March, 2), route.Passeio, 10, 0, "330")

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantMonths int
	}{
		{"routes of the given year", "/api/report/monthly?year=2024&entity=routes", http.StatusOK, 1},
		{"expenses by default", "/api/report/monthly?year=2024", http.StatusOK, 0},
		{"current year by default", "/api/report/monthly?entity=routes", http.StatusOK, 1},
		{"invalid year", "/api/report/monthly?year=abc", http.StatusBadRequest, 0},
		{"invalid entity", "/api/report/monthly?entity=fuel", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.target)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var months []MonthTotalDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&months))
				assert.Len(t, months, tt.wantMonths)
			}
		})
	}
}

func TestHandler_GetExpenseReport(t *testing.T) {
	router, teardown := setupRouter(t)
	defer teardown()
	storeExpense(t, 1, day(2024, time.June, 3), "fuel", "50")
	storeRoute(t, 1, day(2024, time.June, 20), route.Passeio, 100, 5, "380")

	w := doRequest(router, "/api/report/expenses?year=2024")

	require.Equal(t, http.StatusOK, w.Code)
	var report ExpenseReportDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
	assert.Equal(t, "50.00", report.TotalExpenses)
	assert.Equal(t, "4.17", report.MonthlyAverage)
	assert.Equal(t, "330.00", report.NetProfit)
	assert.Equal(t, []MonthTotalDTO{{Month: "2024-06", Total: "50.00", Count: 1}}, report.Months)
}

func TestHandler_GetExpenseReport_Csv(t *testing.T) {
	router, teardown := setupRouter(t)
	defer teardown()
	storeExpense(t, 1, day(2024, time.June, 3), "fuel", "50")

	w := doRequest(router, "/api/report/expenses?year=2024", "Accept", "text/csv")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "expenses-2024.csv")
	assert.Contains(t, w.Body.String(), "fuel,50.00,1\n")
	assert.Contains(t, w.Body.String(), "Net profit,-50.00\n")
}
