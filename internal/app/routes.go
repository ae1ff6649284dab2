package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// User
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/email-availability", deps.UserHandler.IsEmailAvailable).Methods("GET")

	// Route
	r.HandleFunc("/api/route", deps.RouteHandler.ListRoutes).Methods("GET")
	r.HandleFunc("/api/route", deps.RouteHandler.CreateRoute).Methods("POST")
	r.HandleFunc("/api/route/quote", deps.RouteHandler.QuoteRoute).Methods("POST")
	r.HandleFunc("/api/route/{routeId}", deps.RouteHandler.GetRoute).Methods("GET")
	r.HandleFunc("/api/route/{routeId}", deps.RouteHandler.UpdateRoute).Methods("PUT")
	r.HandleFunc("/api/route/{routeId}", deps.RouteHandler.DeleteRoute).Methods("DELETE")

	// Expense
	r.HandleFunc("/api/expense", deps.ExpenseHandler.ListExpenses).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.CreateExpense).Methods("POST")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.GetExpense).Methods("GET")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.UpdateExpense).Methods("PUT")
	r.HandleFunc("/api/expense/{expenseId}", deps.ExpenseHandler.DeleteExpense).Methods("DELETE")

	// Assistant package
	r.HandleFunc("/api/assistant-package", deps.PackageHandler.ListPackages).Methods("GET")
	r.HandleFunc("/api/assistant-package", deps.PackageHandler.CreatePackage).Methods("POST")
	r.HandleFunc("/api/assistant-package/{packageId}", deps.PackageHandler.GetPackage).Methods("GET")
	r.HandleFunc("/api/assistant-package/{packageId}", deps.PackageHandler.DeletePackage).Methods("DELETE")

	// Dashboard and reports
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetDashboard).Methods("GET")
	r.HandleFunc("/api/report/category", deps.DashboardHandler.GetCategoryReport).Methods("GET")
	r.HandleFunc("/api/report/monthly", deps.DashboardHandler.GetMonthlyReport).Methods("GET")
	r.HandleFunc("/api/report/expenses", deps.DashboardHandler.GetExpenseReport).Methods("GET")
}
