package app

import (
	"github.com/driverledger/driverledger/internal/utils"
	"github.com/driverledger/driverledger/pkg/assistant_package"
	"github.com/driverledger/driverledger/pkg/dashboard"
	"github.com/driverledger/driverledger/pkg/expense"
	"github.com/driverledger/driverledger/pkg/route"
	"github.com/driverledger/driverledger/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	RouteRepo    route.Repository
	RouteService route.Service
	RouteHandler *route.Handler

	ExpenseRepo    expense.Repository
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	PackageRepo    assistant_package.Repository
	PackageService assistant_package.Service
	PackageHandler *assistant_package.Handler

	RecordStore      dashboard.RecordStore
	DashboardService dashboard.Service
	DashboardHandler *dashboard.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool) *Dependencies {
	deps := &Dependencies{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.RouteRepo = route.NewRepository(db)
	deps.RouteService = route.NewService(deps.RouteRepo)
	deps.RouteHandler = route.NewHandler(deps.RouteService)

	deps.ExpenseRepo = expense.NewRepository(db)
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.PackageRepo = assistant_package.NewRepository(db)
	deps.PackageService = assistant_package.NewService(deps.PackageRepo)
	deps.PackageHandler = assistant_package.NewHandler(deps.PackageService)

	deps.Clock = &utils.SystemClock{}
	deps.RecordStore = dashboard.NewRepositoryRecordStore(deps.RouteRepo, deps.ExpenseRepo, deps.PackageRepo)
	deps.DashboardService = dashboard.NewService(deps.RecordStore, deps.Clock)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService, dashboard.NewCsvReportRenderer())

	return deps
}
