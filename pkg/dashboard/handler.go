package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/driverledger/driverledger/internal/rest"
	"github.com/driverledger/driverledger/pkg/aggregate"
	"github.com/driverledger/driverledger/pkg/fortnight"
	"github.com/driverledger/driverledger/pkg/user"
	log "github.com/sirupsen/logrus"
)

type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Half  string `json:"half"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
}

type CategoryTotalDTO struct {
	Category string `json:"category"`
	Total    string `json:"total"`
	Count    int    `json:"count"`
}

type MonthTotalDTO struct {
	Month string `json:"month"`
	Total string `json:"total"`
	Count int    `json:"count"`
}

type AggregateDTO struct {
	Count       int                `json:"count"`
	TotalAmount string             `json:"totalAmount"`
	Units       int                `json:"units"`
	ByCategory  []CategoryTotalDTO `json:"byCategory"`
	ByMonth     []MonthTotalDTO    `json:"byMonth"`
}

type ComparisonDTO struct {
	Current         AggregateDTO `json:"current"`
	Previous        AggregateDTO `json:"previous"`
	PercentVariance string       `json:"percentVariance"`
	Difference      string       `json:"difference"`
}

type NetResultDTO struct {
	Current         string `json:"current"`
	Previous        string `json:"previous"`
	PercentVariance string `json:"percentVariance"`
}

type DashboardDTO struct {
	CurrentPeriod             PeriodDTO     `json:"currentPeriod"`
	PreviousPeriod            PeriodDTO     `json:"previousPeriod"`
	Earnings                  ComparisonDTO `json:"earnings"`
	Expenses                  ComparisonDTO `json:"expenses"`
	AssistantCosts            ComparisonDTO `json:"assistantCosts"`
	NetResult                 NetResultDTO  `json:"netResult"`
	RoutePackages             int           `json:"routePackages"`
	LoosePackages             int           `json:"loosePackages"`
	PackagesHandled           int           `json:"packagesHandled"`
	AverageEarningsPerPackage string        `json:"averageEarningsPerPackage"`
}

type ExpenseReportDTO struct {
	Year              int                `json:"year"`
	Categories        []CategoryTotalDTO `json:"categories"`
	Months            []MonthTotalDTO    `json:"months"`
	TotalExpenses     string             `json:"totalExpenses"`
	TotalTransactions int                `json:"totalTransactions"`
	MonthlyAverage    string             `json:"monthlyAverage"`
	TotalEarnings     string             `json:"totalEarnings"`
	NetProfit         string             `json:"netProfit"`
}

type Handler struct {
	service  Service
	renderer ReportRenderer
}

func NewHandler(service Service, renderer ReportRenderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// GetDashboard godoc
// @Summary Get fortnight dashboard
// @Description Compare earnings, expenses and assistant costs of the fortnight containing the date with the previous fortnight
// @Tags Dashboard
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} DashboardDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Router /api/dashboard [get]
// @Security XUserId
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting dashboard")
	ref := h.service.Today()
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, err := fortnight.ParseDate(dateParam)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
			return
		}
		ref = date
	}

	dashboard, err := h.service.GetDashboardMetrics(r.Context(), ref)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, dashboardToDTO(dashboard))
}

// GetCategoryReport godoc
// @Summary Expenses by category
// @Description Total the whole expense history by category, largest first
// @Tags Report
// @Produce json
// @Success 200 {array} CategoryTotalDTO
// @Router /api/report/category [get]
// @Security XUserId
func (h *Handler) GetCategoryReport(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting category report")
	totals, err := h.service.GetCategoryReport(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, categoriesToDTO(totals))
}

// GetMonthlyReport godoc
// @Summary Monthly totals
// @Description Total routes, expenses or assistant packages of a year by month
// @Tags Report
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Param entity query string false "routes, expenses or assistant_packages (default expenses)"
// @Success 200 {array} MonthTotalDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year or entity"
// @Router /api/report/monthly [get]
// @Security XUserId
func (h *Handler) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting monthly report")
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	entity := aggregate.Expenses
	if entityParam := r.URL.Query().Get("entity"); entityParam != "" {
		parsed, err := aggregate.ParseEntityType(entityParam)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid entity", err.Error())
			return
		}
		entity = parsed
	}

	months, err := h.service.GetMonthlyReport(r.Context(), entity, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, monthsToDTO(months))
}

// GetExpenseReport godoc
// @Summary Yearly expense report
// @Description Expense breakdown of a year with earnings and net profit
// @Tags Report
// @Produce json,text/csv
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {object} ExpenseReportDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid year"
// @Router /api/report/expenses [get]
// @Security XUserId
func (h *Handler) GetExpenseReport(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting expense report")
	year, ok := h.yearParam(w, r)
	if !ok {
		return
	}
	report, err := h.service.GetExpenseReport(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderExpenseReport(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses-%d.csv\"", year))
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv report: %v", err)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, ExpenseReportDTO{
		Year:              report.Year,
		Categories:        categoriesToDTO(report.Categories),
		Months:            monthsToDTO(report.Months),
		TotalExpenses:     report.TotalExpenses.StringFixed(2),
		TotalTransactions: report.TotalTransactions,
		MonthlyAverage:    report.MonthlyAverage.StringFixed(2),
		TotalEarnings:     report.TotalEarnings.StringFixed(2),
		NetProfit:         report.NetProfit.StringFixed(2),
	})
}

func (h *Handler) yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	yearParam := r.URL.Query().Get("year")
	if yearParam == "" {
		return h.service.Today().Year(), true
	}
	year, err := strconv.Atoi(yearParam)
	if err != nil || year < 1 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", yearParam)
		return 0, false
	}
	return year, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidReport):
		rest.WriteError(w, http.StatusBadRequest, "Invalid report request", err.Error())
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func dashboardToDTO(d Dashboard) DashboardDTO {
	return DashboardDTO{
		CurrentPeriod:  periodToDTO(d.Current),
		PreviousPeriod: periodToDTO(d.Previous),
		Earnings:       comparisonToDTO(d.Earnings),
		Expenses:       comparisonToDTO(d.Expenses),
		AssistantCosts: comparisonToDTO(d.AssistantCosts),
		NetResult: NetResultDTO{
			Current:         d.NetResult.Current.StringFixed(2),
			Previous:        d.NetResult.Previous.StringFixed(2),
			PercentVariance: d.NetResult.PercentVariance.StringFixed(2),
		},
		RoutePackages:             d.RoutePackages,
		LoosePackages:             d.LoosePackages,
		PackagesHandled:           d.PackagesHandled,
		AverageEarningsPerPackage: d.AverageEarningsPerPackage.StringFixed(2),
	}
}

func periodToDTO(p fortnight.Period) PeriodDTO {
	return PeriodDTO{
		Start: fortnight.FormatDate(p.Start),
		End:   fortnight.FormatDate(p.End),
		Half:  p.Label(),
		Month: int(p.Month),
		Year:  p.Year,
	}
}

func comparisonToDTO(m aggregate.ComparativeMetrics) ComparisonDTO {
	return ComparisonDTO{
		Current:         aggregateToDTO(m.Current),
		Previous:        aggregateToDTO(m.Previous),
		PercentVariance: m.PercentVariance.StringFixed(2),
		Difference:      m.Difference().StringFixed(2),
	}
}

func aggregateToDTO(a aggregate.PeriodAggregate) AggregateDTO {
	return AggregateDTO{
		Count:       a.Count,
		TotalAmount: a.TotalAmount.StringFixed(2),
		Units:       a.Units,
		ByCategory:  categoriesToDTO(a.ByCategory),
		ByMonth:     monthsToDTO(a.ByMonth),
	}
}

func categoriesToDTO(totals []aggregate.CategoryTotal) []CategoryTotalDTO {
	dtos := make([]CategoryTotalDTO, 0, len(totals))
	for _, c := range totals {
		dtos = append(dtos, CategoryTotalDTO{Category: c.Category, Total: c.Total.StringFixed(2), Count: c.Count})
	}
	return dtos
}

func monthsToDTO(months []aggregate.MonthTotal) []MonthTotalDTO {
	dtos := make([]MonthTotalDTO, 0, len(months))
	for _, m := range months {
		dtos = append(dtos, MonthTotalDTO{Month: m.YearMonth.String(), Total: m.Total.StringFixed(2), Count: m.Count})
	}
	return dtos
}
