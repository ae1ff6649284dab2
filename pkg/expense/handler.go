package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/driverledger/driverledger/internal/rest"
	"github.com/driverledger/driverledger/pkg/fortnight"
	"github.com/driverledger/driverledger/pkg/user"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	Id            string     `json:"id,omitempty"`
	Date          string     `json:"date"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Amount        string     `json:"amount"`
	PaymentMethod string     `json:"paymentMethod"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListExpenses godoc
// @Summary List expenses
// @Description List the current user's expenses, optionally limited to an inclusive date range
// @Tags Expense
// @Produce json
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date"
// @Router /api/expense [get]
// @Security XUserId
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing expenses")
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	var expenses []Expense
	var err error
	if fromParam == "" && toParam == "" {
		expenses, err = h.service.ListExpenses(r.Context())
	} else {
		from, parseErr := fortnight.ParseDate(fromParam)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid 'from' date", parseErr.Error())
			return
		}
		to, parseErr := fortnight.ParseDate(toParam)
		if parseErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid 'to' date", parseErr.Error())
			return
		}
		expenses, err = h.service.ListExpensesBetween(r.Context(), from, to)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	expensesDTO := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		expensesDTO = append(expensesDTO, expenseToDTO(expense))
	}
	rest.WriteJSON(w, http.StatusOK, expensesDTO)
}

// CreateExpense godoc
// @Summary Register an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid expense"
// @Router /api/expense [post]
// @Security XUserId
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating expense")
	var expenseDTO ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&expenseDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	expense, err := dtoToExpense(expenseDTO)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	created, err := h.service.CreateExpense(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, expenseToDTO(created))
}

// GetExpense godoc
// @Summary Get an expense
// @Tags Expense
// @Produce json
// @Param expenseId path string true "Expense ID"
// @Success 200 {object} ExpenseDTO
// @Failure 404 {object} rest.ErrorResponse "Expense not found"
// @Router /api/expense/{expenseId} [get]
// @Security XUserId
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expenseId, err := uuid.Parse(mux.Vars(r)["expenseId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense id", err.Error())
		return
	}
	expense, err := h.service.GetExpense(r.Context(), expenseId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, expenseToDTO(expense))
}

// UpdateExpense godoc
// @Summary Update an expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expenseId path string true "Expense ID"
// @Param expense body ExpenseDTO true "Expense"
// @Success 200 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid expense"
// @Failure 404 {object} rest.ErrorResponse "Expense not found"
// @Router /api/expense/{expenseId} [put]
// @Security XUserId
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating expense")
	expenseId, err := uuid.Parse(mux.Vars(r)["expenseId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense id", err.Error())
		return
	}
	var expenseDTO ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&expenseDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if expenseDTO.Id != "" && expenseDTO.Id != expenseId.String() {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense id in request body", "")
		return
	}
	expense, err := dtoToExpense(expenseDTO)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	expense.Id = expenseId

	updated, err := h.service.UpdateExpense(r.Context(), expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, expenseToDTO(updated))
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expense
// @Param expenseId path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse "Expense not found"
// @Router /api/expense/{expenseId} [delete]
// @Security XUserId
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting expense")
	expenseId, err := uuid.Parse(mux.Vars(r)["expenseId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense id", err.Error())
		return
	}
	deleted, err := h.service.DeleteExpense(r.Context(), expenseId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		rest.WriteError(w, http.StatusNotFound, ErrExpenseNotFound.Error(), "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidExpense):
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense", err.Error())
	case errors.Is(err, ErrExpenseNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func expenseToDTO(expense Expense) ExpenseDTO {
	createdAt := expense.CreatedAt
	return ExpenseDTO{
		Id:            expense.Id.String(),
		Date:          fortnight.FormatDate(expense.Date),
		Description:   expense.Description,
		Category:      expense.Category,
		Amount:        expense.Amount.StringFixed(2),
		PaymentMethod: expense.PaymentMethod,
		Notes:         expense.Notes,
		CreatedAt:     &createdAt,
		UpdatedAt:     expense.UpdatedAt,
	}
}

func dtoToExpense(dto ExpenseDTO) (Expense, error) {
	date, err := fortnight.ParseDate(dto.Date)
	if err != nil {
		return Expense{}, errors.Join(ErrInvalidExpense, err)
	}
	amount, err := ParseAmount(dto.Amount)
	if err != nil {
		return Expense{}, err
	}
	return Expense{
		Date:          date,
		Description:   dto.Description,
		Category:      dto.Category,
		Amount:        amount,
		PaymentMethod: dto.PaymentMethod,
		Notes:         dto.Notes,
	}, nil
}
