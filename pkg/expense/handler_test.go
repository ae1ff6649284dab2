package expense

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/driverledger/driverledger/internal/rest"
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

func setupRouter(t *testing.T) *mux.Router {
	handler := NewHandler(NewService(NewRepositoryStub()))
	router := mux.NewRouter()
	router.Handle("/api/expense", withUser(1, http.HandlerFunc(handler.ListExpenses))).Methods("GET")
	router.Handle("/api/expense", withUser(1, http.HandlerFunc(handler.CreateExpense))).Methods("POST")
	router.Handle("/api/expense/{expenseId}", withUser(1, http.HandlerFunc(handler.GetExpense))).Methods("GET")
	router.Handle("/api/expense/{expenseId}", withUser(1, http.HandlerFunc(handler.UpdateExpense))).Methods("PUT")
	router.Handle("/api/expense/{expenseId}", withUser(1, http.HandlerFunc(handler.DeleteExpense))).Methods("DELETE")
	return router
}

func doRequest(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var expenseDTO = ExpenseDTO{
	Date:          "2024-06-03",
	Description:   "Gasolina",
	Category:      "Combustível",
	Amount:        "150,75",
	PaymentMethod: "pix",
}

func TestHandler_CreateExpense_AcceptsDecimalComma(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/expense", expenseDTO)

	require.Equal(t, http.StatusCreated, w.Code)
	var created ExpenseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "150.75", created.Amount)
	assert.NotEmpty(t, created.Id)
}

func TestHandler_CreateExpense_Invalid(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name   string
		modify func(dto *ExpenseDTO)
	}{
		{"invalid amount", func(dto *ExpenseDTO) { dto.Amount = "abc" }},
		{"zero amount", func(dto *ExpenseDTO) { dto.Amount = "0" }},
		{"invalid date", func(dto *ExpenseDTO) { dto.Date = "2024-13-01" }},
		{"missing category", func(dto *ExpenseDTO) { dto.Category = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := expenseDTO
			tt.modify(&dto)

			w := doRequest(t, router, http.MethodPost, "/api/expense", dto)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var errorResponse rest.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&errorResponse))
			assert.Equal(t, "Invalid expense", errorResponse.Error)
		})
	}
}

func TestHandler_ExpenseLifecycle(t *testing.T) {
	router := setupRouter(t)
	w := doRequest(t, router, http.MethodPost, "/api/expense", expenseDTO)
	require.Equal(t, http.StatusCreated, w.Code)
	var created ExpenseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	update := expenseDTO
	update.Amount = "99.90"
	w = doRequest(t, router, http.MethodPut, "/api/expense/"+created.Id, update)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/expense?from=2024-06-01&to=2024-06-15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var expenses []ExpenseDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&expenses))
	require.Len(t, expenses, 1)
	assert.Equal(t, "99.90", expenses[0].Amount)

	w = doRequest(t, router, http.MethodDelete, "/api/expense/"+created.Id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/expense/"+created.Id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
