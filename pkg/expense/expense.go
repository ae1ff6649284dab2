package expense

import (
	"fmt"
	"strings"
	"time"

	"github.com/driverledger/driverledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxDescriptionLength   = 255
	maxCategoryLength      = 64
	maxPaymentMethodLength = 64
)

type Expense struct {
	Id            uuid.UUID
	Date          time.Time
	Description   string
	Category      string
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// ParseAmount parses a money amount written either as "1234.56" or with a decimal comma
// ("1234,56", "1.234,56").
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidExpense)
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", ErrInvalidExpense, s)
	}
	return amount, nil
}

func validate(expense Expense) error {
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidExpense)
	}
	if expense.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidExpense)
	}
	if expense.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidExpense)
	}
	if expense.PaymentMethod == "" {
		return fmt.Errorf("%w: payment method is required", ErrInvalidExpense)
	}
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidExpense)
	}
	if !expense.Amount.Equal(expense.Amount.Round(utils.MoneyDecimals)) {
		return fmt.Errorf("%w: amount must have at most two decimal places", ErrInvalidExpense)
	}
	if !utils.FitsMoney(expense.Amount) {
		return fmt.Errorf("%w: amount must not exceed %s", ErrInvalidExpense, utils.MaxMoney.StringFixed(2))
	}
	if !utils.FitsVarchar(expense.Description, maxDescriptionLength) {
		return fmt.Errorf("%w: description must not exceed %d characters", ErrInvalidExpense, maxDescriptionLength)
	}
	if !utils.FitsVarchar(expense.Category, maxCategoryLength) {
		return fmt.Errorf("%w: category must not exceed %d characters", ErrInvalidExpense, maxCategoryLength)
	}
	if !utils.FitsVarchar(expense.PaymentMethod, maxPaymentMethodLength) {
		return fmt.Errorf("%w: payment method must not exceed %d characters", ErrInvalidExpense, maxPaymentMethodLength)
	}
	return nil
}

func normalize(expense Expense) Expense {
	expense.Description = strings.TrimSpace(expense.Description)
	expense.Category = strings.TrimSpace(expense.Category)
	expense.PaymentMethod = strings.TrimSpace(expense.PaymentMethod)
	expense.Notes = strings.TrimSpace(expense.Notes)
	return expense
}
