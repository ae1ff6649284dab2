package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/driverledger/driverledger/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreateExpense(ctx context.Context, expense Expense) (Expense, error)
	GetExpense(ctx context.Context, id uuid.UUID) (Expense, error)
	ListExpenses(ctx context.Context) ([]Expense, error)
	ListExpensesBetween(ctx context.Context, from, to time.Time) ([]Expense, error)
	UpdateExpense(ctx context.Context, expense Expense) (Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateExpense(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	expense = normalize(expense)
	if err := validate(expense); err != nil {
		return Expense{}, err
	}
	log.Debugf("Storing expense %q (%s) of %s", expense.Description, expense.Category, expense.Amount.StringFixed(2))
	return s.repo.StoreExpense(ctx, userId, expense)
}

func (s *ServiceImpl) GetExpense(ctx context.Context, id uuid.UUID) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetExpense(ctx, userId, id)
}

// ListExpenses returns the current user's expenses, most recent first.
func (s *ServiceImpl) ListExpenses(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListExpenses(ctx, userId)
}

func (s *ServiceImpl) ListExpensesBetween(ctx context.Context, from, to time.Time) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if to.Before(from) {
		return []Expense{}, nil
	}
	return s.repo.ListExpensesBetween(ctx, userId, from, to)
}

func (s *ServiceImpl) UpdateExpense(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	expense = normalize(expense)
	if err := validate(expense); err != nil {
		return Expense{}, err
	}
	updated, err := s.repo.UpdateExpense(ctx, userId, expense)
	if err != nil {
		return Expense{}, err
	}
	if !updated {
		return Expense{}, ErrExpenseNotFound
	}
	return s.repo.GetExpense(ctx, userId, expense.Id)
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeleteExpense(ctx, userId, id)
	if err == nil && !deleted {
		log.Warnf("expense %s not deleted, it does not exist for user %d", id, userId)
	}
	return deleted, err
}
