package expense

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	expenses map[int]map[uuid.UUID]Expense
	// Err, when set, is returned by every query.
	Err error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{expenses: map[int]map[uuid.UUID]Expense{}}
}

func (s *RepositoryStub) StoreExpense(ctx context.Context, userId int, expense Expense) (Expense, error) {
	if s.Err != nil {
		return Expense{}, s.Err
	}
	expense.Id = uuid.New()
	expense.CreatedAt = time.Now()
	if s.expenses[userId] == nil {
		s.expenses[userId] = map[uuid.UUID]Expense{}
	}
	s.expenses[userId][expense.Id] = expense
	return expense, nil
}

func (s *RepositoryStub) GetExpense(ctx context.Context, userId int, id uuid.UUID) (Expense, error) {
	if s.Err != nil {
		return Expense{}, s.Err
	}
	expense, ok := s.expenses[userId][id]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	return expense, nil
}

func (s *RepositoryStub) ListExpenses(ctx context.Context, userId int) ([]Expense, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	expenses := make([]Expense, 0, len(s.expenses[userId]))
	for _, expense := range s.expenses[userId] {
		expenses = append(expenses, expense)
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses, nil
}

func (s *RepositoryStub) ListExpensesBetween(ctx context.Context, userId int, from, to time.Time) ([]Expense, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	expenses := make([]Expense, 0)
	for _, expense := range s.expenses[userId] {
		if expense.Date.Before(from) || expense.Date.After(to) {
			continue
		}
		expenses = append(expenses, expense)
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date.Before(expenses[j].Date)
	})
	return expenses, nil
}

func (s *RepositoryStub) UpdateExpense(ctx context.Context, userId int, expense Expense) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	existing, ok := s.expenses[userId][expense.Id]
	if !ok {
		return false, nil
	}
	now := time.Now()
	expense.CreatedAt = existing.CreatedAt
	expense.UpdatedAt = &now
	s.expenses[userId][expense.Id] = expense
	return true, nil
}

func (s *RepositoryStub) DeleteExpense(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.expenses[userId][id]; !ok {
		return false, nil
	}
	delete(s.expenses[userId], id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.expenses = map[int]map[uuid.UUID]Expense{}
	s.Err = nil
}
