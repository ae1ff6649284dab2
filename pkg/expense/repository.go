package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseNotFound = errors.New("expense not found")
var ErrInvalidExpense = errors.New("invalid expense")

type Repository interface {
	StoreExpense(ctx context.Context, userId int, expense Expense) (Expense, error)
	GetExpense(ctx context.Context, userId int, id uuid.UUID) (Expense, error)
	ListExpenses(ctx context.Context, userId int) ([]Expense, error)
	ListExpensesBetween(ctx context.Context, userId int, from, to time.Time) ([]Expense, error)
	UpdateExpense(ctx context.Context, userId int, expense Expense) (bool, error)
	DeleteExpense(ctx context.Context, userId int, id uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectExpense = `SELECT id, expense_date, description, category, amount::text, payment_method, notes,
				created_at, updated_at
			  FROM expense`

func (r *RepositoryImpl) StoreExpense(ctx context.Context, userId int, expense Expense) (Expense, error) {
	query := `INSERT INTO expense (id, user_id, expense_date, description, category, amount, payment_method, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`

	expense.Id = uuid.New()
	err := r.db.QueryRow(ctx, query,
		expense.Id,
		userId,
		expense.Date,
		expense.Description,
		expense.Category,
		expense.Amount.String(),
		expense.PaymentMethod,
		expense.Notes,
	).Scan(&expense.CreatedAt)
	if err != nil {
		err := fmt.Errorf("could not store expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepositoryImpl) GetExpense(ctx context.Context, userId int, id uuid.UUID) (Expense, error) {
	query := selectExpense + ` WHERE id = $1 AND user_id = $2`
	expense, err := scanExpense(r.db.QueryRow(ctx, query, id, userId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, ErrExpenseNotFound
		}
		err := fmt.Errorf("could not get expense: %w", err)
		log.Error(err)
		return Expense{}, err
	}
	return expense, nil
}

func (r *RepositoryImpl) ListExpenses(ctx context.Context, userId int) ([]Expense, error) {
	query := selectExpense + ` WHERE user_id = $1 ORDER BY expense_date DESC, created_at DESC`
	return r.queryExpenses(ctx, query, userId)
}

func (r *RepositoryImpl) ListExpensesBetween(ctx context.Context, userId int, from, to time.Time) ([]Expense, error) {
	query := selectExpense + ` WHERE user_id = $1 AND expense_date BETWEEN $2 AND $3 ORDER BY expense_date, created_at`
	return r.queryExpenses(ctx, query, userId, from, to)
}

func (r *RepositoryImpl) UpdateExpense(ctx context.Context, userId int, expense Expense) (bool, error) {
	query := `UPDATE expense SET
					expense_date = $1,
					description = $2,
					category = $3,
					amount = $4,
					payment_method = $5,
					notes = $6,
					updated_at = now()
				WHERE id = $7 AND user_id = $8`
	result, err := r.db.Exec(ctx, query,
		expense.Date,
		expense.Description,
		expense.Category,
		expense.Amount.String(),
		expense.PaymentMethod,
		expense.Notes,
		expense.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update expense: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) DeleteExpense(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM expense WHERE id = $1 AND user_id = $2", id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) queryExpenses(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	expenses := make([]Expense, 0, 16)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return expenses, nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var expense Expense
	var amount string
	err := row.Scan(
		&expense.Id,
		&expense.Date,
		&expense.Description,
		&expense.Category,
		&amount,
		&expense.PaymentMethod,
		&expense.Notes,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		return Expense{}, err
	}
	expense.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return Expense{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return expense, nil
}
