package assistant_package

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

var ErrPackageNotFound = errors.New("assistant package not found")
var ErrInvalidPackage = errors.New("invalid assistant package")

type Repository interface {
	StorePackage(ctx context.Context, userId int, p AssistantPackage) (AssistantPackage, error)
	GetPackage(ctx context.Context, userId int, id uuid.UUID) (AssistantPackage, error)
	ListPackages(ctx context.Context, userId int) ([]AssistantPackage, error)
	ListPackagesBetween(ctx context.Context, userId int, from, to time.Time) ([]AssistantPackage, error)
	DeletePackage(ctx context.Context, userId int, id uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectPackage = `SELECT id, assistant_name, delivery_date, total_stops, packages_delivered,
				value_per_stop::text, total_value::text, observations, created_at
			  FROM assistant_package`

func (r *RepositoryImpl) StorePackage(ctx context.Context, userId int, p AssistantPackage) (AssistantPackage, error) {
	query := `INSERT INTO assistant_package (id, user_id, assistant_name, delivery_date, total_stops,
					packages_delivered, value_per_stop, total_value, observations)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`

	p.Id = uuid.New()
	err := r.db.QueryRow(ctx, query,
		p.Id,
		userId,
		p.AssistantName,
		p.DeliveryDate,
		p.TotalStops,
		p.PackagesDelivered,
		p.ValuePerStop.String(),
		p.TotalValue.String(),
		p.Observations,
	).Scan(&p.CreatedAt)
	if err != nil {
		err := fmt.Errorf("could not store assistant package: %w", err)
		log.Error(err)
		return AssistantPackage{}, err
	}
	return p, nil
}

func (r *RepositoryImpl) GetPackage(ctx context.Context, userId int, id uuid.UUID) (AssistantPackage, error) {
	query := selectPackage + ` WHERE id = $1 AND user_id = $2`
	p, err := scanPackage(r.db.QueryRow(ctx, query, id, userId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AssistantPackage{}, ErrPackageNotFound
		}
		err := fmt.Errorf("could not get assistant package: %w", err)
		log.Error(err)
		return AssistantPackage{}, err
	}
	return p, nil
}

func (r *RepositoryImpl) ListPackages(ctx context.Context, userId int) ([]AssistantPackage, error) {
	query := selectPackage + ` WHERE user_id = $1 ORDER BY delivery_date DESC, created_at DESC`
	return r.queryPackages(ctx, query, userId)
}

func (r *RepositoryImpl) ListPackagesBetween(ctx context.Context, userId int, from, to time.Time) ([]AssistantPackage, error) {
	query := selectPackage + ` WHERE user_id = $1 AND delivery_date BETWEEN $2 AND $3 ORDER BY delivery_date, created_at`
	return r.queryPackages(ctx, query, userId, from, to)
}

func (r *RepositoryImpl) DeletePackage(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM assistant_package WHERE id = $1 AND user_id = $2", id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete assistant package: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) queryPackages(ctx context.Context, query string, args ...any) ([]AssistantPackage, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query assistant packages: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	packages := make([]AssistantPackage, 0, 16)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return packages, nil
}

func scanPackage(row pgx.Row) (AssistantPackage, error) {
	var p AssistantPackage
	var valuePerStop, totalValue string
	err := row.Scan(
		&p.Id,
		&p.AssistantName,
		&p.DeliveryDate,
		&p.TotalStops,
		&p.PackagesDelivered,
		&valuePerStop,
		&totalValue,
		&p.Observations,
		&p.CreatedAt,
	)
	if err != nil {
		return AssistantPackage{}, err
	}
	if p.ValuePerStop, err = decimal.NewFromString(valuePerStop); err != nil {
		return AssistantPackage{}, fmt.Errorf("invalid value per stop %q: %w", valuePerStop, err)
	}
	if p.TotalValue, err = decimal.NewFromString(totalValue); err != nil {
		return AssistantPackage{}, fmt.Errorf("invalid total value %q: %w", totalValue, err)
	}
	return p, nil
}
