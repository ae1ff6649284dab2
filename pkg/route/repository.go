package route

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

var ErrRouteNotFound = errors.New("route not found")
var ErrInvalidRoute = errors.New("invalid route")

type Repository interface {
	StoreRoute(ctx context.Context, userId int, route Route) (Route, error)
	GetRoute(ctx context.Context, userId int, id uuid.UUID) (Route, error)
	ListRoutes(ctx context.Context, userId int) ([]Route, error)
	ListRoutesBetween(ctx context.Context, userId int, from, to time.Time) ([]Route, error)
	UpdateRoute(ctx context.Context, userId int, route Route) (bool, error)
	DeleteRoute(ctx context.Context, userId int, id uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectRoute = `SELECT id, route_date, route_name, destination_city, vehicle_type, total_packages,
				loose_packages, has_helper, is_sunday_holiday, total_value::text, created_at, updated_at
			  FROM route`

func (r *RepositoryImpl) StoreRoute(ctx context.Context, userId int, route Route) (Route, error) {
	query := `INSERT INTO route (
					id,
					user_id,
					route_date,
					route_name,
					destination_city,
					vehicle_type,
					total_packages,
					loose_packages,
					has_helper,
					is_sunday_holiday,
					total_value
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING created_at`

	route.Id = uuid.New()
	err := r.db.QueryRow(ctx, query,
		route.Id,
		userId,
		route.Date,
		route.Name,
		route.DestinationCity,
		string(route.VehicleType),
		route.TotalPackages,
		route.LoosePackages,
		route.HasHelper,
		route.IsSundayOrHoliday,
		route.TotalValue.String(),
	).Scan(&route.CreatedAt)
	if err != nil {
		err := fmt.Errorf("could not store route: %w", err)
		log.Error(err)
		return Route{}, err
	}
	return route, nil
}

func (r *RepositoryImpl) GetRoute(ctx context.Context, userId int, id uuid.UUID) (Route, error) {
	query := selectRoute + ` WHERE id = $1 AND user_id = $2`
	route, err := scanRoute(r.db.QueryRow(ctx, query, id, userId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Route{}, ErrRouteNotFound
		}
		err := fmt.Errorf("could not get route: %w", err)
		log.Error(err)
		return Route{}, err
	}
	return route, nil
}

func (r *RepositoryImpl) ListRoutes(ctx context.Context, userId int) ([]Route, error) {
	query := selectRoute + ` WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryRoutes(ctx, query, userId)
}

// ListRoutesBetween returns routes whose date is within [from, to], both inclusive.
func (r *RepositoryImpl) ListRoutesBetween(ctx context.Context, userId int, from, to time.Time) ([]Route, error) {
	query := selectRoute + ` WHERE user_id = $1 AND route_date BETWEEN $2 AND $3 ORDER BY route_date`
	return r.queryRoutes(ctx, query, userId, from, to)
}

func (r *RepositoryImpl) UpdateRoute(ctx context.Context, userId int, route Route) (bool, error) {
	query := `UPDATE route SET
					route_date = $1,
					route_name = $2,
					destination_city = $3,
					vehicle_type = $4,
					total_packages = $5,
					loose_packages = $6,
					has_helper = $7,
					is_sunday_holiday = $8,
					total_value = $9,
					updated_at = now()
				WHERE id = $10 AND user_id = $11`
	result, err := r.db.Exec(ctx, query,
		route.Date,
		route.Name,
		route.DestinationCity,
		string(route.VehicleType),
		route.TotalPackages,
		route.LoosePackages,
		route.HasHelper,
		route.IsSundayOrHoliday,
		route.TotalValue.String(),
		route.Id,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update route: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) DeleteRoute(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	query := "DELETE FROM route WHERE id = $1 AND user_id = $2"
	result, err := r.db.Exec(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete route: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) queryRoutes(ctx context.Context, query string, args ...any) ([]Route, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query routes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	routes := make([]Route, 0, 16)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return routes, nil
}

func scanRoute(row pgx.Row) (Route, error) {
	var route Route
	var vehicleType string
	var totalValue string
	err := row.Scan(
		&route.Id,
		&route.Date,
		&route.Name,
		&route.DestinationCity,
		&vehicleType,
		&route.TotalPackages,
		&route.LoosePackages,
		&route.HasHelper,
		&route.IsSundayOrHoliday,
		&totalValue,
		&route.CreatedAt,
		&route.UpdatedAt,
	)
	if err != nil {
		return Route{}, err
	}
	route.VehicleType = VehicleType(vehicleType)
	route.TotalValue, err = decimal.NewFromString(totalValue)
	if err != nil {
		return Route{}, fmt.Errorf("invalid total value %q: %w", totalValue, err)
	}
	return route, nil
}
