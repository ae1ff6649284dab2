package route

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/driverledger/driverledger/internal/utils"
	"github.com/driverledger/driverledger/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreateRoute(ctx context.Context, route Route) (Route, error)
	GetRoute(ctx context.Context, id uuid.UUID) (Route, error)
	ListRoutes(ctx context.Context) ([]Route, error)
	ListRoutesBetween(ctx context.Context, from, to time.Time) ([]Route, error)
	UpdateRoute(ctx context.Context, route Route) (Route, error)
	DeleteRoute(ctx context.Context, id uuid.UUID) (bool, error)
	Quote(ctx context.Context, attrs Attributes) (decimal.Decimal, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateRoute(ctx context.Context, route Route) (Route, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Route{}, fmt.Errorf("failed to get current user: %w", err)
	}
	route = normalize(route)
	if err := validate(route); err != nil {
		return Route{}, err
	}
	route.TotalValue = Price(route.Attributes)
	log.Debugf("Storing route %q valued at %s", route.Name, route.TotalValue.StringFixed(2))
	return s.repo.StoreRoute(ctx, userId, route)
}

func (s *ServiceImpl) GetRoute(ctx context.Context, id uuid.UUID) (Route, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Route{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetRoute(ctx, userId, id)
}

func (s *ServiceImpl) ListRoutes(ctx context.Context) ([]Route, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListRoutes(ctx, userId)
}

func (s *ServiceImpl) ListRoutesBetween(ctx context.Context, from, to time.Time) ([]Route, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if to.Before(from) {
		return []Route{}, nil
	}
	return s.repo.ListRoutesBetween(ctx, userId, from, to)
}

// UpdateRoute replaces the route data and recomputes its value.
func (s *ServiceImpl) UpdateRoute(ctx context.Context, route Route) (Route, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Route{}, fmt.Errorf("failed to get current user: %w", err)
	}
	route = normalize(route)
	if err := validate(route); err != nil {
		return Route{}, err
	}
	route.TotalValue = Price(route.Attributes)
	updated, err := s.repo.UpdateRoute(ctx, userId, route)
	if err != nil {
		return Route{}, err
	}
	if !updated {
		return Route{}, ErrRouteNotFound
	}
	return s.repo.GetRoute(ctx, userId, route.Id)
}

func (s *ServiceImpl) DeleteRoute(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteRoute(ctx, userId, id)
}

// Quote prices a route without storing it.
func (s *ServiceImpl) Quote(ctx context.Context, attrs Attributes) (decimal.Decimal, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := ValidateAttributes(attrs); err != nil {
		return decimal.Zero, err
	}
	return Price(attrs), nil
}

func normalize(route Route) Route {
	route.Name = strings.TrimSpace(route.Name)
	route.DestinationCity = strings.TrimSpace(route.DestinationCity)
	route.VehicleType = VehicleType(strings.ToLower(strings.TrimSpace(string(route.VehicleType))))
	return route
}

const maxTextLength = 255

func validate(route Route) error {
	if route.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRoute)
	}
	if route.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRoute)
	}
	if !utils.FitsVarchar(route.Name, maxTextLength) {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidRoute, maxTextLength)
	}
	if route.DestinationCity == "" {
		return fmt.Errorf("%w: destination city is required", ErrInvalidRoute)
	}
	if !utils.FitsVarchar(route.DestinationCity, maxTextLength) {
		return fmt.Errorf("%w: destination city must not exceed %d characters", ErrInvalidRoute, maxTextLength)
	}
	return ValidateAttributes(route.Attributes)
}
