package assistant_package

import (
	"context"
	"fmt"
	"time"

	"github.com/driverledger/driverledger/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreatePackage(ctx context.Context, p AssistantPackage) (AssistantPackage, error)
	GetPackage(ctx context.Context, id uuid.UUID) (AssistantPackage, error)
	ListPackages(ctx context.Context) ([]AssistantPackage, error)
	ListPackagesBetween(ctx context.Context, from, to time.Time) ([]AssistantPackage, error)
	DeletePackage(ctx context.Context, id uuid.UUID) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

// CreatePackage validates the delivery and stores it with its total value computed from the stops.
func (s *ServiceImpl) CreatePackage(ctx context.Context, p AssistantPackage) (AssistantPackage, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return AssistantPackage{}, fmt.Errorf("failed to get current user: %w", err)
	}
	p = normalize(p)
	if err := validate(p); err != nil {
		return AssistantPackage{}, err
	}
	p.TotalValue = TotalValue(p.TotalStops, p.ValuePerStop)
	log.Debugf("Storing %d stops by %s valued at %s", p.TotalStops, p.AssistantName, p.TotalValue.StringFixed(2))
	return s.repo.StorePackage(ctx, userId, p)
}

func (s *ServiceImpl) GetPackage(ctx context.Context, id uuid.UUID) (AssistantPackage, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return AssistantPackage{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetPackage(ctx, userId, id)
}

func (s *ServiceImpl) ListPackages(ctx context.Context) ([]AssistantPackage, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListPackages(ctx, userId)
}

func (s *ServiceImpl) ListPackagesBetween(ctx context.Context, from, to time.Time) ([]AssistantPackage, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if to.Before(from) {
		return []AssistantPackage{}, nil
	}
	return s.repo.ListPackagesBetween(ctx, userId, from, to)
}

func (s *ServiceImpl) DeletePackage(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeletePackage(ctx, userId, id)
	if err == nil && !deleted {
		log.Warnf("assistant package %s not deleted, it does not exist for user %d", id, userId)
	}
	return deleted, err
}
