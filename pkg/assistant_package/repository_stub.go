package assistant_package

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	packages map[int]map[uuid.UUID]AssistantPackage
	// Err, when set, is returned by every query.
	Err error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{packages: map[int]map[uuid.UUID]AssistantPackage{}}
}

func (s *RepositoryStub) StorePackage(ctx context.Context, userId int, p AssistantPackage) (AssistantPackage, error) {
	if s.Err != nil {
		return AssistantPackage{}, s.Err
	}
	p.Id = uuid.New()
	p.CreatedAt = time.Now()
	if s.packages[userId] == nil {
		s.packages[userId] = map[uuid.UUID]AssistantPackage{}
	}
	s.packages[userId][p.Id] = p
	return p, nil
}

func (s *RepositoryStub) GetPackage(ctx context.Context, userId int, id uuid.UUID) (AssistantPackage, error) {
	if s.Err != nil {
		return AssistantPackage{}, s.Err
	}
	p, ok := s.packages[userId][id]
	if !ok {
		return AssistantPackage{}, ErrPackageNotFound
	}
	return p, nil
}

func (s *RepositoryStub) ListPackages(ctx context.Context, userId int) ([]AssistantPackage, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	packages := make([]AssistantPackage, 0, len(s.packages[userId]))
	for _, p := range s.packages[userId] {
		packages = append(packages, p)
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].DeliveryDate.After(packages[j].DeliveryDate)
	})
	return packages, nil
}

func (s *RepositoryStub) ListPackagesBetween(ctx context.Context, userId int, from, to time.Time) ([]AssistantPackage, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	packages := make([]AssistantPackage, 0)
	for _, p := range s.packages[userId] {
		if p.DeliveryDate.Before(from) || p.DeliveryDate.After(to) {
			continue
		}
		packages = append(packages, p)
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].DeliveryDate.Before(packages[j].DeliveryDate)
	})
	return packages, nil
}

func (s *RepositoryStub) DeletePackage(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.packages[userId][id]; !ok {
		return false, nil
	}
	delete(s.packages[userId], id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.packages = map[int]map[uuid.UUID]AssistantPackage{}
	s.Err = nil
}
