package route

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	routes map[int]map[uuid.UUID]Route
	// Err, when set, is returned by the list queries.
	Err error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{routes: map[int]map[uuid.UUID]Route{}}
}

func (s *RepositoryStub) StoreRoute(ctx context.Context, userId int, route Route) (Route, error) {
	route.Id = uuid.New()
	route.CreatedAt = time.Now()
	if s.routes[userId] == nil {
		s.routes[userId] = map[uuid.UUID]Route{}
	}
	s.routes[userId][route.Id] = route
	return route, nil
}

func (s *RepositoryStub) GetRoute(ctx context.Context, userId int, id uuid.UUID) (Route, error) {
	route, ok := s.routes[userId][id]
	if !ok {
		return Route{}, ErrRouteNotFound
	}
	return route, nil
}

func (s *RepositoryStub) ListRoutes(ctx context.Context, userId int) ([]Route, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	routes := make([]Route, 0, len(s.routes[userId]))
	for _, route := range s.routes[userId] {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].CreatedAt.After(routes[j].CreatedAt)
	})
	return routes, nil
}

func (s *RepositoryStub) ListRoutesBetween(ctx context.Context, userId int, from, to time.Time) ([]Route, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	routes := make([]Route, 0)
	for _, route := range s.routes[userId] {
		if route.Date.Before(from) || route.Date.After(to) {
			continue
		}
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Date.Before(routes[j].Date)
	})
	return routes, nil
}

func (s *RepositoryStub) UpdateRoute(ctx context.Context, userId int, route Route) (bool, error) {
	existing, ok := s.routes[userId][route.Id]
	if !ok {
		return false, nil
	}
	now := time.Now()
	route.CreatedAt = existing.CreatedAt
	route.UpdatedAt = &now
	s.routes[userId][route.Id] = route
	return true, nil
}

func (s *RepositoryStub) DeleteRoute(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	if _, ok := s.routes[userId][id]; !ok {
		return false, nil
	}
	delete(s.routes[userId], id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.routes = map[int]map[uuid.UUID]Route{}
	s.Err = nil
}
