package route

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/driverledger/driverledger/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var repoStub = NewRepositoryStub()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func sampleRoute() Route {
	return Route{
		Date:            day(2024, time.June, 3),
		Name:            "Centro",
		DestinationCity: "Campinas",
		Attributes: Attributes{
			VehicleType:   Passeio,
			TotalPackages: 100,
			LoosePackages: 5,
			HasHelper:     true,
		},
	}
}

func TestServiceImpl_CreateRoute(t *testing.T) {
	t.Run("should compute the value when creating a route", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateRoute(ctx, sampleRoute())

		// then
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.Id)
		assert.Equal(t, "380.00", created.TotalValue.StringFixed(2))
	})

	t.Run("should ignore a value sent by the client", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		route := sampleRoute()
		route.TotalValue = decimal.NewFromInt(9999)

		// when
		created, err := service.CreateRoute(ctx, route)

		// then
		require.NoError(t, err)
		assert.Equal(t, "380.00", created.TotalValue.StringFixed(2))
	})

	t.Run("should normalize vehicle type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		route := sampleRoute()
		route.VehicleType = " Passeio "

		// when
		created, err := service.CreateRoute(ctx, route)

		// then
		require.NoError(t, err)
		assert.Equal(t, Passeio, created.VehicleType)
	})

	t.Run("should reject invalid routes", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		tests := []struct {
			name   string
			modify func(r *Route)
		}{
			{"missing date", func(r *Route) { r.Date = time.Time{} }},
			{"blank name", func(r *Route) { r.Name = "  " }},
			{"missing city", func(r *Route) { r.DestinationCity = "" }},
			{"missing vehicle", func(r *Route) { r.VehicleType = "" }},
			{"negative loose packages", func(r *Route) { r.LoosePackages = -1 }},
			{"loose packages above INTEGER", func(r *Route) { r.LoosePackages = 3_000_000_000 }},
			{"name too long", func(r *Route) { r.Name = strings.Repeat("n", 256) }},
			{"city too long", func(r *Route) { r.DestinationCity = strings.Repeat("c", 256) }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				route := sampleRoute()
				tt.modify(&route)

				_, err := service.CreateRoute(ctx, route)

				assert.True(t, errors.Is(err, ErrInvalidRoute))
			})
		}
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.CreateRoute(context.Background(), sampleRoute())

		// then
		assert.ErrorIs(t, err, user.ErrNoUser)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_GetRoute(t *testing.T) {
	t.Run("should not return another user's route", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateRoute(ctx, sampleRoute())
		require.NoError(t, err)
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})

		// when
		_, err = service.GetRoute(otherCtx, created.Id)

		// then
		assert.ErrorIs(t, err, ErrRouteNotFound)
	})
}

func TestServiceImpl_ListRoutesBetween(t *testing.T) {
	t.Run("should include both range ends", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		for _, d := range []int{1, 15, 16} {
			route := sampleRoute()
			route.Date = day(2024, time.June, d)
			_, err := service.CreateRoute(ctx, route)
			require.NoError(t, err)
		}

		// when
		routes, err := service.ListRoutesBetween(ctx, day(2024, time.June, 1), day(2024, time.June, 15))

		// then
		require.NoError(t, err)
		require.Len(t, routes, 2)
		assert.Equal(t, 1, routes[0].Date.Day())
		assert.Equal(t, 15, routes[1].Date.Day())
	})

	t.Run("should return nothing for an inverted range", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.CreateRoute(ctx, sampleRoute())
		require.NoError(t, err)

		// when
		routes, err := service.ListRoutesBetween(ctx, day(2024, time.June, 30), day(2024, time.June, 1))

		// then
		require.NoError(t, err)
		assert.Empty(t, routes)
	})
}

func TestServiceImpl_UpdateRoute(t *testing.T) {
	t.Run("should recompute the value on update", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateRoute(ctx, sampleRoute())
		require.NoError(t, err)
		created.VehicleType = Outro
		created.HasHelper = false
		created.IsSundayOrHoliday = true

		// when
		updated, err := service.UpdateRoute(ctx, created)

		// then
		require.NoError(t, err)
		assert.Equal(t, "400.00", updated.TotalValue.StringFixed(2))
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("should return not found for unknown route", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		route := sampleRoute()
		route.Id = uuid.New()

		// when
		_, err := service.UpdateRoute(ctx, route)

		// then
		assert.ErrorIs(t, err, ErrRouteNotFound)
	})
}

func TestServiceImpl_DeleteRoute(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	created, err := service.CreateRoute(ctx, sampleRoute())
	require.NoError(t, err)

	// when
	deleted, err := service.DeleteRoute(ctx, created.Id)
	deletedAgain, errAgain := service.DeleteRoute(ctx, created.Id)

	// then
	require.NoError(t, err)
	require.NoError(t, errAgain)
	assert.True(t, deleted)
	assert.False(t, deletedAgain)
}

func TestServiceImpl_Quote(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	value, err := service.Quote(ctx, Attributes{VehicleType: Outro, LoosePackages: 10})
	require.NoError(t, err)
	assert.Equal(t, "370.00", value.StringFixed(2))

	_, err = service.Quote(ctx, Attributes{})
	assert.ErrorIs(t, err, ErrInvalidRoute)

	routes, err := service.ListRoutes(ctx)
	require.NoError(t, err)
	assert.Empty(t, routes)
}
