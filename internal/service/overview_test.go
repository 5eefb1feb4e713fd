package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/mocks"
	"github.com/revobooking/revo-ui/internal/testutil"
)

type overviewMocks struct {
	services     *serviceAPIMock
	bookings     *mocks.MockBookingAPI
	users        *userAPIMock
	destinations *mocks.MockResourceAPI[model.Destination, model.DestinationRequest, model.DestinationRequest]
	aircraft     *mocks.MockResourceAPI[model.Aircraft, model.AircraftRequest, model.AircraftRequest]
}

func newOverviewFixture(t *testing.T) (*OverviewService, overviewMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := overviewMocks{
		services:     newServiceAPIMock(ctrl),
		bookings:     mocks.NewMockBookingAPI(ctrl),
		users:        mocks.NewMockResourceAPI[model.User, model.CreateUserRequest, model.UpdateUserRequest](ctrl),
		destinations: mocks.NewMockResourceAPI[model.Destination, model.DestinationRequest, model.DestinationRequest](ctrl),
		aircraft:     mocks.NewMockResourceAPI[model.Aircraft, model.AircraftRequest, model.AircraftRequest](ctrl),
	}
	svc := NewOverviewService(OverviewServiceOptions{APIs: AdminAPIs{
		Services:     m.services,
		Bookings:     m.bookings,
		Users:        m.users,
		Destinations: m.destinations,
		Aircraft:     m.aircraft,
	}})
	return svc, m
}

func TestOverviewService_Load(t *testing.T) {
	svc, m := newOverviewFixture(t)
	bali := testutil.NewService("1").WithPrice(500000).Build()

	m.services.EXPECT().List(gomock.Any()).Return([]model.Service{bali}, nil)
	m.bookings.EXPECT().List(gomock.Any()).Return([]model.Booking{
		testutil.NewBooking("a").WithService(bali).WithStatus(model.BookingConfirmed).Build(),
		testutil.NewBooking("b").WithService(bali).WithStatus(model.BookingCancelled).Build(),
	}, nil)
	m.users.EXPECT().List(gomock.Any()).Return([]model.User{
		testutil.NewUser("1", "sari", auth.RoleAdmin),
		testutil.NewUser("2", "budi", auth.RoleUser),
		testutil.NewUser("3", "ani", auth.RoleUser),
	}, nil)
	m.destinations.EXPECT().List(gomock.Any()).Return([]model.Destination{{ID: "d1", Name: "Bali"}}, nil)
	m.aircraft.EXPECT().List(gomock.Any()).Return([]model.Aircraft{}, nil)

	o, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, o.Failed)
	assert.Equal(t, 1, o.TotalServices)
	assert.Equal(t, 2, o.TotalBookings)
	assert.Equal(t, 3, o.TotalUsers)
	assert.Equal(t, 1, o.TotalDestinations)
	assert.Equal(t, 0, o.TotalAircraft)
	assert.Equal(t, 1, o.AdminUsers)
	assert.Equal(t, 2, o.RegularUsers)
	assert.Equal(t, 0, o.Revenue.Cmp(model.NewMoney(500000)))
	assert.Equal(t, 1, o.StatusCount(model.BookingCancelled))
}

func TestOverviewService_DegradesFailedPanel(t *testing.T) {
	svc, m := newOverviewFixture(t)

	m.services.EXPECT().List(gomock.Any()).Return([]model.Service{}, nil)
	m.bookings.EXPECT().List(gomock.Any()).Return(nil, errors.New("forbidden"))
	m.users.EXPECT().List(gomock.Any()).Return([]model.User{}, nil)
	m.destinations.EXPECT().List(gomock.Any()).Return([]model.Destination{}, nil)
	m.aircraft.EXPECT().List(gomock.Any()).Return(nil, errors.New("down"))

	o, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{PanelBookings, PanelAircraft}, o.Failed)
	assert.True(t, o.PanelFailed(PanelBookings))
	assert.False(t, o.PanelFailed(PanelUsers))
}

func TestOverviewService_AllPanelsFailed(t *testing.T) {
	svc, m := newOverviewFixture(t)
	boom := errors.New("down")

	m.services.EXPECT().List(gomock.Any()).Return(nil, boom)
	m.bookings.EXPECT().List(gomock.Any()).Return(nil, boom)
	m.users.EXPECT().List(gomock.Any()).Return(nil, boom)
	m.destinations.EXPECT().List(gomock.Any()).Return(nil, boom)
	m.aircraft.EXPECT().List(gomock.Any()).Return(nil, boom)

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, ErrOverviewUnavailable)
}
