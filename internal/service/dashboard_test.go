package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/mocks"
	"github.com/revobooking/revo-ui/internal/testutil"
)

func TestDashboardService_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockBookingAPI(ctrl)
	now := testutil.TestTime()
	svc := NewDashboardService(DashboardServiceOptions{Bookings: api, Now: testutil.FixedTimeFunc(now)})

	bali := testutil.NewService("1").WithPrice(1000000).Build()
	mine := []model.Booking{
		testutil.NewBooking("a").WithDate(now.Add(-48 * time.Hour)).WithService(bali).WithStatus(model.BookingCompleted).Build(),
		testutil.NewBooking("b").WithDate(now.Add(48 * time.Hour)).WithService(bali).WithStatus(model.BookingConfirmed).Build(),
		testutil.NewBooking("c").WithDate(now.Add(72 * time.Hour)).WithService(bali).WithStatus(model.BookingCancelled).Build(),
	}
	api.EXPECT().Mine(gomock.Any()).Return(mine, nil)

	d, err := svc.Load(context.Background())
	require.NoError(t, err)

	ids := []ident.ID{d.Bookings[0].ID, d.Bookings[1].ID, d.Bookings[2].ID}
	assert.Equal(t, []ident.ID{"c", "b", "a"}, ids)
	assert.Equal(t, 3, d.Stats.Total)
	assert.Equal(t, 1, d.Stats.Upcoming)
	assert.Equal(t, 0, d.Stats.TotalSpent.Cmp(model.NewMoney(2000000)))
	assert.Equal(t, ident.ID("a"), mine[0].ID, "input must not be reordered")
}

func TestDashboardService_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockBookingAPI(ctrl)
	api.EXPECT().Mine(gomock.Any()).Return(nil, errors.New("down"))

	_, err := NewDashboardService(DashboardServiceOptions{Bookings: api}).Load(context.Background())
	assert.Error(t, err)
}
