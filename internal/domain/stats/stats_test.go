package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
)

func booking(id string, date time.Time, status model.BookingStatus, price int64) model.Booking {
	return model.Booking{
		ID:      ident.ID(id),
		Date:    date,
		Status:  status,
		Service: &model.ServiceRef{Service: model.Service{Name: "Bali", Price: model.NewMoney(price)}},
	}
}

func TestForCustomer(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	bookings := []model.Booking{
		booking("1", now.Add(48*time.Hour), model.BookingConfirmed, 1_000_000),
		booking("2", now.Add(-48*time.Hour), model.BookingCompleted, 500_000),
		booking("3", now.Add(72*time.Hour), "Cancelled", 2_000_000),
		booking("4", now, model.BookingPending, 250_000),
		{ID: "5", Date: now.Add(time.Hour), Status: model.BookingPending},
	}

	got := ForCustomer(bookings, now)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 3, got.Upcoming)
	assert.Equal(t, "1750000", got.TotalSpent.String())
}

func TestForCustomer_Empty(t *testing.T) {
	got := ForCustomer(nil, time.Now())
	assert.Zero(t, got.Total)
	assert.True(t, got.TotalSpent.IsZero())
}

func TestBuildOverview(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var bookings []model.Booking
	statuses := []model.BookingStatus{"pending", "confirmed", "completed", "cancelled", "CONFIRMED", "pending", "confirmed"}
	for i, s := range statuses {
		bookings = append(bookings, booking(string(rune('a'+i)), base.AddDate(0, 0, i), s, 100))
	}

	o := BuildOverview(OverviewInput{
		Services:     []model.Service{{ID: "s1"}, {ID: "s2"}},
		Bookings:     bookings,
		Users:        []model.User{{Role: auth.RoleAdmin}, {Role: auth.RoleUser}, {Role: "user"}, {Role: "Admin"}},
		Destinations: []model.Destination{{ID: "d1"}},
	})

	assert.Equal(t, 2, o.TotalServices)
	assert.Equal(t, 7, o.TotalBookings)
	assert.Equal(t, 4, o.TotalUsers)
	assert.Equal(t, 1, o.TotalDestinations)
	assert.Zero(t, o.TotalAircraft)
	assert.Equal(t, "600", o.Revenue.String())
	assert.Equal(t, 2, o.StatusCount(model.BookingPending))
	assert.Equal(t, 3, o.StatusCount(model.BookingConfirmed))
	assert.Equal(t, 1, o.StatusCount(model.BookingCancelled))
	assert.Equal(t, 2, o.AdminUsers)
	assert.Equal(t, 2, o.RegularUsers)

	require.Len(t, o.Recent, RecentLimit)
	assert.Equal(t, ident.ID("g"), o.Recent[0].ID)
	for i := 1; i < len(o.Recent); i++ {
		assert.False(t, o.Recent[i].Date.After(o.Recent[i-1].Date))
	}
}

func TestRecent_DoesNotModifyInput(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in := []model.Booking{booking("1", base, "pending", 1), booking("2", base.AddDate(0, 1, 0), "pending", 1)}
	got := Recent(in, 5)
	assert.Equal(t, ident.ID("2"), got[0].ID)
	assert.Equal(t, ident.ID("1"), in[0].ID)
}
