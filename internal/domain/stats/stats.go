// Package stats aggregates booking and account lists for the dashboards.
package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/model"
)

// RecentLimit is how many bookings the admin overview lists.
const RecentLimit = 5

// Customer summarizes one user's bookings.
type Customer struct {
	Total      int
	Upcoming   int
	TotalSpent model.Money
}

// ForCustomer counts all bookings, upcoming ones (date not before now, not cancelled),
// and sums the service price of every booking that is not cancelled.
func ForCustomer(bookings []model.Booking, now time.Time) Customer {
	c := Customer{Total: len(bookings)}
	for _, b := range bookings {
		if b.Status.IsCancelled() {
			continue
		}
		c.TotalSpent = c.TotalSpent.Add(b.Price())
		if !b.Date.Before(now) {
			c.Upcoming++
		}
	}
	return c
}

// OverviewInput carries the collections loaded for the admin overview.
// A nil slice means that collection failed to load.
type OverviewInput struct {
	Services     []model.Service
	Bookings     []model.Booking
	Users        []model.User
	Destinations []model.Destination
	Aircraft     []model.Aircraft
}

// Overview is the admin landing page summary.
type Overview struct {
	TotalServices     int
	TotalBookings     int
	TotalUsers        int
	TotalDestinations int
	TotalAircraft     int
	Revenue           model.Money
	ByStatus          map[model.BookingStatus]int
	AdminUsers        int
	RegularUsers      int
	Recent            []model.Booking
}

// StatusCount returns the number of bookings in status s.
func (o Overview) StatusCount(s model.BookingStatus) int {
	return o.ByStatus[s.Normalized()]
}

// BuildOverview computes totals, revenue over non-cancelled bookings, per-status
// counts, the admin/regular split, and the most recent bookings by date.
func BuildOverview(in OverviewInput) Overview {
	o := Overview{
		TotalServices:     len(in.Services),
		TotalBookings:     len(in.Bookings),
		TotalUsers:        len(in.Users),
		TotalDestinations: len(in.Destinations),
		TotalAircraft:     len(in.Aircraft),
		ByStatus:          make(map[model.BookingStatus]int, len(model.BookingStatuses)),
	}

	for _, b := range in.Bookings {
		o.ByStatus[b.Status.Normalized()]++
		if !b.Status.IsCancelled() {
			o.Revenue = o.Revenue.Add(b.Price())
		}
	}

	for _, u := range in.Users {
		switch auth.Role(strings.ToLower(string(u.Role))) {
		case auth.RoleAdmin:
			o.AdminUsers++
		case auth.RoleUser:
			o.RegularUsers++
		}
	}

	o.Recent = Recent(in.Bookings, RecentLimit)
	return o
}

// Recent returns up to n bookings ordered by date, newest first.
func Recent(bookings []model.Booking, n int) []model.Booking {
	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, func(a, b model.Booking) int { return b.Date.Compare(a.Date) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
