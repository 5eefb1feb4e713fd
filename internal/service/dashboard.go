package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/domain/stats"
	"github.com/revobooking/revo-ui/internal/ports"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Bookings ports.BookingAPI
	Now      func() time.Time
}

// DashboardService loads the customer's own bookings and their summary.
type DashboardService struct {
	bookings ports.BookingAPI
	now      func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Bookings == nil {
		panic("BookingAPI is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &DashboardService{bookings: opts.Bookings, now: now}
}

// Dashboard is the customer landing page.
type Dashboard struct {
	Bookings []model.Booking
	Stats    stats.Customer
}

// Load fetches GET /bookings/me, newest first, and summarizes it.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	mine, err := s.bookings.Mine(ctx)
	if err != nil {
		return nil, fmt.Errorf("list my bookings: %w", err)
	}

	sorted := slices.Clone(mine)
	slices.SortStableFunc(sorted, func(a, b model.Booking) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})

	return &Dashboard{
		Bookings: sorted,
		Stats:    stats.ForCustomer(mine, s.now()),
	}, nil
}
