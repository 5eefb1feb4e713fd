package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/revobooking/revo-ui/internal/domain/stats"
	"github.com/revobooking/revo-ui/internal/ports"
)

// AdminAPIs groups the five collections behind the admin console.
type AdminAPIs struct {
	Services     ports.ServiceAPI
	Bookings     ports.BookingAPI
	Users        ports.UserAPI
	Destinations ports.DestinationAPI
	Aircraft     ports.AircraftAPI
}

// OverviewServiceOptions groups dependencies for OverviewService.
type OverviewServiceOptions struct {
	APIs   AdminAPIs
	Logger *slog.Logger
}

// OverviewService builds the admin landing page.
type OverviewService struct {
	apis   AdminAPIs
	logger *slog.Logger
}

// NewOverviewService constructs an OverviewService.
func NewOverviewService(opts OverviewServiceOptions) *OverviewService {
	a := opts.APIs
	if a.Services == nil || a.Bookings == nil || a.Users == nil || a.Destinations == nil || a.Aircraft == nil {
		panic("all admin APIs are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &OverviewService{apis: a, logger: logger.With("component", "admin_overview")}
}

// Overview panel names reported in AdminOverview.Failed.
const (
	PanelServices     = "services"
	PanelBookings     = "bookings"
	PanelUsers        = "users"
	PanelDestinations = "destinations"
	PanelAircraft     = "aircrafts"
)

// AdminOverview is the overview plus the panels that failed to load.
type AdminOverview struct {
	stats.Overview
	Failed []string
}

// PanelFailed reports whether the named panel could not be loaded.
func (o AdminOverview) PanelFailed(name string) bool {
	for _, f := range o.Failed {
		if f == name {
			return true
		}
	}
	return false
}

// ErrOverviewUnavailable is returned when every collection failed to load.
var ErrOverviewUnavailable = errors.New("admin overview unavailable")

// Load fetches the five collections concurrently. A failed collection degrades its panel only.
func (s *OverviewService) Load(ctx context.Context) (*AdminOverview, error) {
	var (
		in      stats.OverviewInput
		results [5]error
		g       errgroup.Group
	)

	g.Go(func() (err error) {
		in.Services, err = s.apis.Services.List(ctx)
		results[0] = err
		return nil
	})
	g.Go(func() (err error) {
		in.Bookings, err = s.apis.Bookings.List(ctx)
		results[1] = err
		return nil
	})
	g.Go(func() (err error) {
		in.Users, err = s.apis.Users.List(ctx)
		results[2] = err
		return nil
	})
	g.Go(func() (err error) {
		in.Destinations, err = s.apis.Destinations.List(ctx)
		results[3] = err
		return nil
	})
	g.Go(func() (err error) {
		in.Aircraft, err = s.apis.Aircraft.List(ctx)
		results[4] = err
		return nil
	})
	_ = g.Wait()

	names := [5]string{PanelServices, PanelBookings, PanelUsers, PanelDestinations, PanelAircraft}
	out := &AdminOverview{}
	for i, err := range results {
		if err != nil {
			s.logger.WarnContext(ctx, "overview panel failed", "panel", names[i], "error", err)
			out.Failed = append(out.Failed, names[i])
		}
	}
	if len(out.Failed) == len(names) {
		return nil, errors.Join(ErrOverviewUnavailable, results[0])
	}

	out.Overview = stats.BuildOverview(in)
	return out, nil
}
