package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
	"github.com/revobooking/revo-ui/internal/ports"
)

// ErrLoginRequired is returned when checkout is attempted without an identity.
var ErrLoginRequired = errors.New("login required")

// CheckoutServiceOptions groups dependencies for CheckoutService.
type CheckoutServiceOptions struct {
	Bookings ports.BookingAPI
	Services ports.ServiceAPI
	Config   CheckoutServiceConfig
}

// CheckoutServiceConfig groups the optional tunables of CheckoutService.
type CheckoutServiceConfig struct {
	Logger *slog.Logger
	Now    func() time.Time
}

// CheckoutService collects passenger details for a service and submits the reservation.
type CheckoutService struct {
	bookings ports.BookingAPI
	services ports.ServiceAPI
	logger   *slog.Logger
	now      func() time.Time
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(opts CheckoutServiceOptions) *CheckoutService {
	if opts.Bookings == nil {
		panic("BookingAPI is required")
	}
	if opts.Services == nil {
		panic("ServiceAPI is required")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}
	return &CheckoutService{
		bookings: opts.Bookings,
		services: opts.Services,
		logger:   logger.With("component", "checkout_service"),
		now:      now,
	}
}

// CheckoutForm is the passenger form state. It survives failed submissions unchanged.
type CheckoutForm struct {
	ServiceID      ident.ID
	PassengerName  string
	PassengerEmail string
	PassengerPhone string
	// DepartureDate is optional; the submission date defaults to now.
	DepartureDate *time.Time
	Passengers    int
	ReturnDate    *time.Time
}

// Checkout is the data needed to render the checkout form.
type Checkout struct {
	Service model.Service
	Form    CheckoutForm
}

// Open prepares the checkout form for serviceID, prefilled with the identity's name and email.
// It fails with ErrLoginRequired before any API call when nobody is logged in.
func (s *CheckoutService) Open(ctx context.Context, state domainauth.SessionState, serviceID ident.ID) (*Checkout, error) {
	if !state.IsAuthenticated() {
		return nil, ErrLoginRequired
	}

	svc, err := s.services.Get(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}

	return &Checkout{
		Service: svc,
		Form: CheckoutForm{
			ServiceID:      serviceID,
			PassengerName:  state.Identity.Name,
			PassengerEmail: state.Identity.Email,
		},
	}, nil
}

// Submit validates the form and sends exactly one reservation request.
func (s *CheckoutService) Submit(ctx context.Context, state domainauth.SessionState, form CheckoutForm) error {
	if !state.IsAuthenticated() {
		return ErrLoginRequired
	}

	req := s.request(form)
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.bookings.Create(ctx, req); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	s.logger.InfoContext(ctx, "booking created", "service_id", req.ServiceID.String(), "user_id", state.Identity.ID.String())
	return nil
}

func (s *CheckoutService) request(form CheckoutForm) model.CreateBookingRequest {
	date := s.now().UTC()
	if form.DepartureDate != nil && !form.DepartureDate.IsZero() {
		date = form.DepartureDate.UTC()
	}
	return model.CreateBookingRequest{
		ServiceID:      form.ServiceID,
		Date:           date,
		PassengerName:  form.PassengerName,
		PassengerEmail: form.PassengerEmail,
		PassengerPhone: form.PassengerPhone,
		Passengers:     form.Passengers,
		ReturnDate:     form.ReturnDate,
	}
}
