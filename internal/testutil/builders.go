package testutil

import (
	"time"

	"github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
)

// ServiceBuilder provides a fluent interface for building model.Service fixtures.
type ServiceBuilder struct {
	svc model.Service
}

// NewService creates a ServiceBuilder with sensible defaults.
func NewService(id string) *ServiceBuilder {
	flight := TestTime().Add(72 * time.Hour)
	return &ServiceBuilder{svc: model.Service{
		ID:          ident.ID(id),
		Name:        "Bali",
		Description: "Garuda Indonesia",
		Price:       model.NewMoney(1500000),
		FlightDate:  &flight,
	}}
}

// WithName sets the service name.
func (b *ServiceBuilder) WithName(name string) *ServiceBuilder {
	b.svc.Name = name
	return b
}

// WithDescription sets the service description.
func (b *ServiceBuilder) WithDescription(desc string) *ServiceBuilder {
	b.svc.Description = desc
	return b
}

// WithPrice sets the service price in whole rupiah.
func (b *ServiceBuilder) WithPrice(price int64) *ServiceBuilder {
	b.svc.Price = model.NewMoney(price)
	return b
}

// WithFlightDate sets the departure instant.
func (b *ServiceBuilder) WithFlightDate(t time.Time) *ServiceBuilder {
	b.svc.FlightDate = &t
	return b
}

// Build returns the service.
func (b *ServiceBuilder) Build() model.Service {
	return b.svc
}

// BookingBuilder provides a fluent interface for building model.Booking fixtures.
type BookingBuilder struct {
	booking model.Booking
}

// NewBooking creates a pending BookingBuilder dated TestTime.
func NewBooking(id string) *BookingBuilder {
	return &BookingBuilder{booking: model.Booking{
		ID:             ident.ID(id),
		Date:           TestTime(),
		Status:         model.BookingPending,
		PassengerName:  "Budi",
		PassengerEmail: "budi@example.com",
		PassengerPhone: "08123456789",
	}}
}

// WithStatus sets the booking status.
func (b *BookingBuilder) WithStatus(status model.BookingStatus) *BookingBuilder {
	b.booking.Status = status
	return b
}

// WithDate sets the booking date.
func (b *BookingBuilder) WithDate(t time.Time) *BookingBuilder {
	b.booking.Date = t
	return b
}

// WithService attaches a populated service reference.
func (b *BookingBuilder) WithService(svc model.Service) *BookingBuilder {
	b.booking.Service = &model.ServiceRef{Service: svc}
	return b
}

// WithUser attaches a populated user reference.
func (b *BookingBuilder) WithUser(u model.User) *BookingBuilder {
	b.booking.User = &model.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
	return b
}

// Build returns the booking.
func (b *BookingBuilder) Build() model.Booking {
	return b.booking
}

// NewUser builds a user fixture with the given role.
func NewUser(id, name string, role auth.Role) model.User {
	created := TestTime()
	return model.User{
		ID:        ident.ID(id),
		Name:      name,
		Email:     name + "@example.com",
		Role:      role,
		CreatedAt: &created,
	}
}

// NewIdentity builds an identity fixture with the given role.
func NewIdentity(id, name string, role auth.Role) *auth.Identity {
	return &auth.Identity{
		ID:    ident.ID(id),
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
}
