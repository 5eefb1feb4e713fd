package ports

import (
	"context"

	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
)

// ResourceAPI is the list/create/update/delete contract shared by the catalog
// and reference-data collections. T is the record, C the create body, U the update body.
type ResourceAPI[T, C, U any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id ident.ID) (T, error)
	Create(ctx context.Context, body C) error
	Update(ctx context.Context, id ident.ID, body U) error
	// Delete returns the server's confirmation message, which may be empty.
	Delete(ctx context.Context, id ident.ID) (string, error)
}

// ServiceAPI manages the service catalog.
type ServiceAPI = ResourceAPI[model.Service, model.CreateServiceRequest, model.UpdateServiceRequest]

// UserAPI manages accounts.
type UserAPI = ResourceAPI[model.User, model.CreateUserRequest, model.UpdateUserRequest]

// DestinationAPI manages destinations.
type DestinationAPI = ResourceAPI[model.Destination, model.DestinationRequest, model.DestinationRequest]

// AircraftAPI manages aircraft.
type AircraftAPI = ResourceAPI[model.Aircraft, model.AircraftRequest, model.AircraftRequest]

// BookingAPI covers the reservation endpoints.
type BookingAPI interface {
	List(ctx context.Context) ([]model.Booking, error)
	Mine(ctx context.Context) ([]model.Booking, error)
	Create(ctx context.Context, body model.CreateBookingRequest) error
	UpdateStatus(ctx context.Context, id ident.ID, status model.BookingStatus) error
	Delete(ctx context.Context, id ident.ID) (string, error)
}
