package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
)

// Resource is a REST collection supporting list, create, partial update and delete.
type Resource[T, C, U any] struct {
	c    *Client
	path string
	name string
}

// NewResource binds a collection path (e.g. "/services") to the client. name labels logs and metrics.
func NewResource[T, C, U any](c *Client, path, name string) *Resource[T, C, U] {
	return &Resource[T, C, U]{c: c, path: path, name: name}
}

// List fetches the whole collection.
func (r *Resource[T, C, U]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, call{method: http.MethodGet, path: r.path, op: r.name + ".list", out: &out}); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Get fetches a single record.
func (r *Resource[T, C, U]) Get(ctx context.Context, id ident.ID) (T, error) {
	var out T
	if err := r.c.do(ctx, call{method: http.MethodGet, path: r.itemPath(id), op: r.name + ".get", out: &out}); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Create posts a new record.
func (r *Resource[T, C, U]) Create(ctx context.Context, body C) error {
	return r.c.do(ctx, call{method: http.MethodPost, path: r.path, op: r.name + ".create", in: body})
}

// Update sends a partial update for id.
func (r *Resource[T, C, U]) Update(ctx context.Context, id ident.ID, body U) error {
	return r.c.do(ctx, call{method: http.MethodPatch, path: r.itemPath(id), op: r.name + ".update", in: body})
}

// Delete removes id and returns the server's confirmation message, if any.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id ident.ID) (string, error) {
	var out model.MessageResponse
	if err := r.c.do(ctx, call{method: http.MethodDelete, path: r.itemPath(id), op: r.name + ".delete", out: &out}); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (r *Resource[T, C, U]) itemPath(id ident.ID) string {
	return r.path + "/" + url.PathEscape(id.String())
}

// Bookings groups the reservation endpoints.
type Bookings struct {
	c *Client
}

// List fetches every booking (admin only).
func (b *Bookings) List(ctx context.Context) ([]model.Booking, error) {
	return b.list(ctx, "/bookings", "bookings.list")
}

// Mine fetches the bookings of the credential's owner.
func (b *Bookings) Mine(ctx context.Context) ([]model.Booking, error) {
	return b.list(ctx, "/bookings/me", "bookings.mine")
}

func (b *Bookings) list(ctx context.Context, path, op string) ([]model.Booking, error) {
	var out []model.Booking
	if err := b.c.do(ctx, call{method: http.MethodGet, path: path, op: op, out: &out}); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Booking{}
	}
	return out, nil
}

// Create submits a reservation.
func (b *Bookings) Create(ctx context.Context, body model.CreateBookingRequest) error {
	return b.c.do(ctx, call{method: http.MethodPost, path: "/bookings", op: "bookings.create", in: body})
}

// UpdateStatus transitions a booking to status.
func (b *Bookings) UpdateStatus(ctx context.Context, id ident.ID, status model.BookingStatus) error {
	return b.c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/bookings/" + url.PathEscape(id.String()) + "/status",
		op:     "bookings.update_status",
		in:     model.UpdateBookingStatusRequest{Status: status},
	})
}

// Delete removes a booking and returns the server's confirmation message, if any.
func (b *Bookings) Delete(ctx context.Context, id ident.ID) (string, error) {
	var out model.MessageResponse
	err := b.c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/bookings/" + url.PathEscape(id.String()),
		op:     "bookings.delete",
		out:    &out,
	})
	if err != nil {
		return "", err
	}
	return out.Message, nil
}
