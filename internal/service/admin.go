package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/domain/ident"
	"github.com/revobooking/revo-ui/internal/domain/model"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
	"github.com/revobooking/revo-ui/internal/ports"
)

var (
	// ErrAdminUndeletable is returned when deleting an account whose role is admin.
	ErrAdminUndeletable = apperrors.Forbidden("User dengan role admin tidak dapat dihapus")
	// ErrStatusUpdateInFlight is returned while another status change for the same booking is outstanding.
	ErrStatusUpdateInFlight = apperrors.Conflict("Status booking sedang diperbarui")
)

type validator interface {
	Validate() error
}

// ResourceService is the load/create/update/delete core shared by every admin collection.
// Request bodies implementing Validate are checked before any API call.
type ResourceService[T, C, U any] struct {
	api    ports.ResourceAPI[T, C, U]
	name   string
	logger *slog.Logger
}

// NewResourceService binds an admin collection to its API. name labels logs and errors.
func NewResourceService[T, C, U any](api ports.ResourceAPI[T, C, U], name string, logger *slog.Logger) *ResourceService[T, C, U] {
	if api == nil {
		panic("ResourceAPI is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResourceService[T, C, U]{
		api:    api,
		name:   name,
		logger: logger.With("component", "admin_"+name),
	}
}

// Load fetches the whole collection.
func (s *ResourceService[T, C, U]) Load(ctx context.Context) ([]T, error) {
	items, err := s.api.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	return items, nil
}

// Create validates and posts a new record.
func (s *ResourceService[T, C, U]) Create(ctx context.Context, body C) error {
	if v, ok := any(&body).(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if err := s.api.Create(ctx, body); err != nil {
		return fmt.Errorf("create %s: %w", s.name, err)
	}
	s.logger.InfoContext(ctx, "record created")
	return nil
}

// Update validates and sends a partial update for id.
func (s *ResourceService[T, C, U]) Update(ctx context.Context, id ident.ID, body U) error {
	if id.IsZero() {
		return apperrors.Validation("ID tidak valid")
	}
	if v, ok := any(&body).(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if err := s.api.Update(ctx, id, body); err != nil {
		return fmt.Errorf("update %s %s: %w", s.name, id, err)
	}
	s.logger.InfoContext(ctx, "record updated", "id", id.String())
	return nil
}

// Delete removes id and returns the server's confirmation message.
func (s *ResourceService[T, C, U]) Delete(ctx context.Context, id ident.ID) (string, error) {
	if id.IsZero() {
		return "", apperrors.Validation("ID tidak valid")
	}
	msg, err := s.api.Delete(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete %s %s: %w", s.name, id, err)
	}
	s.logger.InfoContext(ctx, "record deleted", "id", id.String())
	return msg, nil
}

// UserAdminService adds role changes and admin-deletion protection to the user collection.
type UserAdminService struct {
	*ResourceService[model.User, model.CreateUserRequest, model.UpdateUserRequest]
}

// NewUserAdminService constructs a UserAdminService.
func NewUserAdminService(api ports.UserAPI, logger *slog.Logger) *UserAdminService {
	return &UserAdminService{ResourceService: NewResourceService(api, "users", logger)}
}

// ChangeRole sends PATCH /users/:id {role}.
func (s *UserAdminService) ChangeRole(ctx context.Context, id ident.ID, role string) error {
	r, ok := auth.ParseRole(role)
	if !ok {
		return apperrors.ValidationField("role", "Role tidak valid")
	}
	return s.Update(ctx, id, model.UpdateUserRequest{Role: &r})
}

// Delete refuses admin accounts without sending a request. The record is looked up
// from a fresh list so the rule holds for crafted requests too.
func (s *UserAdminService) Delete(ctx context.Context, id ident.ID) (string, error) {
	users, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.ID == id {
			if u.IsAdmin() {
				return "", ErrAdminUndeletable
			}
			return s.ResourceService.Delete(ctx, id)
		}
	}
	return "", apperrors.NotFound("User tidak ditemukan")
}

// BookingAdminService lists, transitions and deletes bookings.
type BookingAdminService struct {
	api    ports.BookingAPI
	logger *slog.Logger

	mu       sync.Mutex
	inFlight map[ident.ID]struct{}
}

// NewBookingAdminService constructs a BookingAdminService.
func NewBookingAdminService(api ports.BookingAPI, logger *slog.Logger) *BookingAdminService {
	if api == nil {
		panic("BookingAPI is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingAdminService{
		api:      api,
		logger:   logger.With("component", "admin_bookings"),
		inFlight: make(map[ident.ID]struct{}),
	}
}

// Load fetches every booking.
func (s *BookingAdminService) Load(ctx context.Context) ([]model.Booking, error) {
	items, err := s.api.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return items, nil
}

// UpdateStatus sends the new status immediately. Only one update per booking may be outstanding.
func (s *BookingAdminService) UpdateStatus(ctx context.Context, id ident.ID, status string) error {
	st, ok := model.ParseBookingStatus(status)
	if !ok {
		return apperrors.ValidationField("status", "Status tidak valid")
	}
	if id.IsZero() {
		return apperrors.Validation("ID tidak valid")
	}

	if !s.acquire(id) {
		return ErrStatusUpdateInFlight
	}
	defer s.release(id)

	if err := s.api.UpdateStatus(ctx, id, st); err != nil {
		return fmt.Errorf("update booking %s status: %w", id, err)
	}
	s.logger.InfoContext(ctx, "booking status updated", "id", id.String(), "status", string(st))
	return nil
}

// InFlight reports whether a status update for id is outstanding.
func (s *BookingAdminService) InFlight(id ident.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inFlight[id]
	return busy
}

// Delete removes a booking and returns the server's confirmation message.
func (s *BookingAdminService) Delete(ctx context.Context, id ident.ID) (string, error) {
	if id.IsZero() {
		return "", apperrors.Validation("ID tidak valid")
	}
	msg, err := s.api.Delete(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete booking %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "booking deleted", "id", id.String())
	return msg, nil
}

func (s *BookingAdminService) acquire(id ident.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *BookingAdminService) release(id ident.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}
