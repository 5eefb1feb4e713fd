package model

import (
	"strings"
	"time"

	"github.com/revobooking/revo-ui/internal/domain/ident"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
)

// BookingStatus is the lifecycle state of a reservation.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every status in display order.
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

// Normalized lowercases the status as the API is not consistent about case.
func (s BookingStatus) Normalized() BookingStatus {
	return BookingStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// Valid reports whether the status is one the API accepts.
func (s BookingStatus) Valid() bool {
	switch s.Normalized() {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	default:
		return false
	}
}

// IsCancelled reports whether the booking was cancelled.
func (s BookingStatus) IsCancelled() bool { return s.Normalized() == BookingCancelled }

// ParseBookingStatus normalizes a status string and reports whether it is supported.
func ParseBookingStatus(value string) (BookingStatus, bool) {
	s := BookingStatus(value).Normalized()
	if s.Valid() {
		return s, true
	}
	return "", false
}

// Booking is a user's reservation of a service.
type Booking struct {
	ID             ident.ID      `json:"id"`
	Date           time.Time     `json:"date"`
	Status         BookingStatus `json:"status"`
	PassengerName  string        `json:"passengerName,omitempty"`
	PassengerEmail string        `json:"passengerEmail,omitempty"`
	PassengerPhone string        `json:"passengerPhone,omitempty"`
	Passengers     int           `json:"passengers,omitempty"`
	ReturnDate     *time.Time    `json:"returnDate,omitempty"`
	User           *UserRef      `json:"user,omitempty"`
	Service        *ServiceRef   `json:"service,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id" keys.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type alias Booking
	return ident.Unmarshal(data, (*alias)(b), &b.ID)
}

// Price returns the booked service's price, or zero when the service is not populated.
func (b Booking) Price() Money {
	if b.Service == nil {
		return Money{}
	}
	return b.Service.Price
}

// CreateBookingRequest is the body of POST /bookings.
// Passengers and ReturnDate are optional and omitted when unset.
type CreateBookingRequest struct {
	ServiceID      ident.ID   `json:"serviceId"`
	Date           time.Time  `json:"date"`
	PassengerName  string     `json:"passengerName"`
	PassengerEmail string     `json:"passengerEmail"`
	PassengerPhone string     `json:"passengerPhone"`
	Passengers     int        `json:"passengers,omitempty"`
	ReturnDate     *time.Time `json:"returnDate,omitempty"`
}

// Validate enforces presence of the required passenger fields.
func (r *CreateBookingRequest) Validate() error {
	r.PassengerName = strings.TrimSpace(r.PassengerName)
	r.PassengerEmail = strings.TrimSpace(r.PassengerEmail)
	r.PassengerPhone = strings.TrimSpace(r.PassengerPhone)
	switch {
	case r.ServiceID.IsZero():
		return apperrors.ValidationField("serviceId", "Layanan tidak valid")
	case r.PassengerName == "":
		return apperrors.ValidationField("passengerName", "Nama penumpang wajib diisi")
	case r.PassengerEmail == "":
		return apperrors.ValidationField("passengerEmail", "Email penumpang wajib diisi")
	case r.PassengerPhone == "":
		return apperrors.ValidationField("passengerPhone", "Nomor telepon wajib diisi")
	}
	return nil
}

// UpdateBookingStatusRequest is the body of PATCH /bookings/:id/status.
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status"`
}

// UserRef is a booking's reference to its owner; the API sends either an id or the populated record.
type UserRef struct {
	ID    ident.ID `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
}

// UnmarshalJSON decodes a bare id or a user object.
func (r *UserRef) UnmarshalJSON(b []byte) error {
	if isScalarJSON(b) {
		return r.ID.UnmarshalJSON(b)
	}
	type alias UserRef
	return ident.Unmarshal(b, (*alias)(r), &r.ID)
}

// MessageResponse is the optional {"message": ...} body returned by mutations.
type MessageResponse struct {
	Message string `json:"message"`
}
