package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/revobooking/revo-ui/internal/domain/ident"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
)

const (
	msgServiceNameAndPrice = "Nama dan harga valid diperlukan"
	msgFlightDateRequired  = "Tanggal dan jam terbang diperlukan"
	msgFlightDateInvalid   = "Format tanggal dan jam terbang tidak valid"
)

// Service is a sellable flight offering.
type Service struct {
	ID          ident.ID   `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Price       Money      `json:"price"`
	FlightDate  *time.Time `json:"flightDate,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id" keys and a null description.
func (s *Service) UnmarshalJSON(b []byte) error {
	type alias Service
	aux := struct {
		*alias
		Description *string `json:"description"`
	}{alias: (*alias)(s)}
	if err := ident.Unmarshal(b, &aux, &s.ID); err != nil {
		return err
	}
	if aux.Description != nil {
		s.Description = *aux.Description
	}
	return nil
}

// ServiceRef is a booking's reference to a service; the API sends either an id or the populated record.
type ServiceRef struct {
	Service
}

// UnmarshalJSON decodes a bare id or a full service object.
func (r *ServiceRef) UnmarshalJSON(b []byte) error {
	if isScalarJSON(b) {
		return r.ID.UnmarshalJSON(b)
	}
	return json.Unmarshal(b, &r.Service)
}

// CreateServiceRequest is the body of POST /services.
type CreateServiceRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       Money     `json:"price"`
	FlightDate  time.Time `json:"flightDate"`
}

// UpdateServiceRequest is the body of PATCH /services/:id. Nil fields are left unchanged.
type UpdateServiceRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *Money     `json:"price,omitempty"`
	FlightDate  *time.Time `json:"flightDate,omitempty"`
}

// ServiceForm is the raw admin input for a service, also used as the edit buffer.
type ServiceForm struct {
	Name        string
	Description string
	Price       string
	FlightDate  string // datetime-local value
}

// ServiceFormFrom fills an edit buffer from a stored record.
func ServiceFormFrom(s Service, loc *time.Location) ServiceForm {
	f := ServiceForm{
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.String(),
	}
	if s.FlightDate != nil {
		f.FlightDate = ToLocalEditable(*s.FlightDate, loc)
	}
	return f
}

func (f ServiceForm) nameAndPrice() (string, Money, error) {
	name := strings.TrimSpace(f.Name)
	price, ok := ParseMoney(f.Price)
	if name == "" || !ok || price.IsNegative() {
		return "", Money{}, apperrors.ValidationField("price", msgServiceNameAndPrice)
	}
	return name, price, nil
}

// CreateRequest validates the form and converts the local flight date to an instant.
func (f ServiceForm) CreateRequest(loc *time.Location) (CreateServiceRequest, error) {
	name, price, err := f.nameAndPrice()
	if err != nil {
		return CreateServiceRequest{}, err
	}
	if strings.TrimSpace(f.FlightDate) == "" {
		return CreateServiceRequest{}, apperrors.ValidationField("flightDate", msgFlightDateRequired)
	}
	at, err := ToAbsolute(f.FlightDate, loc)
	if err != nil {
		return CreateServiceRequest{}, apperrors.ValidationField("flightDate", msgFlightDateInvalid)
	}
	return CreateServiceRequest{
		Name:        name,
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		FlightDate:  at,
	}, nil
}

// UpdateRequest applies the same rules as CreateRequest except that the flight date is optional.
func (f ServiceForm) UpdateRequest(loc *time.Location) (UpdateServiceRequest, error) {
	name, price, err := f.nameAndPrice()
	if err != nil {
		return UpdateServiceRequest{}, err
	}
	desc := strings.TrimSpace(f.Description)
	req := UpdateServiceRequest{Name: &name, Description: &desc, Price: &price}
	if strings.TrimSpace(f.FlightDate) != "" {
		at, err := ToAbsolute(f.FlightDate, loc)
		if err != nil {
			return UpdateServiceRequest{}, apperrors.ValidationField("flightDate", msgFlightDateInvalid)
		}
		req.FlightDate = &at
	}
	return req, nil
}

func isScalarJSON(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return false
		default:
			return true
		}
	}
	return true
}
