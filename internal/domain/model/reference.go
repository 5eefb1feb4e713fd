package model

import (
	"strings"

	"github.com/revobooking/revo-ui/internal/domain/ident"
	apperrors "github.com/revobooking/revo-ui/internal/errors"
)

// Destination is a reference-data record naming a place served by flights.
type Destination struct {
	ID    ident.ID `json:"id"`
	Name  string   `json:"name"`
	Image string   `json:"image,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id" keys.
func (d *Destination) UnmarshalJSON(b []byte) error {
	type alias Destination
	return ident.Unmarshal(b, (*alias)(d), &d.ID)
}

// DestinationRequest is the body of POST and PATCH /destinations.
type DestinationRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Validate requires a name.
func (r *DestinationRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Image = strings.TrimSpace(r.Image)
	if r.Name == "" {
		return apperrors.ValidationField("name", "Nama tujuan diperlukan")
	}
	return nil
}

// DestinationRequestFrom fills an edit buffer from a stored record.
func DestinationRequestFrom(d Destination) DestinationRequest {
	return DestinationRequest{Name: d.Name, Image: d.Image}
}

// Aircraft is a reference-data record naming an aircraft.
type Aircraft struct {
	ID   ident.ID `json:"id"`
	Name string   `json:"name"`
	Type string   `json:"type,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id" keys.
func (a *Aircraft) UnmarshalJSON(b []byte) error {
	type alias Aircraft
	return ident.Unmarshal(b, (*alias)(a), &a.ID)
}

// AircraftRequest is the body of POST and PATCH /aircrafts.
type AircraftRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Validate requires a name.
func (r *AircraftRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Type = strings.TrimSpace(r.Type)
	if r.Name == "" {
		return apperrors.ValidationField("name", "Nama pesawat diperlukan")
	}
	return nil
}

// AircraftRequestFrom fills an edit buffer from a stored record.
func AircraftRequestFrom(a Aircraft) AircraftRequest {
	return AircraftRequest{Name: a.Name, Type: a.Type}
}
