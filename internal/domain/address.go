package domain

import (
	"time"

	"github.com/google/uuid"
)

// Address is a delivery address belonging to a user. Coordinate is nil
// until geocoding succeeds; eligibility checks treat a nil coordinate as
// not eligible rather than an error.
type Address struct {
	ID           uuid.UUID   `json:"id"`
	UserID       uuid.UUID   `json:"user_id"`
	Label        string      `json:"label"`
	Street       string      `json:"street"`
	Number       string      `json:"number"`
	Complement   string      `json:"complement,omitempty"`
	Neighborhood string      `json:"neighborhood"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	ZipCode      string      `json:"zip_code"`
	Coordinate   *Coordinate `json:"coordinate,omitempty"`
	IsDefault    bool        `json:"is_default"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// AddressSnapshot is the immutable copy of an address embedded in an order
// at settlement time. Later edits or deletion of the address do not affect
// settled orders.
type AddressSnapshot struct {
	AddressID    uuid.UUID   `json:"address_id"`
	Label        string      `json:"label"`
	Street       string      `json:"street"`
	Number       string      `json:"number"`
	Complement   string      `json:"complement,omitempty"`
	Neighborhood string      `json:"neighborhood"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	ZipCode      string      `json:"zip_code"`
	Coordinate   *Coordinate `json:"coordinate,omitempty"`
}

// Snapshot returns the immutable settlement-time copy of the address.
func (a Address) Snapshot() AddressSnapshot {
	snap := AddressSnapshot{
		AddressID:    a.ID,
		Label:        a.Label,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
	if a.Coordinate != nil {
		c := *a.Coordinate
		snap.Coordinate = &c
	}
	return snap
}
