package domain

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is the read-side view a storefront needs for eligibility
// screening and cart pricing. DeliveryFee is in minor currency units.
type Restaurant struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description,omitempty"`
	CuisineType      string      `json:"cuisine_type,omitempty"`
	Coordinate       *Coordinate `json:"coordinate,omitempty"`
	DeliveryRadiusKm float64     `json:"delivery_radius_km"`
	DeliveryFee      int64       `json:"delivery_fee"`
	Rating           float64     `json:"rating"`
	RatingCount      int         `json:"rating_count"`
	Active           bool        `json:"active"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
