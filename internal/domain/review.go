package domain

import (
	"math"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// Review is a customer's rating of a settled order. At most one review
// exists per order.
type Review struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	UserID       uuid.UUID `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the rating range.
func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return apperrors.InvalidInput("rating must be between 1 and 5")
	}
	return nil
}

// RatingSummary aggregates reviews for a restaurant.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RoundRating rounds an average rating to one decimal place. A restaurant
// with no reviews has rating 0.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
