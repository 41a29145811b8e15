package domain

import (
	"time"

	"github.com/google/uuid"
)

// PointsAction classifies a points ledger entry.
type PointsAction string

const (
	PointsActionOrder      PointsAction = "order"
	PointsActionReview     PointsAction = "review"
	PointsActionReferral   PointsAction = "referral"
	PointsActionExpiration PointsAction = "expiration"
)

// Valid reports whether the action is a known value.
func (a PointsAction) Valid() bool {
	switch a {
	case PointsActionOrder, PointsActionReview, PointsActionReferral, PointsActionExpiration:
		return true
	default:
		return false
	}
}

// PointsAccount is the denormalized balance for a user. Total never goes
// below zero.
type PointsAccount struct {
	UserID    uuid.UUID  `json:"user_id"`
	Total     int        `json:"total"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PointsEntry is an append-only ledger record. Points is negative only for
// expiration entries.
type PointsEntry struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Points      int          `json:"points"`
	Action      PointsAction `json:"action"`
	ReferenceID *uuid.UUID   `json:"reference_id,omitempty"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// PointsConfig controls how many points each action earns and how long
// balances stay valid.
type PointsConfig struct {
	ID              uuid.UUID `json:"id"`
	PointsPerOrder  int       `json:"points_per_order"`
	PointsPerReview int       `json:"points_per_review"`
	ValidityMonths  int       `json:"validity_months"`
	Active          bool      `json:"active"`
}

// DefaultPointsConfig applies when no active row exists in the store.
func DefaultPointsConfig() PointsConfig {
	return PointsConfig{
		PointsPerOrder:  10,
		PointsPerReview: 5,
		ValidityMonths:  12,
		Active:          true,
	}
}
