// Package repository defines the persistence interfaces the service layer
// depends on. Postgres implementations live in the postgres subpackage and
// the Redis-backed cart store in the redis subpackage.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quickeats/quickeats/internal/domain"
)

// ListParams carries offset pagination for list queries.
type ListParams struct {
	Page    int
	PerPage int
}

// Offset returns the SQL offset for the page.
func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// AddressRepository persists user delivery addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Address, error)
	// ListByUserID returns the user's addresses with the default address
	// first, then most recently created.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	Update(ctx context.Context, address *domain.Address) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetDefault marks the address as the user's default and clears any
	// previous default in the same transaction.
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
}

// RestaurantRepository is the read side of the restaurant catalog plus the
// denormalized rating update.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	List(ctx context.Context, params ListParams) ([]domain.Restaurant, int, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64, count int) error
}

// ProductRepository is the read side of the menu catalog.
type ProductRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error)
	// GetByIDs returns the active products among ids, keyed by id string.
	// Unknown ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[string]domain.Product, error)
}

// OrderRepository persists settled orders.
type OrderRepository interface {
	// Create persists the order and its items atomically, assigning a
	// fresh monotonic order number. On success order.ID and order.Number
	// are populated.
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, params ListParams) ([]domain.Order, int, error)
	// ListMissingPointsCredit returns settled orders with no matching
	// points history entry, oldest first.
	ListMissingPointsCredit(ctx context.Context, limit int) ([]domain.Order, error)
}

// PointsRepository persists the loyalty points ledger.
type PointsRepository interface {
	GetAccount(ctx context.Context, userID uuid.UUID) (*domain.PointsAccount, error)
	// Credit appends a history entry and updates the denormalized account
	// balance in one transaction. The stored balance is clamped at zero.
	Credit(ctx context.Context, entry *domain.PointsEntry, expiresAt *time.Time) error
	History(ctx context.Context, userID uuid.UUID, params ListParams) ([]domain.PointsEntry, int, error)
	// ActiveConfig returns the active points configuration, or
	// domain.DefaultPointsConfig() when none exists.
	ActiveConfig(ctx context.Context) (domain.PointsConfig, error)
	// HasEntryForReference reports whether a ledger entry already exists
	// for the given action and reference, used by reconciliation.
	HasEntryForReference(ctx context.Context, action domain.PointsAction, referenceID uuid.UUID) (bool, error)
}

// ReviewRepository persists order reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Review, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, params ListParams) ([]domain.Review, int, error)
	// RatingSummary computes the average rating and review count for the
	// restaurant. Average is 0 when no reviews exist.
	RatingSummary(ctx context.Context, restaurantID uuid.UUID) (domain.RatingSummary, error)
}

// CartRepository stores the per-user cart. Get returns nil with no error
// when the user has no cart.
type CartRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
