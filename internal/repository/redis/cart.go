// Package redis holds the Redis-backed cart store. Carts are transient
// session state, so they live in Redis with a TTL instead of Postgres.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/quickeats/quickeats/internal/domain"
)

const defaultCartTTL = 24 * time.Hour

// CartRepository stores one cart per user as a JSON value with a TTL.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a CartRepository. A zero ttl falls back to 24h.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	if ttl == 0 {
		ttl = defaultCartTTL
	}
	return &CartRepository{client: client, ttl: ttl}
}

func cartKey(userID uuid.UUID) string {
	return "cart:" + userID.String()
}

// Get returns the user's cart, or nil when none exists.
func (r *CartRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &cart, nil
}

// Save writes the cart, refreshing the TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cart.UserID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Delete removes the user's cart. Deleting an absent cart is a no-op.
func (r *CartRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
