package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryType selects how an order reaches the customer.
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// Valid reports whether the delivery type is a known value.
func (d DeliveryType) Valid() bool {
	return d == DeliveryTypeDelivery || d == DeliveryTypePickup
}

// Cart holds a user's pending item quantities for a single restaurant.
// Keys are product id strings; quantities are always positive.
type Cart struct {
	UserID       uuid.UUID      `json:"user_id"`
	RestaurantID uuid.UUID      `json:"restaurant_id"`
	Items        map[string]int `json:"items"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewCart creates an empty cart bound to a restaurant.
func NewCart(userID, restaurantID uuid.UUID) *Cart {
	return &Cart{
		UserID:       userID,
		RestaurantID: restaurantID,
		Items:        make(map[string]int),
		UpdatedAt:    time.Now().UTC(),
	}
}

// AddItem increments the quantity for the product.
func (c *Cart) AddItem(productID uuid.UUID) {
	if c.Items == nil {
		c.Items = make(map[string]int)
	}
	c.Items[productID.String()]++
	c.UpdatedAt = time.Now().UTC()
}

// RemoveItem decrements the quantity for the product, deleting the entry
// when it reaches zero. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	key := productID.String()
	qty, ok := c.Items[key]
	if !ok {
		return
	}
	if qty <= 1 {
		delete(c.Items, key)
	} else {
		c.Items[key] = qty - 1
	}
	c.UpdatedAt = time.Now().UTC()
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems returns the sum of all quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, qty := range c.Items {
		total += qty
	}
	return total
}

// CartTotals is the priced summary of a cart. All amounts are in minor
// currency units.
type CartTotals struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
	ItemCount   int   `json:"item_count"`
}

// Totals prices the cart against the product catalog. Items whose product
// id is not in the catalog are skipped. The delivery fee applies only to
// delivery orders; pickup is always fee-free.
func (c *Cart) Totals(catalog map[string]Product, deliveryType DeliveryType, deliveryFee int64) CartTotals {
	totals := CartTotals{}
	for id, qty := range c.Items {
		product, ok := catalog[id]
		if !ok {
			continue
		}
		totals.Subtotal += product.Price * int64(qty)
		totals.ItemCount += qty
	}

	if deliveryType == DeliveryTypeDelivery {
		totals.DeliveryFee = deliveryFee
	}
	totals.Total = totals.Subtotal + totals.DeliveryFee
	return totals
}
