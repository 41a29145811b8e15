package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCartAddAndRemove(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	cart := NewCart(userID, restaurantID)
	assert.True(t, cart.IsEmpty())

	cart.AddItem(productA)
	cart.AddItem(productA)
	cart.AddItem(productB)

	assert.Equal(t, 2, cart.Items[productA.String()])
	assert.Equal(t, 1, cart.Items[productB.String()])
	assert.Equal(t, 3, cart.TotalItems())

	cart.RemoveItem(productA)
	assert.Equal(t, 1, cart.Items[productA.String()])

	cart.RemoveItem(productB)
	_, exists := cart.Items[productB.String()]
	assert.False(t, exists, "entry should be deleted at zero quantity")
}

func TestCartRemoveAbsentIsNoOp(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New())
	cart.AddItem(uuid.New())

	before := cart.TotalItems()
	cart.RemoveItem(uuid.New())
	assert.Equal(t, before, cart.TotalItems())
}

func TestCartTotals(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	catalog := map[string]Product{
		productA.String(): {ID: productA, Price: 1000}, // 10.00
		productB.String(): {ID: productB, Price: 500},  // 5.00
	}

	cart := NewCart(uuid.New(), uuid.New())
	cart.AddItem(productA)
	cart.AddItem(productA)
	cart.AddItem(productB)

	totals := cart.Totals(catalog, DeliveryTypeDelivery, 300)
	assert.Equal(t, int64(2500), totals.Subtotal)
	assert.Equal(t, int64(300), totals.DeliveryFee)
	assert.Equal(t, int64(2800), totals.Total)
	assert.Equal(t, 3, totals.ItemCount)
}

func TestCartTotalsPickupHasNoFee(t *testing.T) {
	productA := uuid.New()
	catalog := map[string]Product{productA.String(): {ID: productA, Price: 1000}}

	cart := NewCart(uuid.New(), uuid.New())
	cart.AddItem(productA)

	totals := cart.Totals(catalog, DeliveryTypePickup, 300)
	assert.Equal(t, int64(0), totals.DeliveryFee)
	assert.Equal(t, int64(1000), totals.Total)
}

func TestCartTotalsSkipsUnknownProducts(t *testing.T) {
	known := uuid.New()
	catalog := map[string]Product{known.String(): {ID: known, Price: 700}}

	cart := NewCart(uuid.New(), uuid.New())
	cart.AddItem(known)
	cart.AddItem(uuid.New()) // no longer in the catalog

	totals := cart.Totals(catalog, DeliveryTypeDelivery, 0)
	assert.Equal(t, int64(700), totals.Subtotal)
	assert.Equal(t, 1, totals.ItemCount)
}

func TestCartTotalsEmptyCart(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New())

	totals := cart.Totals(map[string]Product{}, DeliveryTypeDelivery, 300)
	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(300), totals.Total)
}
