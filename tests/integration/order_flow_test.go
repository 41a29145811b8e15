package integration

import (
	"fmt"
	"testing"
)

// TestPickupOrderFlow walks the full settlement path without an address:
// build a cart, confirm a pickup order, then verify points were credited
// and the cart was cleared.
func TestPickupOrderFlow(t *testing.T) {
	skipIfNotRunning(t)

	userID := uniqueUUID()
	_, products := firstSeededRestaurant(t, userID)

	product := products[0].(map[string]any)
	productID, _ := product["id"].(string)

	// Two units of the first product.
	for i := 0; i < 2; i++ {
		status, _ := httpPost(t, "/api/v1/cart/items", map[string]any{
			"product_id": productID,
		}, userID)
		requireStatus(t, status, 200)
	}

	status, body := httpPost(t, "/api/v1/orders", map[string]any{
		"delivery_type":  "pickup",
		"payment_method": "cash",
	}, userID)
	requireStatus(t, status, 201)

	data := extractData(t, body)
	order, ok := data["order"].(map[string]any)
	if !ok {
		t.Fatalf("expected order in confirmation, got %v", data)
	}

	price := product["price"].(float64)
	subtotal := order["subtotal"].(float64)
	total := order["total"].(float64)
	fee := order["delivery_fee"].(float64)

	if subtotal != 2*price {
		t.Errorf("expected subtotal %v, got %v", 2*price, subtotal)
	}
	if fee != 0 {
		t.Errorf("expected zero delivery fee for pickup, got %v", fee)
	}
	if total != subtotal {
		t.Errorf("expected total %v, got %v", subtotal, total)
	}
	if order["number"].(float64) <= 0 {
		t.Error("expected a positive order number")
	}
	if order["address_snapshot"] != nil {
		t.Error("expected no address snapshot on a pickup order")
	}

	// Settlement clears the cart.
	status, body = httpGet(t, "/api/v1/cart", userID)
	requireStatus(t, status, 200)
	cartData := extractData(t, body)
	if cart, ok := cartData["cart"].(map[string]any); ok {
		if items, ok := cart["items"].(map[string]any); ok && len(items) > 0 {
			t.Errorf("expected empty cart after settlement, got %v", items)
		}
	}

	// Points were credited for the order.
	status, body = httpGet(t, "/api/v1/points", userID)
	requireStatus(t, status, 200)
	points := extractData(t, body)
	if points["total"].(float64) <= 0 {
		t.Errorf("expected positive points balance after order, got %v", points["total"])
	}

	t.Logf("settled pickup order %v for user %s", order["number"], userID)
}

// TestConfirmEmptyCartRejected verifies the EMPTY_CART precondition.
func TestConfirmEmptyCartRejected(t *testing.T) {
	skipIfNotRunning(t)

	userID := uniqueUUID()
	status, body := httpPost(t, "/api/v1/orders", map[string]any{
		"delivery_type":  "pickup",
		"payment_method": "cash",
	}, userID)
	requireStatus(t, status, 422)

	if errObj, ok := body["error"].(map[string]any); !ok || errObj["code"] != "EMPTY_CART" {
		t.Errorf("expected EMPTY_CART error, got %v", body)
	}
}

// TestReviewFlow settles an order and leaves a review, checking the
// one-review-per-order rule.
func TestReviewFlow(t *testing.T) {
	skipIfNotRunning(t)

	userID := uniqueUUID()
	_, products := firstSeededRestaurant(t, userID)
	product := products[0].(map[string]any)
	productID, _ := product["id"].(string)

	status, _ := httpPost(t, "/api/v1/cart/items", map[string]any{
		"product_id": productID,
	}, userID)
	requireStatus(t, status, 200)

	status, body := httpPost(t, "/api/v1/orders", map[string]any{
		"delivery_type":  "pickup",
		"payment_method": "pix",
	}, userID)
	requireStatus(t, status, 201)

	order := extractData(t, body)["order"].(map[string]any)
	orderID, _ := order["id"].(string)
	reviewPath := fmt.Sprintf("/api/v1/orders/%s/review", orderID)

	status, body = httpPost(t, reviewPath, map[string]any{
		"rating":  5,
		"comment": "arrived hot and fast",
	}, userID)
	requireStatus(t, status, 201)

	review := extractData(t, body)
	if review["rating"].(float64) != 5 {
		t.Errorf("expected rating 5, got %v", review["rating"])
	}

	// Second review for the same order is rejected.
	status, _ = httpPost(t, reviewPath, map[string]any{"rating": 1}, userID)
	requireStatus(t, status, 409)

	// The review is readable back.
	status, _ = httpGet(t, reviewPath, userID)
	requireStatus(t, status, 200)
}

// TestOrderRequiresIdentity verifies requests without X-User-ID are rejected.
func TestOrderRequiresIdentity(t *testing.T) {
	skipIfNotRunning(t)

	status, _ := httpPost(t, "/api/v1/orders", map[string]any{
		"delivery_type":  "pickup",
		"payment_method": "cash",
	}, "")
	requireStatus(t, status, 401)
}
