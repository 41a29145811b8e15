package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// PaymentMethod selects how the customer pays on fulfillment.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodPix        PaymentMethod = "pix"
)

// Valid reports whether the payment method is a known value.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodCash, PaymentMethodPix:
		return true
	default:
		return false
	}
}

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOutForDel OrderStatus = "out_for_delivery"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a settled purchase. Number is a monotonically increasing,
// human-facing identifier distinct from the surrogate ID. Amounts are in
// minor currency units. AddressSnapshot is nil for pickup orders.
type Order struct {
	ID              uuid.UUID        `json:"id"`
	Number          int64            `json:"number"`
	UserID          uuid.UUID        `json:"user_id"`
	RestaurantID    uuid.UUID        `json:"restaurant_id"`
	Status          OrderStatus      `json:"status"`
	DeliveryType    DeliveryType     `json:"delivery_type"`
	PaymentMethod   PaymentMethod    `json:"payment_method"`
	AddressSnapshot *AddressSnapshot `json:"address_snapshot,omitempty"`
	Subtotal        int64            `json:"subtotal"`
	DeliveryFee     int64            `json:"delivery_fee"`
	Total           int64            `json:"total"`
	Items           []OrderItem      `json:"items,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// OrderItem is a line of a settled order. ProductName and UnitPrice are
// snapshots taken at settlement time.
type OrderItem struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   int64     `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Total       int64     `json:"total"`
}

// Validate checks structural invariants of a settled order.
func (o Order) Validate() error {
	if !o.DeliveryType.Valid() {
		return apperrors.InvalidInput("unknown delivery type: " + string(o.DeliveryType))
	}
	if !o.PaymentMethod.Valid() {
		return apperrors.InvalidInput("unknown payment method: " + string(o.PaymentMethod))
	}
	if o.DeliveryType == DeliveryTypeDelivery && o.AddressSnapshot == nil {
		return apperrors.InvalidInput("delivery order requires an address snapshot")
	}
	if len(o.Items) == 0 {
		return apperrors.InvalidInput("order must contain at least one item")
	}
	if o.Total != o.Subtotal+o.DeliveryFee {
		return apperrors.InvalidInput("order total does not match subtotal plus delivery fee")
	}
	return nil
}
