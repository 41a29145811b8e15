package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/event"
	"github.com/quickeats/quickeats/internal/repository"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// Settlement precondition failures.
var (
	ErrEmptyCart          = apperrors.Unprocessable("EMPTY_CART", "cart is empty")
	ErrIneligibleAddress  = apperrors.Unprocessable("INELIGIBLE_ADDRESS", "address is outside the restaurant's delivery area")
	ErrAddressRequired    = apperrors.InvalidInput("delivery orders require an address")
	ErrRestaurantInactive = apperrors.Unprocessable("RESTAURANT_INACTIVE", "restaurant is not accepting orders")
)

var (
	ordersSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_settled_total",
		Help: "Orders successfully settled",
	})
	pointsCreditFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "points_credit_failures_total",
		Help: "Order settlements whose points credit failed and was deferred to reconciliation",
	})
)

// SettlementInput is a confirmation request for the user's current cart.
type SettlementInput struct {
	UserID        uuid.UUID
	DeliveryType  domain.DeliveryType
	PaymentMethod domain.PaymentMethod
	// AddressID is required for delivery and ignored for pickup.
	AddressID *uuid.UUID
}

// OrderConfirmation is the settlement result. PointsPending is true when
// the order settled but the points credit failed and will be retried by
// reconciliation.
type OrderConfirmation struct {
	Order         *domain.Order `json:"order"`
	PointsEarned  int           `json:"points_earned"`
	PointsPending bool          `json:"points_pending"`
}

// SettlementService turns a cart into a settled order. Order and item
// persistence is atomic and fatal on failure; the points credit is best
// effort and reconciled later when it fails.
type SettlementService struct {
	orders      repository.OrderRepository
	addresses   repository.AddressRepository
	restaurants repository.RestaurantRepository
	products    repository.ProductRepository
	carts       repository.CartRepository
	eligibility *EligibilityService
	points      *PointsService
	producer    *event.Producer
	logger      *slog.Logger
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(
	orders repository.OrderRepository,
	addresses repository.AddressRepository,
	restaurants repository.RestaurantRepository,
	products repository.ProductRepository,
	carts repository.CartRepository,
	eligibility *EligibilityService,
	points *PointsService,
	producer *event.Producer,
	logger *slog.Logger,
) *SettlementService {
	return &SettlementService{
		orders:      orders,
		addresses:   addresses,
		restaurants: restaurants,
		products:    products,
		carts:       carts,
		eligibility: eligibility,
		points:      points,
		producer:    producer,
		logger:      logger,
	}
}

// ConfirmOrder settles the user's cart:
//
//  1. load the cart and reject if empty
//  2. validate delivery type and payment method
//  3. load the restaurant
//  4. for delivery, load the address, check ownership and eligibility,
//     and snapshot it into the order
//  5. price the cart against the current catalog
//  6. persist order and items atomically with a fresh order number
//  7. credit order points (best effort), clear the cart, publish the event
//
// Failures before step 6 leave no trace. A failure in step 6 is fatal and
// rolls back. After step 6 the order stands: points and cart cleanup
// failures are logged and recovered out of band.
func (s *SettlementService) ConfirmOrder(ctx context.Context, input SettlementInput) (*OrderConfirmation, error) {
	cart, err := s.carts.Get(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if !input.DeliveryType.Valid() {
		return nil, apperrors.InvalidInput("unknown delivery type: " + string(input.DeliveryType))
	}
	if !input.PaymentMethod.Valid() {
		return nil, apperrors.InvalidInput("unknown payment method: " + string(input.PaymentMethod))
	}

	restaurant, err := s.restaurants.GetByID(ctx, cart.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}
	if !restaurant.Active {
		return nil, ErrRestaurantInactive
	}

	var snapshot *domain.AddressSnapshot
	if input.DeliveryType == domain.DeliveryTypeDelivery {
		snapshot, err = s.deliveryAddress(ctx, input, restaurant)
		if err != nil {
			return nil, err
		}
	}

	items, subtotal, err := s.priceCart(ctx, cart)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		// Every cart item has since left the menu.
		return nil, ErrEmptyCart
	}

	var deliveryFee int64
	if input.DeliveryType == domain.DeliveryTypeDelivery {
		deliveryFee = restaurant.DeliveryFee
	}

	order := &domain.Order{
		UserID:          input.UserID,
		RestaurantID:    restaurant.ID,
		Status:          domain.OrderStatusConfirmed,
		DeliveryType:    input.DeliveryType,
		PaymentMethod:   input.PaymentMethod,
		AddressSnapshot: snapshot,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		Total:           subtotal + deliveryFee,
		Items:           items,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	ordersSettled.Inc()

	confirmation := &OrderConfirmation{Order: order}

	earned, err := s.points.CreditOrderPoints(ctx, order)
	if err != nil {
		pointsCreditFailures.Inc()
		confirmation.PointsPending = true
		s.logger.Error("points credit failed, deferring to reconciliation",
			slog.String("order_id", order.ID.String()),
			slog.String("user_id", input.UserID.String()),
			slog.String("error", err.Error()),
		)
	} else {
		confirmation.PointsEarned = earned
	}

	if err := s.carts.Delete(ctx, input.UserID); err != nil {
		s.logger.Warn("clear cart after settlement",
			slog.String("user_id", input.UserID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.producer.OrderSettled(ctx, order)
	return confirmation, nil
}

// deliveryAddress loads and validates the delivery address for the order.
func (s *SettlementService) deliveryAddress(ctx context.Context, input SettlementInput, restaurant *domain.Restaurant) (*domain.AddressSnapshot, error) {
	if input.AddressID == nil {
		return nil, ErrAddressRequired
	}

	address, err := s.addresses.GetByID(ctx, *input.AddressID)
	if err != nil {
		return nil, fmt.Errorf("load address: %w", err)
	}
	if address.UserID != input.UserID {
		return nil, apperrors.NotFound("address", input.AddressID.String())
	}
	if !s.eligibility.IsEligible(restaurant, address) {
		return nil, ErrIneligibleAddress
	}

	snap := address.Snapshot()
	return &snap, nil
}

// priceCart builds order items from the cart at current catalog prices.
// Cart entries whose product is gone from the menu are dropped.
func (s *SettlementService) priceCart(ctx context.Context, cart *domain.Cart) ([]domain.OrderItem, int64, error) {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for raw := range cart.Items {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	catalog, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("load products: %w", err)
	}

	var items []domain.OrderItem
	var subtotal int64
	for _, id := range ids {
		product, ok := catalog[id.String()]
		if !ok {
			s.logger.Info("cart item no longer on the menu, skipping",
				slog.String("product_id", id.String()),
			)
			continue
		}
		qty := cart.Items[id.String()]
		lineTotal := product.Price * int64(qty)
		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    qty,
			Total:       lineTotal,
		})
		subtotal += lineTotal
	}
	return items, subtotal, nil
}

// ReconcilePoints retries the points credit for settled orders that never
// received one. Returns the number of credits applied. When order points
// are disabled, no credits are owed and the run is a no-op.
func (s *SettlementService) ReconcilePoints(ctx context.Context, limit int) (int, error) {
	cfg, err := s.points.Config(ctx)
	if err != nil {
		return 0, fmt.Errorf("load points config: %w", err)
	}
	if cfg.PointsPerOrder <= 0 {
		s.logger.Info("order points disabled, skipping reconciliation")
		return 0, nil
	}

	orders, err := s.orders.ListMissingPointsCredit(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list orders missing points credit: %w", err)
	}

	credited := 0
	for i := range orders {
		order := &orders[i]

		// Guards against a concurrent reconcile run crediting the same
		// order between the listing and the insert.
		exists, err := s.points.HasOrderCredit(ctx, order.ID)
		if err != nil {
			s.logger.Error("points reconciliation check failed for order",
				slog.String("order_id", order.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if exists {
			continue
		}

		if _, err := s.points.CreditOrderPoints(ctx, order); err != nil {
			s.logger.Error("points reconciliation failed for order",
				slog.String("order_id", order.ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		credited++
	}

	if credited > 0 {
		s.logger.Info("points reconciliation applied credits", slog.Int("count", credited))
	}
	return credited, nil
}

// MissingCredits reports settled orders still awaiting their points credit.
// Empty when order points are disabled, since nothing is owed.
func (s *SettlementService) MissingCredits(ctx context.Context, limit int) ([]domain.Order, error) {
	cfg, err := s.points.Config(ctx)
	if err != nil {
		return nil, fmt.Errorf("load points config: %w", err)
	}
	if cfg.PointsPerOrder <= 0 {
		return []domain.Order{}, nil
	}

	orders, err := s.orders.ListMissingPointsCredit(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders missing points credit: %w", err)
	}
	return orders, nil
}

// GetOrder loads an order, enforcing ownership.
func (s *SettlementService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order", orderID.String())
	}
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *SettlementService) ListOrders(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.Order, int, error) {
	return s.orders.ListByUserID(ctx, userID, params)
}
