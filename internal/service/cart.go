package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/repository"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// CartService manages the per-user cart. A cart is bound to exactly one
// restaurant; adding a product from a different restaurant starts a fresh
// cart.
type CartService struct {
	carts       repository.CartRepository
	products    repository.ProductRepository
	restaurants repository.RestaurantRepository
	logger      *slog.Logger
}

// NewCartService creates a CartService.
func NewCartService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	restaurants repository.RestaurantRepository,
	logger *slog.Logger,
) *CartService {
	return &CartService{
		carts:       carts,
		products:    products,
		restaurants: restaurants,
		logger:      logger,
	}
}

// AddItem adds one unit of the product to the user's cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error) {
	catalog, err := s.products.GetByIDs(ctx, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	product, ok := catalog[productID.String()]
	if !ok {
		return nil, apperrors.NotFound("product", productID.String())
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	switch {
	case cart == nil:
		cart = domain.NewCart(userID, product.RestaurantID)
	case cart.RestaurantID != product.RestaurantID:
		s.logger.Info("cart reset on restaurant switch",
			slog.String("user_id", userID.String()),
			slog.String("from_restaurant", cart.RestaurantID.String()),
			slog.String("to_restaurant", product.RestaurantID.String()),
		)
		cart = domain.NewCart(userID, product.RestaurantID)
	}

	cart.AddItem(productID)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// RemoveItem removes one unit of the product from the cart. Removing from
// an absent cart or an absent product is a no-op. An emptied cart is
// deleted.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil {
		return nil, nil
	}

	cart.RemoveItem(productID)

	if cart.IsEmpty() {
		if err := s.carts.Delete(ctx, userID); err != nil {
			return nil, fmt.Errorf("delete cart: %w", err)
		}
		return nil, nil
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// CartSummary is the cart plus its priced totals.
type CartSummary struct {
	Cart   *domain.Cart      `json:"cart"`
	Totals domain.CartTotals `json:"totals"`
}

// Summary prices the user's cart for the given delivery type. Cart items
// whose product has since been removed from the menu are skipped.
func (s *CartService) Summary(ctx context.Context, userID uuid.UUID, deliveryType domain.DeliveryType) (*CartSummary, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart == nil || cart.IsEmpty() {
		return &CartSummary{Cart: domain.NewCart(userID, uuid.Nil)}, nil
	}

	catalog, restaurant, err := s.price(ctx, cart)
	if err != nil {
		return nil, err
	}

	return &CartSummary{
		Cart:   cart,
		Totals: cart.Totals(catalog, deliveryType, restaurant.DeliveryFee),
	}, nil
}

// Clear drops the user's cart.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.carts.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// price loads the catalog entries and restaurant backing the cart.
func (s *CartService) price(ctx context.Context, cart *domain.Cart) (map[string]domain.Product, *domain.Restaurant, error) {
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
		return nil, nil, fmt.Errorf("load products: %w", err)
	}

	restaurant, err := s.restaurants.GetByID(ctx, cart.RestaurantID)
	if err != nil {
		return nil, nil, fmt.Errorf("load restaurant: %w", err)
	}

	return catalog, restaurant, nil
}
