package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/repository"
)

type mockAddressRepo struct{ mock.Mock }

func (m *mockAddressRepo) Create(ctx context.Context, address *domain.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *mockAddressRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockAddressRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockAddressRepo) Update(ctx context.Context, address *domain.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *mockAddressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAddressRepo) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	return m.Called(ctx, userID, addressID).Error(0)
}

type mockRestaurantRepo struct{ mock.Mock }

func (m *mockRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *mockRestaurantRepo) List(ctx context.Context, params repository.ListParams) ([]domain.Restaurant, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Restaurant), args.Int(1), args.Error(2)
}

func (m *mockRestaurantRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, count int) error {
	return m.Called(ctx, id, rating, count).Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[string]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByUserID(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.Order, int, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderRepo) ListMissingPointsCredit(ctx context.Context, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type mockPointsRepo struct{ mock.Mock }

func (m *mockPointsRepo) GetAccount(ctx context.Context, userID uuid.UUID) (*domain.PointsAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointsAccount), args.Error(1)
}

func (m *mockPointsRepo) Credit(ctx context.Context, entry *domain.PointsEntry, expiresAt *time.Time) error {
	return m.Called(ctx, entry, expiresAt).Error(0)
}

func (m *mockPointsRepo) History(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.PointsEntry, int, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PointsEntry), args.Int(1), args.Error(2)
}

func (m *mockPointsRepo) ActiveConfig(ctx context.Context) (domain.PointsConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PointsConfig), args.Error(1)
}

func (m *mockPointsRepo) HasEntryForReference(ctx context.Context, action domain.PointsAction, referenceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, action, referenceID)
	return args.Bool(0), args.Error(1)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Review, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, params repository.ListParams) ([]domain.Review, int, error) {
	args := m.Called(ctx, restaurantID, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepo) RatingSummary(ctx context.Context, restaurantID uuid.UUID) (domain.RatingSummary, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(domain.RatingSummary), args.Error(1)
}

type mockCartRepo struct{ mock.Mock }

func (m *mockCartRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *mockCartRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockResolver struct{ mock.Mock }

func (m *mockResolver) Resolve(ctx context.Context, query string) (domain.Coordinate, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(domain.Coordinate), args.Error(1)
}
