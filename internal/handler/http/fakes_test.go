package http

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/repository"
)

// Function-field fakes keep each test to exactly the repository behavior
// it cares about.

type fakeCartRepo struct {
	GetFn    func(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	SaveFn   func(ctx context.Context, cart *domain.Cart) error
	DeleteFn func(ctx context.Context, userID uuid.UUID) error
}

func (f *fakeCartRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	return f.GetFn(ctx, userID)
}

func (f *fakeCartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	if f.SaveFn == nil {
		return nil
	}
	return f.SaveFn(ctx, cart)
}

func (f *fakeCartRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	if f.DeleteFn == nil {
		return nil
	}
	return f.DeleteFn(ctx, userID)
}

type fakeProductRepo struct {
	ListByRestaurantFn func(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error)
	GetByIDsFn         func(ctx context.Context, ids []uuid.UUID) (map[string]domain.Product, error)
}

func (f *fakeProductRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error) {
	return f.ListByRestaurantFn(ctx, restaurantID)
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[string]domain.Product, error) {
	return f.GetByIDsFn(ctx, ids)
}

type fakeRestaurantRepo struct {
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	ListFn         func(ctx context.Context, params repository.ListParams) ([]domain.Restaurant, int, error)
	UpdateRatingFn func(ctx context.Context, id uuid.UUID, rating float64, count int) error
}

func (f *fakeRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeRestaurantRepo) List(ctx context.Context, params repository.ListParams) ([]domain.Restaurant, int, error) {
	return f.ListFn(ctx, params)
}

func (f *fakeRestaurantRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, count int) error {
	if f.UpdateRatingFn == nil {
		return nil
	}
	return f.UpdateRatingFn(ctx, id, rating, count)
}

type fakeAddressRepo struct {
	CreateFn       func(ctx context.Context, address *domain.Address) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Address, error)
	ListByUserIDFn func(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	UpdateFn       func(ctx context.Context, address *domain.Address) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
	SetDefaultFn   func(ctx context.Context, userID, addressID uuid.UUID) error
}

func (f *fakeAddressRepo) Create(ctx context.Context, address *domain.Address) error {
	return f.CreateFn(ctx, address)
}

func (f *fakeAddressRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeAddressRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	return f.ListByUserIDFn(ctx, userID)
}

func (f *fakeAddressRepo) Update(ctx context.Context, address *domain.Address) error {
	return f.UpdateFn(ctx, address)
}

func (f *fakeAddressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.DeleteFn(ctx, id)
}

func (f *fakeAddressRepo) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	if f.SetDefaultFn == nil {
		return nil
	}
	return f.SetDefaultFn(ctx, userID, addressID)
}

type fakeOrderRepo struct {
	CreateFn                  func(ctx context.Context, order *domain.Order) error
	GetByIDFn                 func(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUserIDFn            func(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.Order, int, error)
	ListMissingPointsCreditFn func(ctx context.Context, limit int) ([]domain.Order, error)
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return f.CreateFn(ctx, order)
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.Order, int, error) {
	return f.ListByUserIDFn(ctx, userID, params)
}

func (f *fakeOrderRepo) ListMissingPointsCredit(ctx context.Context, limit int) ([]domain.Order, error) {
	return f.ListMissingPointsCreditFn(ctx, limit)
}

type fakePointsRepo struct {
	GetAccountFn           func(ctx context.Context, userID uuid.UUID) (*domain.PointsAccount, error)
	CreditFn               func(ctx context.Context, entry *domain.PointsEntry, expiresAt *time.Time) error
	HistoryFn              func(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.PointsEntry, int, error)
	ActiveConfigFn         func(ctx context.Context) (domain.PointsConfig, error)
	HasEntryForReferenceFn func(ctx context.Context, action domain.PointsAction, referenceID uuid.UUID) (bool, error)
}

func (f *fakePointsRepo) GetAccount(ctx context.Context, userID uuid.UUID) (*domain.PointsAccount, error) {
	return f.GetAccountFn(ctx, userID)
}

func (f *fakePointsRepo) Credit(ctx context.Context, entry *domain.PointsEntry, expiresAt *time.Time) error {
	if f.CreditFn == nil {
		return nil
	}
	return f.CreditFn(ctx, entry, expiresAt)
}

func (f *fakePointsRepo) History(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.PointsEntry, int, error) {
	return f.HistoryFn(ctx, userID, params)
}

func (f *fakePointsRepo) ActiveConfig(ctx context.Context) (domain.PointsConfig, error) {
	if f.ActiveConfigFn == nil {
		return domain.DefaultPointsConfig(), nil
	}
	return f.ActiveConfigFn(ctx)
}

func (f *fakePointsRepo) HasEntryForReference(ctx context.Context, action domain.PointsAction, referenceID uuid.UUID) (bool, error) {
	if f.HasEntryForReferenceFn == nil {
		return false, nil
	}
	return f.HasEntryForReferenceFn(ctx, action, referenceID)
}

type fakeReviewRepo struct {
	CreateFn           func(ctx context.Context, review *domain.Review) error
	GetByOrderIDFn     func(ctx context.Context, orderID uuid.UUID) (*domain.Review, error)
	ListByRestaurantFn func(ctx context.Context, restaurantID uuid.UUID, params repository.ListParams) ([]domain.Review, int, error)
	RatingSummaryFn    func(ctx context.Context, restaurantID uuid.UUID) (domain.RatingSummary, error)
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return f.CreateFn(ctx, review)
}

func (f *fakeReviewRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Review, error) {
	return f.GetByOrderIDFn(ctx, orderID)
}

func (f *fakeReviewRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, params repository.ListParams) ([]domain.Review, int, error) {
	return f.ListByRestaurantFn(ctx, restaurantID, params)
}

func (f *fakeReviewRepo) RatingSummary(ctx context.Context, restaurantID uuid.UUID) (domain.RatingSummary, error) {
	if f.RatingSummaryFn == nil {
		return domain.RatingSummary{}, nil
	}
	return f.RatingSummaryFn(ctx, restaurantID)
}
