package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/event"
	"github.com/quickeats/quickeats/internal/repository"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// ReviewService manages order reviews. Each order can be reviewed at most
// once; a new review recomputes the restaurant's denormalized rating.
type ReviewService struct {
	reviews     repository.ReviewRepository
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	points      *PointsService
	producer    *event.Producer
	logger      *slog.Logger
}

// NewReviewService creates a ReviewService.
func NewReviewService(
	reviews repository.ReviewRepository,
	orders repository.OrderRepository,
	restaurants repository.RestaurantRepository,
	points *PointsService,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:     reviews,
		orders:      orders,
		restaurants: restaurants,
		points:      points,
		producer:    producer,
		logger:      logger,
	}
}

// ReviewInput is a review creation request.
type ReviewInput struct {
	OrderID uuid.UUID
	Rating  int
	Comment string
}

// Create stores a review for one of the user's orders and refreshes the
// restaurant's rating (average rounded to one decimal). The rating
// refresh and review points are secondary effects: their failure is
// logged but does not undo the review.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, input ReviewInput) (*domain.Review, error) {
	order, err := s.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order", input.OrderID.String())
	}

	review := &domain.Review{
		OrderID:      order.ID,
		UserID:       userID,
		RestaurantID: order.RestaurantID,
		Rating:       input.Rating,
		Comment:      input.Comment,
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.refreshRating(ctx, order.RestaurantID)

	if _, err := s.points.CreditReviewPoints(ctx, review); err != nil {
		s.logger.Error("review points credit failed",
			slog.String("review_id", review.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.producer.ReviewCreated(ctx, review)
	return review, nil
}

// GetByOrder returns the review of an order.
func (s *ReviewService) GetByOrder(ctx context.Context, orderID uuid.UUID) (*domain.Review, error) {
	return s.reviews.GetByOrderID(ctx, orderID)
}

// ListByRestaurant returns a restaurant's reviews, newest first.
func (s *ReviewService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, params repository.ListParams) ([]domain.Review, int, error) {
	return s.reviews.ListByRestaurant(ctx, restaurantID, params)
}

// refreshRating recomputes and stores the restaurant's average rating.
func (s *ReviewService) refreshRating(ctx context.Context, restaurantID uuid.UUID) {
	summary, err := s.reviews.RatingSummary(ctx, restaurantID)
	if err != nil {
		s.logger.Error("rating summary failed",
			slog.String("restaurant_id", restaurantID.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	rating := domain.RoundRating(summary.Average)
	if err := s.restaurants.UpdateRating(ctx, restaurantID, rating, summary.Count); err != nil {
		s.logger.Error("rating update failed",
			slog.String("restaurant_id", restaurantID.String()),
			slog.String("error", err.Error()),
		)
	}
}
