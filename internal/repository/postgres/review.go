package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/repository"
	"github.com/quickeats/quickeats/pkg/database"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// uniqueViolation is the Postgres error code for unique constraint breaks.
const uniqueViolation = "23505"

// ReviewRepository is the pgx-backed review store.
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a ReviewRepository.
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO order_reviews (order_id, user_id, restaurant_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		review.OrderID, review.UserID, review.RestaurantID, review.Rating, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.AlreadyExists("review", "order_id", review.OrderID.String())
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Review, error) {
	query := `
		SELECT id, order_id, user_id, restaurant_id, rating, comment, created_at
		FROM order_reviews
		WHERE order_id = $1`

	var review domain.Review
	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&review.ID, &review.OrderID, &review.UserID, &review.RestaurantID,
		&review.Rating, &review.Comment, &review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", orderID.String())
		}
		return nil, fmt.Errorf("select review: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, params repository.ListParams) ([]domain.Review, int, error) {
	query := `
		SELECT id, order_id, user_id, restaurant_id, rating, comment, created_at, count(*) OVER() AS total
		FROM order_reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, restaurantID, params.PerPage, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	total := 0
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.OrderID, &rev.UserID, &rev.RestaurantID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, total, rows.Err()
}

// RatingSummary averages the restaurant's reviews. COALESCE keeps the
// average at 0 for restaurants with no reviews.
func (r *ReviewRepository) RatingSummary(ctx context.Context, restaurantID uuid.UUID) (domain.RatingSummary, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM order_reviews
		WHERE restaurant_id = $1`

	var summary domain.RatingSummary
	err := r.db.QueryRow(ctx, query, restaurantID).Scan(&summary.Average, &summary.Count)
	if err != nil {
		return domain.RatingSummary{}, fmt.Errorf("select rating summary: %w", err)
	}
	return summary, nil
}
