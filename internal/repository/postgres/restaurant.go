package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/repository"
	"github.com/quickeats/quickeats/pkg/database"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// RestaurantRepository is the pgx-backed restaurant catalog.
type RestaurantRepository struct {
	db database.DBTX
}

// NewRestaurantRepository creates a RestaurantRepository.
func NewRestaurantRepository(db database.DBTX) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

const restaurantColumns = `id, name, description, cuisine_type, latitude, longitude, delivery_radius_km, delivery_fee, rating, rating_count, active, created_at, updated_at`

func (r *RestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	restaurant, err := scanRestaurant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("restaurant", id.String())
		}
		return nil, fmt.Errorf("select restaurant: %w", err)
	}
	return restaurant, nil
}

func (r *RestaurantRepository) List(ctx context.Context, params repository.ListParams) ([]domain.Restaurant, int, error) {
	query := `
		SELECT ` + restaurantColumns + `, count(*) OVER() AS total
		FROM restaurants
		WHERE active = TRUE
		ORDER BY rating DESC, name
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, params.PerPage, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("select restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	total := 0
	for rows.Next() {
		var rest domain.Restaurant
		var lat, lng *float64
		if err := rows.Scan(
			&rest.ID, &rest.Name, &rest.Description, &rest.CuisineType,
			&lat, &lng, &rest.DeliveryRadiusKm, &rest.DeliveryFee,
			&rest.Rating, &rest.RatingCount, &rest.Active,
			&rest.CreatedAt, &rest.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan restaurant: %w", err)
		}
		if lat != nil && lng != nil {
			rest.Coordinate = &domain.Coordinate{Latitude: *lat, Longitude: *lng}
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, total, rows.Err()
}

func (r *RestaurantRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64, count int) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE restaurants SET rating = $1, rating_count = $2, updated_at = NOW() WHERE id = $3",
		rating, count, id,
	)
	if err != nil {
		return fmt.Errorf("update restaurant rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("restaurant", id.String())
	}
	return nil
}

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	var lat, lng *float64

	err := row.Scan(
		&rest.ID, &rest.Name, &rest.Description, &rest.CuisineType,
		&lat, &lng, &rest.DeliveryRadiusKm, &rest.DeliveryFee,
		&rest.Rating, &rest.RatingCount, &rest.Active,
		&rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		rest.Coordinate = &domain.Coordinate{Latitude: *lat, Longitude: *lng}
	}
	return &rest, nil
}
