package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/pkg/database"
)

// ProductRepository is the pgx-backed menu catalog.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a ProductRepository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, restaurant_id, name, description, price, active, created_at, updated_at`

func (r *ProductRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE restaurant_id = $1 AND active = TRUE ORDER BY name`

	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.RestaurantID, &p.Name, &p.Description, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByIDs returns the active products among ids keyed by id string. Ids
// with no matching active product are absent from the map.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[string]domain.Product, error) {
	catalog := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return catalog, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) AND active = TRUE`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("select products by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.RestaurantID, &p.Name, &p.Description, &p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		catalog[p.ID.String()] = p
	}
	return catalog, rows.Err()
}
