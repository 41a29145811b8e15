package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/repository"
	"github.com/quickeats/quickeats/pkg/database"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// OrderRepository is the pgx-backed order store.
type OrderRepository struct {
	db database.DBTX
}

// NewOrderRepository creates an OrderRepository.
func NewOrderRepository(db database.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order and its items in one transaction. The order
// number comes from the order_number_seq sequence, so it is monotonic and
// never reused even if the transaction rolls back.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var snapshot []byte
	if order.AddressSnapshot != nil {
		snapshot, err = json.Marshal(order.AddressSnapshot)
		if err != nil {
			return fmt.Errorf("marshal address snapshot: %w", err)
		}
	}

	query := `
		INSERT INTO orders (number, user_id, restaurant_id, status, delivery_type, payment_method, address_snapshot, subtotal, delivery_fee, total)
		VALUES (nextval('order_number_seq'), $1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, number, created_at`

	err = tx.QueryRow(ctx, query,
		order.UserID, order.RestaurantID, order.Status, order.DeliveryType,
		order.PaymentMethod, snapshot, order.Subtotal, order.DeliveryFee, order.Total,
	).Scan(&order.ID, &order.Number, &order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, total)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			item.OrderID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, item.Total,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

const orderColumns = `id, number, user_id, restaurant_id, status, delivery_type, payment_method, address_snapshot, subtotal, delivery_fee, total, created_at`

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id.String())
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	items, err := r.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *OrderRepository) ListByUserID(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.Order, int, error) {
	query := `
		SELECT ` + orderColumns + `, count(*) OVER() AS total
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, params.PerPage, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	total := 0
	for rows.Next() {
		var o domain.Order
		var snapshot []byte
		if err := rows.Scan(
			&o.ID, &o.Number, &o.UserID, &o.RestaurantID, &o.Status,
			&o.DeliveryType, &o.PaymentMethod, &snapshot,
			&o.Subtotal, &o.DeliveryFee, &o.Total, &o.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		if err := unmarshalSnapshot(snapshot, &o); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// ListMissingPointsCredit finds confirmed orders that never received their
// points credit, oldest first. Feeds the reconciliation loop.
func (r *OrderRepository) ListMissingPointsCredit(ctx context.Context, limit int) ([]domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.status <> 'cancelled'
		  AND NOT EXISTS (
			SELECT 1 FROM points_history h
			WHERE h.action = 'order' AND h.reference_id = o.id
		  )
		ORDER BY o.created_at
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("select orders missing points credit: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var snapshot []byte
		if err := rows.Scan(
			&o.ID, &o.Number, &o.UserID, &o.RestaurantID, &o.Status,
			&o.DeliveryType, &o.PaymentMethod, &snapshot,
			&o.Subtotal, &o.DeliveryFee, &o.Total, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if err := unmarshalSnapshot(snapshot, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, total
		FROM order_items
		WHERE order_id = $1
		ORDER BY product_name`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity, &item.Total); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var snapshot []byte

	err := row.Scan(
		&o.ID, &o.Number, &o.UserID, &o.RestaurantID, &o.Status,
		&o.DeliveryType, &o.PaymentMethod, &snapshot,
		&o.Subtotal, &o.DeliveryFee, &o.Total, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalSnapshot(snapshot, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func unmarshalSnapshot(data []byte, o *domain.Order) error {
	if len(data) == 0 {
		return nil
	}
	var snap domain.AddressSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("unmarshal address snapshot: %w", err)
	}
	o.AddressSnapshot = &snap
	return nil
}
