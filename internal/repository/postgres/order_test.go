package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickeats/quickeats/internal/domain"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

func newOrder() *domain.Order {
	return &domain.Order{
		UserID:        uuid.New(),
		RestaurantID:  uuid.New(),
		Status:        domain.OrderStatusConfirmed,
		DeliveryType:  domain.DeliveryTypeDelivery,
		PaymentMethod: domain.PaymentMethodCreditCard,
		AddressSnapshot: &domain.AddressSnapshot{
			AddressID: uuid.New(),
			Street:    "Rua Augusta",
			Number:    "100",
			City:      "Sao Paulo",
		},
		Subtotal:    2500,
		DeliveryFee: 300,
		Total:       2800,
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), ProductName: "Margherita", UnitPrice: 1000, Quantity: 2, Total: 2000},
			{ProductID: uuid.New(), ProductName: "Soda", UnitPrice: 500, Quantity: 1, Total: 500},
		},
	}
}

func TestOrderRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(mock)
	order := newOrder()
	orderID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(order.UserID, order.RestaurantID, order.Status, order.DeliveryType,
			order.PaymentMethod, pgxmock.AnyArg(), order.Subtotal, order.DeliveryFee, order.Total).
		WillReturnRows(pgxmock.NewRows([]string{"id", "number", "created_at"}).
			AddRow(orderID, int64(1042), time.Now()))
	for _, item := range order.Items {
		mock.ExpectQuery("INSERT INTO order_items").
			WithArgs(orderID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, item.Total).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	}
	mock.ExpectCommit()
	mock.ExpectRollback()

	require.NoError(t, repo.Create(context.Background(), order))
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, int64(1042), order.Number)
	assert.Equal(t, orderID, order.Items[0].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryCreateRollsBackOnItemFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(mock)
	order := newOrder()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(order.UserID, order.RestaurantID, order.Status, order.DeliveryType,
			order.PaymentMethod, pgxmock.AnyArg(), order.Subtotal, order.DeliveryFee, order.Total).
		WillReturnRows(pgxmock.NewRows([]string{"id", "number", "created_at"}).
			AddRow(uuid.New(), int64(7), time.Now()))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = repo.Create(context.Background(), order)
	assert.ErrorContains(t, err, "insert order item")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepository(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), id)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
