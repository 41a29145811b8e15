package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickeats/quickeats/internal/domain"
)

func TestPointsRepositoryCredit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPointsRepository(mock)
	userID := uuid.New()
	orderID := uuid.New()
	expiresAt := time.Now().AddDate(1, 0, 0)

	entry := &domain.PointsEntry{
		UserID:      userID,
		Points:      10,
		Action:      domain.PointsActionOrder,
		ReferenceID: &orderID,
		Description: "order settled",
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO points_history").
		WithArgs(userID, 10, domain.PointsActionOrder, &orderID, "order settled").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))
	mock.ExpectExec("INSERT INTO points_accounts").
		WithArgs(userID, 10, &expiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	require.NoError(t, repo.Credit(context.Background(), entry, &expiresAt))
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointsRepositoryCreditRollsBackOnAccountFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPointsRepository(mock)
	userID := uuid.New()

	entry := &domain.PointsEntry{UserID: userID, Points: 10, Action: domain.PointsActionOrder}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO points_history").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))
	mock.ExpectExec("INSERT INTO points_accounts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = repo.Credit(context.Background(), entry, nil)
	assert.ErrorContains(t, err, "upsert points account")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointsRepositoryGetAccountAbsentIsZero(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPointsRepository(mock)
	userID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM points_accounts").
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	account, err := repo.GetAccount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, account.UserID)
	assert.Zero(t, account.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointsRepositoryActiveConfigFallsBackToDefaults(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPointsRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM points_config").
		WillReturnError(pgx.ErrNoRows)

	cfg, err := repo.ActiveConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPointsConfig(), cfg)
	assert.NoError(t, mock.ExpectationsWereMet())
}
