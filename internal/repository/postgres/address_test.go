package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

func TestAddressRepositorySetDefault(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAddressRepository(mock)
	userID := uuid.New()
	addressID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE addresses SET is_default = FALSE").
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE addresses SET is_default = TRUE").
		WithArgs(addressID, userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	require.NoError(t, repo.SetDefault(context.Background(), userID, addressID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepositorySetDefaultUnknownAddress(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAddressRepository(mock)
	userID := uuid.New()
	addressID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE addresses SET is_default = FALSE").
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec("UPDATE addresses SET is_default = TRUE").
		WithArgs(addressID, userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.SetDefault(context.Background(), userID, addressID)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddressRepositoryDeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAddressRepository(mock)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM addresses").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = repo.Delete(context.Background(), id)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
