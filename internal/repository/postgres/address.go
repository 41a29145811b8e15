package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/pkg/database"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// AddressRepository is the pgx-backed address store.
type AddressRepository struct {
	db database.DBTX
}

// NewAddressRepository creates an AddressRepository.
func NewAddressRepository(db database.DBTX) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) Create(ctx context.Context, address *domain.Address) error {
	query := `
		INSERT INTO addresses (user_id, label, street, number, complement, neighborhood, city, state, zip_code, latitude, longitude, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	var lat, lng *float64
	if address.Coordinate != nil {
		lat = &address.Coordinate.Latitude
		lng = &address.Coordinate.Longitude
	}

	err := r.db.QueryRow(ctx, query,
		address.UserID, address.Label, address.Street, address.Number,
		address.Complement, address.Neighborhood, address.City, address.State,
		address.ZipCode, lat, lng, address.IsDefault,
	).Scan(&address.ID, &address.CreatedAt, &address.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

func (r *AddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	query := `
		SELECT id, user_id, label, street, number, complement, neighborhood, city, state, zip_code, latitude, longitude, is_default, created_at, updated_at
		FROM addresses
		WHERE id = $1`

	address, err := scanAddress(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("address", id.String())
		}
		return nil, fmt.Errorf("select address: %w", err)
	}
	return address, nil
}

func (r *AddressRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	query := `
		SELECT id, user_id, label, street, number, complement, neighborhood, city, state, zip_code, latitude, longitude, is_default, created_at, updated_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, *address)
	}
	return addresses, rows.Err()
}

func (r *AddressRepository) Update(ctx context.Context, address *domain.Address) error {
	query := `
		UPDATE addresses
		SET label = $1, street = $2, number = $3, complement = $4, neighborhood = $5,
		    city = $6, state = $7, zip_code = $8, latitude = $9, longitude = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING updated_at`

	var lat, lng *float64
	if address.Coordinate != nil {
		lat = &address.Coordinate.Latitude
		lng = &address.Coordinate.Longitude
	}

	err := r.db.QueryRow(ctx, query,
		address.Label, address.Street, address.Number, address.Complement,
		address.Neighborhood, address.City, address.State, address.ZipCode,
		lat, lng, address.ID,
	).Scan(&address.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("address", address.ID.String())
		}
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM addresses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("address", id.String())
	}
	return nil
}

// SetDefault clears the user's current default and marks the given address
// inside a single transaction, keeping the at-most-one-default invariant.
func (r *AddressRepository) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"UPDATE addresses SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_default = TRUE",
		userID,
	); err != nil {
		return fmt.Errorf("clear default address: %w", err)
	}

	tag, err := tx.Exec(ctx,
		"UPDATE addresses SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2",
		addressID, userID,
	)
	if err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("address", addressID.String())
	}

	return tx.Commit(ctx)
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	var lat, lng *float64

	err := row.Scan(
		&a.ID, &a.UserID, &a.Label, &a.Street, &a.Number, &a.Complement,
		&a.Neighborhood, &a.City, &a.State, &a.ZipCode, &lat, &lng,
		&a.IsDefault, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		a.Coordinate = &domain.Coordinate{Latitude: *lat, Longitude: *lng}
	}
	return &a, nil
}
