package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/repository"
	"github.com/quickeats/quickeats/pkg/database"
)

// PointsRepository is the pgx-backed loyalty points ledger.
type PointsRepository struct {
	db database.DBTX
}

// NewPointsRepository creates a PointsRepository.
func NewPointsRepository(db database.DBTX) *PointsRepository {
	return &PointsRepository{db: db}
}

// GetAccount returns the user's account, or a zero-balance account when
// none exists yet.
func (r *PointsRepository) GetAccount(ctx context.Context, userID uuid.UUID) (*domain.PointsAccount, error) {
	query := `SELECT user_id, total, expires_at, updated_at FROM points_accounts WHERE user_id = $1`

	var account domain.PointsAccount
	err := r.db.QueryRow(ctx, query, userID).Scan(&account.UserID, &account.Total, &account.ExpiresAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.PointsAccount{UserID: userID}, nil
		}
		return nil, fmt.Errorf("select points account: %w", err)
	}
	return &account, nil
}

// Credit appends a history entry and upserts the denormalized account
// balance in one transaction. GREATEST clamps the stored balance at zero;
// the history entry keeps the requested delta.
func (r *PointsRepository) Credit(ctx context.Context, entry *domain.PointsEntry, expiresAt *time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO points_history (user_id, points, action, reference_id, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		entry.UserID, entry.Points, entry.Action, entry.ReferenceID, entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert points history: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO points_accounts (user_id, total, expires_at, updated_at)
		VALUES ($1, GREATEST($2, 0), $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET total = GREATEST(points_accounts.total + $2, 0),
		    expires_at = COALESCE($3, points_accounts.expires_at),
		    updated_at = NOW()`,
		entry.UserID, entry.Points, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("upsert points account: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PointsRepository) History(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.PointsEntry, int, error) {
	query := `
		SELECT id, user_id, points, action, reference_id, description, created_at, count(*) OVER() AS total
		FROM points_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, params.PerPage, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("select points history: %w", err)
	}
	defer rows.Close()

	var entries []domain.PointsEntry
	total := 0
	for rows.Next() {
		var e domain.PointsEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Points, &e.Action, &e.ReferenceID, &e.Description, &e.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan points entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// ActiveConfig returns the active points configuration, falling back to
// built-in defaults when no row is active.
func (r *PointsRepository) ActiveConfig(ctx context.Context) (domain.PointsConfig, error) {
	query := `
		SELECT id, points_per_order, points_per_review, validity_months, active
		FROM points_config
		WHERE active = TRUE
		ORDER BY created_at DESC
		LIMIT 1`

	var cfg domain.PointsConfig
	err := r.db.QueryRow(ctx, query).Scan(&cfg.ID, &cfg.PointsPerOrder, &cfg.PointsPerReview, &cfg.ValidityMonths, &cfg.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultPointsConfig(), nil
		}
		return domain.PointsConfig{}, fmt.Errorf("select points config: %w", err)
	}
	return cfg, nil
}

func (r *PointsRepository) HasEntryForReference(ctx context.Context, action domain.PointsAction, referenceID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM points_history WHERE action = $1 AND reference_id = $2)",
		action, referenceID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check points entry: %w", err)
	}
	return exists, nil
}
