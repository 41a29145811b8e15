package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/event"
	"github.com/quickeats/quickeats/internal/repository"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// PointsService manages the loyalty points ledger: an append-only history
// plus a denormalized per-user balance that never drops below zero.
type PointsService struct {
	points   repository.PointsRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewPointsService creates a PointsService.
func NewPointsService(points repository.PointsRepository, producer *event.Producer, logger *slog.Logger) *PointsService {
	return &PointsService{points: points, producer: producer, logger: logger}
}

// Credit appends a ledger entry and updates the balance. Negative deltas
// are only valid for expiration entries; the stored balance clamps at
// zero while the history keeps the full requested delta.
func (s *PointsService) Credit(ctx context.Context, userID uuid.UUID, points int, action domain.PointsAction, referenceID *uuid.UUID, description string) (*domain.PointsEntry, error) {
	if !action.Valid() {
		return nil, apperrors.InvalidInput("unknown points action: " + string(action))
	}
	if points == 0 {
		return nil, apperrors.InvalidInput("points delta must not be zero")
	}
	if points < 0 && action != domain.PointsActionExpiration {
		return nil, apperrors.InvalidInput("negative points are only valid for expiration")
	}

	entry := &domain.PointsEntry{
		UserID:      userID,
		Points:      points,
		Action:      action,
		ReferenceID: referenceID,
		Description: description,
	}

	// Earning refreshes the balance validity window.
	var expiresAt *time.Time
	if points > 0 {
		cfg, err := s.points.ActiveConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load points config: %w", err)
		}
		t := time.Now().UTC().AddDate(0, cfg.ValidityMonths, 0)
		expiresAt = &t
	}

	if err := s.points.Credit(ctx, entry, expiresAt); err != nil {
		return nil, fmt.Errorf("credit points: %w", err)
	}

	s.producer.PointsCredited(ctx, entry)
	return entry, nil
}

// CreditOrderPoints credits the configured per-order points for a settled
// order. Returns 0 without error when the configuration grants no points.
func (s *PointsService) CreditOrderPoints(ctx context.Context, order *domain.Order) (int, error) {
	cfg, err := s.points.ActiveConfig(ctx)
	if err != nil {
		return 0, fmt.Errorf("load points config: %w", err)
	}
	if cfg.PointsPerOrder <= 0 {
		return 0, nil
	}

	orderID := order.ID
	_, err = s.Credit(ctx, order.UserID, cfg.PointsPerOrder, domain.PointsActionOrder, &orderID,
		fmt.Sprintf("order #%d", order.Number))
	if err != nil {
		return 0, err
	}
	return cfg.PointsPerOrder, nil
}

// CreditReviewPoints credits the configured per-review points.
func (s *PointsService) CreditReviewPoints(ctx context.Context, review *domain.Review) (int, error) {
	cfg, err := s.points.ActiveConfig(ctx)
	if err != nil {
		return 0, fmt.Errorf("load points config: %w", err)
	}
	if cfg.PointsPerReview <= 0 {
		return 0, nil
	}

	reviewID := review.ID
	_, err = s.Credit(ctx, review.UserID, cfg.PointsPerReview, domain.PointsActionReview, &reviewID, "order review")
	if err != nil {
		return 0, err
	}
	return cfg.PointsPerReview, nil
}

// Config returns the active points configuration.
func (s *PointsService) Config(ctx context.Context) (domain.PointsConfig, error) {
	return s.points.ActiveConfig(ctx)
}

// HasOrderCredit reports whether the order already has a ledger entry.
func (s *PointsService) HasOrderCredit(ctx context.Context, orderID uuid.UUID) (bool, error) {
	return s.points.HasEntryForReference(ctx, domain.PointsActionOrder, orderID)
}

// Balance returns the user's current balance, 0 for users with no account.
func (s *PointsService) Balance(ctx context.Context, userID uuid.UUID) (*domain.PointsAccount, error) {
	account, err := s.points.GetAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load points account: %w", err)
	}
	return account, nil
}

// History returns the user's ledger entries, newest first.
func (s *PointsService) History(ctx context.Context, userID uuid.UUID, params repository.ListParams) ([]domain.PointsEntry, int, error) {
	entries, total, err := s.points.History(ctx, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("load points history: %w", err)
	}
	return entries, total, nil
}
