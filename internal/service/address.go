package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/geocode"
	"github.com/quickeats/quickeats/internal/repository"
	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// AddressService manages user delivery addresses. Geocoding is best
// effort: an address whose coordinates cannot be resolved is saved
// without them and simply never passes eligibility checks.
type AddressService struct {
	addresses repository.AddressRepository
	resolver  geocode.Resolver
	logger    *slog.Logger
}

// NewAddressService creates an AddressService. resolver may be nil, in
// which case addresses are stored without coordinates.
func NewAddressService(addresses repository.AddressRepository, resolver geocode.Resolver, logger *slog.Logger) *AddressService {
	return &AddressService{addresses: addresses, resolver: resolver, logger: logger}
}

// AddressInput carries the user-editable address fields.
type AddressInput struct {
	Label        string
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
	IsDefault    bool
}

// Create stores a new address for the user. The user's first address
// becomes the default automatically.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, input AddressInput) (*domain.Address, error) {
	existing, err := s.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	address := &domain.Address{
		UserID:       userID,
		Label:        input.Label,
		Street:       input.Street,
		Number:       input.Number,
		Complement:   input.Complement,
		Neighborhood: input.Neighborhood,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.ZipCode,
	}
	address.Coordinate = s.resolve(ctx, address)

	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	if input.IsDefault || len(existing) == 0 {
		if err := s.addresses.SetDefault(ctx, userID, address.ID); err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
		address.IsDefault = true
	}
	return address, nil
}

// Update edits an address and re-resolves its coordinates.
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, input AddressInput) (*domain.Address, error) {
	address, err := s.owned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Label = input.Label
	address.Street = input.Street
	address.Number = input.Number
	address.Complement = input.Complement
	address.Neighborhood = input.Neighborhood
	address.City = input.City
	address.State = input.State
	address.ZipCode = input.ZipCode
	address.Coordinate = s.resolve(ctx, address)

	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.addresses.SetDefault(ctx, userID, address.ID); err != nil {
			return nil, fmt.Errorf("set default address: %w", err)
		}
		address.IsDefault = true
	}
	return address, nil
}

// Get loads one of the user's addresses.
func (s *AddressService) Get(ctx context.Context, userID, addressID uuid.UUID) (*domain.Address, error) {
	return s.owned(ctx, userID, addressID)
}

// List returns the user's addresses, default first.
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	addresses, err := s.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// Delete removes an address.
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, addressID); err != nil {
		return err
	}
	if err := s.addresses.Delete(ctx, addressID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

// SetDefault marks the address as the user's default, atomically clearing
// the previous one.
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.addresses.SetDefault(ctx, userID, addressID); err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	return nil
}

// owned loads the address and enforces ownership.
func (s *AddressService) owned(ctx context.Context, userID, addressID uuid.UUID) (*domain.Address, error) {
	address, err := s.addresses.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, apperrors.NotFound("address", addressID.String())
	}
	return address, nil
}

// resolve geocodes the address, returning nil when resolution fails.
func (s *AddressService) resolve(ctx context.Context, address *domain.Address) *domain.Coordinate {
	if s.resolver == nil {
		return nil
	}

	query := geocodeQuery(address)
	coord, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		if !errors.Is(err, geocode.ErrUnresolved) {
			s.logger.Warn("unexpected geocode failure", slog.String("error", err.Error()))
		}
		s.logger.Info("address saved without coordinates",
			slog.String("user_id", address.UserID.String()),
			slog.String("query", query),
		)
		return nil
	}
	return &coord
}

func geocodeQuery(address *domain.Address) string {
	parts := make([]string, 0, 5)
	for _, part := range []string{
		strings.TrimSpace(address.Street + " " + address.Number),
		address.Neighborhood,
		address.City,
		address.State,
		address.ZipCode,
	} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
