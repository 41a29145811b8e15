package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quickeats/quickeats/internal/domain"
)

var eligibilityChecks = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "eligibility_checks_total",
		Help: "Delivery eligibility checks by outcome",
	},
	[]string{"outcome"},
)

// EligibilityService decides whether a restaurant delivers to an address.
// All checks are pure distance math; missing coordinates on either side
// mean "not eligible", never an error.
type EligibilityService struct {
	logger *slog.Logger
}

// NewEligibilityService creates an EligibilityService.
func NewEligibilityService(logger *slog.Logger) *EligibilityService {
	return &EligibilityService{logger: logger}
}

// IsEligible reports whether the restaurant delivers to the address. The
// boundary is inclusive: an address exactly at the delivery radius is
// eligible. The comparison uses the full-precision distance.
func (s *EligibilityService) IsEligible(restaurant *domain.Restaurant, address *domain.Address) bool {
	eligible, _ := s.check(restaurant, address)
	return eligible
}

// check returns eligibility and the computed distance. The distance is
// only meaningful when both coordinates are present and valid.
func (s *EligibilityService) check(restaurant *domain.Restaurant, address *domain.Address) (bool, float64) {
	if restaurant == nil || restaurant.Coordinate == nil || address == nil || address.Coordinate == nil {
		eligibilityChecks.WithLabelValues("unknown_location").Inc()
		return false, 0
	}

	distance, err := restaurant.Coordinate.Distance(*address.Coordinate)
	if err != nil {
		s.logger.Warn("eligibility check with invalid coordinates",
			slog.String("restaurant_id", restaurant.ID.String()),
			slog.String("address_id", address.ID.String()),
			slog.String("error", err.Error()),
		)
		eligibilityChecks.WithLabelValues("invalid_coordinates").Inc()
		return false, 0
	}

	if distance <= restaurant.DeliveryRadiusKm {
		eligibilityChecks.WithLabelValues("eligible").Inc()
		return true, distance
	}
	eligibilityChecks.WithLabelValues("not_eligible").Inc()
	return false, distance
}

// FilterEligible returns the addresses the restaurant delivers to,
// preserving input order.
func (s *EligibilityService) FilterEligible(restaurant *domain.Restaurant, addresses []domain.Address) []domain.Address {
	eligible := make([]domain.Address, 0, len(addresses))
	for i := range addresses {
		if s.IsEligible(restaurant, &addresses[i]) {
			eligible = append(eligible, addresses[i])
		}
	}
	return eligible
}

// SelectBestAddress picks the address to preselect at checkout: the user's
// default address if eligible, otherwise the first eligible address in the
// given order, otherwise nil.
func (s *EligibilityService) SelectBestAddress(restaurant *domain.Restaurant, addresses []domain.Address) *domain.Address {
	var first *domain.Address
	for i := range addresses {
		if !s.IsEligible(restaurant, &addresses[i]) {
			continue
		}
		if addresses[i].IsDefault {
			return &addresses[i]
		}
		if first == nil {
			first = &addresses[i]
		}
	}
	return first
}

// RestaurantEligibility is one row of a storefront screening result.
// DistanceKm is rounded for display and 0 when not computable.
type RestaurantEligibility struct {
	Restaurant domain.Restaurant `json:"restaurant"`
	Eligible   bool              `json:"eligible"`
	DistanceKm float64           `json:"distance_km"`
}

// ScreenRestaurants checks every restaurant against the address in
// parallel. Results keep the input order regardless of completion order.
func (s *EligibilityService) ScreenRestaurants(ctx context.Context, address *domain.Address, restaurants []domain.Restaurant) []RestaurantEligibility {
	results := make([]RestaurantEligibility, len(restaurants))

	var wg sync.WaitGroup
	for i := range restaurants {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			eligible, distance := s.check(&restaurants[i], address)
			results[i] = RestaurantEligibility{
				Restaurant: restaurants[i],
				Eligible:   eligible,
				DistanceKm: domain.RoundKm(distance),
			}
		}(i)
	}
	wg.Wait()

	return results
}
