package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/repository"
	"github.com/quickeats/quickeats/internal/service"
	"github.com/quickeats/quickeats/pkg/httputil"
)

// RestaurantHandler serves the restaurant catalog and delivery
// eligibility endpoints.
type RestaurantHandler struct {
	restaurants repository.RestaurantRepository
	products    repository.ProductRepository
	addresses   *service.AddressService
	eligibility *service.EligibilityService
	reviews     *service.ReviewService
	logger      *slog.Logger
}

// NewRestaurantHandler creates a RestaurantHandler.
func NewRestaurantHandler(
	restaurants repository.RestaurantRepository,
	products repository.ProductRepository,
	addresses *service.AddressService,
	eligibility *service.EligibilityService,
	reviews *service.ReviewService,
	logger *slog.Logger,
) *RestaurantHandler {
	return &RestaurantHandler{
		restaurants: restaurants,
		products:    products,
		addresses:   addresses,
		eligibility: eligibility,
		reviews:     reviews,
		logger:      logger,
	}
}

// List returns the active restaurants. When address_id is given, every
// row is annotated with delivery eligibility for that address.
func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	params := listParams(r)
	restaurants, total, err := h.restaurants.List(r.Context(), params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	rawAddressID := r.URL.Query().Get("address_id")
	if rawAddressID == "" {
		httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(restaurants, total, params.Page, params.PerPage))
		return
	}

	uid, ok := userID(w, r)
	if !ok {
		return
	}
	addressID, ok := httputil.ParseUUID(w, rawAddressID)
	if !ok {
		return
	}

	address, err := h.addresses.Get(r.Context(), uid, addressID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	screened := h.eligibility.ScreenRestaurants(r.Context(), address, restaurants)
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(screened, total, params.Page, params.PerPage))
}

func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := httputil.ParseUUID(w, chi.URLParam(r, "restaurantID"))
	if !ok {
		return
	}

	restaurant, err := h.restaurants.GetByID(r.Context(), restaurantID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: restaurant})
}

func (h *RestaurantHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := httputil.ParseUUID(w, chi.URLParam(r, "restaurantID"))
	if !ok {
		return
	}

	products, err := h.products.ListByRestaurant(r.Context(), restaurantID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

func (h *RestaurantHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	restaurantID, ok := httputil.ParseUUID(w, chi.URLParam(r, "restaurantID"))
	if !ok {
		return
	}

	params := listParams(r)
	reviews, total, err := h.reviews.ListByRestaurant(r.Context(), restaurantID, params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(reviews, total, params.Page, params.PerPage))
}

// eligibleAddressesResponse lists which of the user's addresses the
// restaurant delivers to and which one checkout should preselect.
type eligibleAddressesResponse struct {
	Eligible []domain.Address `json:"eligible"`
	Best     *domain.Address  `json:"best,omitempty"`
}

// EligibleAddresses filters the user's addresses against the restaurant's
// delivery radius. The best address is the eligible default, or the first
// eligible one.
func (h *RestaurantHandler) EligibleAddresses(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	restaurantID, ok := httputil.ParseUUID(w, chi.URLParam(r, "restaurantID"))
	if !ok {
		return
	}

	restaurant, err := h.restaurants.GetByID(r.Context(), restaurantID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	addresses, err := h.addresses.List(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := eligibleAddressesResponse{
		Eligible: h.eligibility.FilterEligible(restaurant, addresses),
		Best:     h.eligibility.SelectBestAddress(restaurant, addresses),
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}
