package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/service"
	"github.com/quickeats/quickeats/pkg/httputil"
	"github.com/quickeats/quickeats/pkg/validator"
)

// CartHandler serves the cart endpoints.
type CartHandler struct {
	carts  *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a CartHandler.
func NewCartHandler(carts *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	productID, ok := httputil.ParseUUID(w, req.ProductID)
	if !ok {
		return
	}

	cart, err := h.carts.AddItem(r.Context(), uid, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), uid, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// Summary prices the cart. delivery_type defaults to delivery.
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	deliveryType := domain.DeliveryType(r.URL.Query().Get("delivery_type"))
	if deliveryType == "" {
		deliveryType = domain.DeliveryTypeDelivery
	}
	if !deliveryType.Valid() {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "unknown delivery type"},
		})
		return
	}

	summary, err := h.carts.Summary(r.Context(), uid, deliveryType)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.carts.Clear(r.Context(), uid); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
