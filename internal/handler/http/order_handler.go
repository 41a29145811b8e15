package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/internal/service"
	"github.com/quickeats/quickeats/pkg/httputil"
	"github.com/quickeats/quickeats/pkg/validator"
)

// OrderHandler serves settlement and order history endpoints.
type OrderHandler struct {
	settlement *service.SettlementService
	logger     *slog.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(settlement *service.SettlementService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{settlement: settlement, logger: logger}
}

type confirmOrderRequest struct {
	DeliveryType  string  `json:"delivery_type" validate:"required,oneof=delivery pickup"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=credit_card debit_card cash pix"`
	AddressID     *string `json:"address_id" validate:"omitempty,uuid"`
}

// Confirm settles the user's cart into an order.
func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req confirmOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := service.SettlementInput{
		UserID:        uid,
		DeliveryType:  domain.DeliveryType(req.DeliveryType),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	}
	if req.AddressID != nil {
		addressID, ok := httputil.ParseUUID(w, *req.AddressID)
		if !ok {
			return
		}
		input.AddressID = &addressID
	}

	confirmation, err := h.settlement.ConfirmOrder(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: confirmation})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	orderID, ok := httputil.ParseUUID(w, chi.URLParam(r, "orderID"))
	if !ok {
		return
	}

	order, err := h.settlement.GetOrder(r.Context(), uid, orderID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	params := listParams(r)
	orders, total, err := h.settlement.ListOrders(r.Context(), uid, params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(orders, total, params.Page, params.PerPage))
}

// ReconcilePoints retries missing points credits. Operator endpoint.
func (h *OrderHandler) ReconcilePoints(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	credited, err := h.settlement.ReconcilePoints(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]int{"credited": credited}})
}

// MissingCredits lists settled orders still awaiting points. Operator
// endpoint.
func (h *OrderHandler) MissingCredits(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	orders, err := h.settlement.MissingCredits(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}
