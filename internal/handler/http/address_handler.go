package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickeats/quickeats/internal/service"
	"github.com/quickeats/quickeats/pkg/httputil"
	"github.com/quickeats/quickeats/pkg/validator"
)

// AddressHandler serves the address CRUD endpoints.
type AddressHandler struct {
	addresses *service.AddressService
	logger    *slog.Logger
}

// NewAddressHandler creates an AddressHandler.
func NewAddressHandler(addresses *service.AddressService, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{addresses: addresses, logger: logger}
}

type addressRequest struct {
	Label        string `json:"label" validate:"required,max=50"`
	Street       string `json:"street" validate:"required,max=200"`
	Number       string `json:"number" validate:"required,max=20"`
	Complement   string `json:"complement" validate:"max=100"`
	Neighborhood string `json:"neighborhood" validate:"required,max=100"`
	City         string `json:"city" validate:"required,max=100"`
	State        string `json:"state" validate:"required,len=2"`
	ZipCode      string `json:"zip_code" validate:"required,max=20"`
	IsDefault    bool   `json:"is_default"`
}

func (req addressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Label:        req.Label,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		IsDefault:    req.IsDefault,
	}
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	address, err := h.addresses.Create(r.Context(), uid, req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: address})
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	addresses, err := h.addresses.List(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}

func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	addressID, ok := httputil.ParseUUID(w, chi.URLParam(r, "addressID"))
	if !ok {
		return
	}

	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	address, err := h.addresses.Update(r.Context(), uid, addressID, req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: address})
}

func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	addressID, ok := httputil.ParseUUID(w, chi.URLParam(r, "addressID"))
	if !ok {
		return
	}

	if err := h.addresses.Delete(r.Context(), uid, addressID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	addressID, ok := httputil.ParseUUID(w, chi.URLParam(r, "addressID"))
	if !ok {
		return
	}

	if err := h.addresses.SetDefault(r.Context(), uid, addressID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
