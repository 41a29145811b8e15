package http

import (
	"log/slog"
	"net/http"

	"github.com/quickeats/quickeats/internal/service"
	"github.com/quickeats/quickeats/pkg/httputil"
)

// PointsHandler serves the loyalty points endpoints.
type PointsHandler struct {
	points *service.PointsService
	logger *slog.Logger
}

// NewPointsHandler creates a PointsHandler.
func NewPointsHandler(points *service.PointsService, logger *slog.Logger) *PointsHandler {
	return &PointsHandler{points: points, logger: logger}
}

func (h *PointsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	account, err := h.points.Balance(r.Context(), uid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: account})
}

func (h *PointsHandler) History(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	params := listParams(r)
	entries, total, err := h.points.History(r.Context(), uid, params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(entries, total, params.Page, params.PerPage))
}
