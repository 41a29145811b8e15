// Package http exposes the service over a chi REST API. The caller's
// identity comes from the X-User-ID header set by the edge gateway after
// authentication.
package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/quickeats/quickeats/internal/repository"
	"github.com/quickeats/quickeats/pkg/httputil"
)

const userIDHeader = "X-User-ID"

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// userID extracts the authenticated user from the request. On failure it
// writes a 401 and returns false.
func userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "missing user identity"},
		})
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid user identity"},
		})
		return uuid.Nil, false
	}
	return id, true
}

// listParams reads page/per_page query parameters with bounded defaults.
func listParams(r *http.Request) repository.ListParams {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return repository.ListParams{Page: page, PerPage: perPage}
}
