// Package geocode resolves postal addresses to coordinates through an
// external geocoding provider. Resolution is best effort: callers must
// treat ErrUnresolved as "coordinates unavailable", never as fatal.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/quickeats/quickeats/internal/domain"
	"github.com/quickeats/quickeats/pkg/httpclient"
)

// ErrUnresolved means the provider could not produce coordinates for the
// query: timeout, open circuit, provider error, or no match.
var ErrUnresolved = errors.New("coordinates unavailable")

// Resolver turns a free-text address query into a coordinate.
type Resolver interface {
	Resolve(ctx context.Context, query string) (domain.Coordinate, error)
}

// Config holds resolver configuration.
type Config struct {
	BaseURL string
	// Timeout bounds each provider call.
	Timeout time.Duration
	// MinInterval is the minimum delay between provider calls. Public
	// geocoding providers enforce per-client rate limits.
	MinInterval time.Duration
	UserAgent   string
}

// HTTPResolver resolves addresses against a Nominatim-style search API
// through a circuit-broken HTTP client.
type HTTPResolver struct {
	client  *httpclient.CircuitBreakerClient
	cfg     Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewHTTPResolver creates an HTTPResolver.
func NewHTTPResolver(client *httpclient.CircuitBreakerClient, cfg Config, logger *slog.Logger) *HTTPResolver {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.MinInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
	}
	return &HTTPResolver{client: client, cfg: cfg, limiter: limiter, logger: logger}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve queries the provider for the address. Every failure path maps to
// ErrUnresolved so callers degrade instead of propagating provider faults.
func (r *HTTPResolver) Resolve(ctx context.Context, query string) (domain.Coordinate, error) {
	if err := r.throttle(ctx); err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %s", ErrUnresolved, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", r.cfg.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: build request: %s", ErrUnresolved, err)
	}
	if r.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", r.cfg.UserAgent)
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		r.logger.Warn("geocode request failed", slog.String("error", err.Error()))
		return domain.Coordinate{}, fmt.Errorf("%w: %s", ErrUnresolved, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("%w: provider status %d", ErrUnresolved, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: decode response: %s", ErrUnresolved, err)
	}
	if len(results) == 0 {
		return domain.Coordinate{}, fmt.Errorf("%w: no match for query", ErrUnresolved)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: parse latitude: %s", ErrUnresolved, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: parse longitude: %s", ErrUnresolved, err)
	}

	coord := domain.Coordinate{Latitude: lat, Longitude: lng}
	if err := coord.Validate(); err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %s", ErrUnresolved, err)
	}
	return coord, nil
}

// throttle enforces the minimum interval between provider calls. A caller
// cancelled while waiting returns its reservation, so it does not delay
// the callers behind it.
func (r *HTTPResolver) throttle(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
