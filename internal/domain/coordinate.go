package domain

import (
	"fmt"
	"math"
	"net/http"

	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate lies within valid WGS84 ranges.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return invalidCoordinate("coordinate must not be NaN")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return invalidCoordinate(fmt.Sprintf("latitude %v out of range [-90, 90]", c.Latitude))
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return invalidCoordinate(fmt.Sprintf("longitude %v out of range [-180, 180]", c.Longitude))
	}
	return nil
}

func invalidCoordinate(message string) error {
	return &apperrors.AppError{
		Code:    "INVALID_COORDINATE",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     apperrors.ErrInvalidInput,
	}
}

// Distance returns the great-circle distance in kilometers between two
// coordinates using the haversine formula. Both coordinates must be valid.
func (c Coordinate) Distance(other Coordinate) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if err := other.Validate(); err != nil {
		return 0, err
	}

	lat1 := toRadians(c.Latitude)
	lat2 := toRadians(other.Latitude)
	dLat := toRadians(other.Latitude - c.Latitude)
	dLon := toRadians(other.Longitude - c.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	angle := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * angle, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RoundKm rounds a distance to two decimal places for display.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
