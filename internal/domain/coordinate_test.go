package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/quickeats/quickeats/pkg/errors"
)

func TestCoordinateValidate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"origin", Coordinate{0, 0}, false},
		{"north pole", Coordinate{90, 0}, false},
		{"south pole", Coordinate{-90, 0}, false},
		{"date line east", Coordinate{0, 180}, false},
		{"date line west", Coordinate{0, -180}, false},
		{"latitude too high", Coordinate{90.01, 0}, true},
		{"latitude too low", Coordinate{-91, 0}, true},
		{"longitude too high", Coordinate{0, 180.5}, true},
		{"longitude too low", Coordinate{0, -181}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDistanceZeroForSamePoint(t *testing.T) {
	p := Coordinate{Latitude: -23.5505, Longitude: -46.6333}

	d, err := p.Distance(p)
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestDistanceSymmetry(t *testing.T) {
	a := Coordinate{Latitude: -23.5505, Longitude: -46.6333}
	b := Coordinate{Latitude: -22.9068, Longitude: -43.1729}

	d1, err := a.Distance(b)
	require.NoError(t, err)
	d2, err := b.Distance(a)
	require.NoError(t, err)

	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceKnownValues(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Coordinate
		wantKm float64
		delta  float64
	}{
		// 0.03 degrees of longitude at the equator is about 3.3 km.
		{"short hop on equator", Coordinate{0, 0}, Coordinate{0, 0.03}, 3.34, 0.05},
		{"longer hop on equator", Coordinate{0, 0}, Coordinate{0, 0.06}, 6.67, 0.05},
		// Sao Paulo to Rio de Janeiro is roughly 360 km.
		{"sao paulo to rio", Coordinate{-23.5505, -46.6333}, Coordinate{-22.9068, -43.1729}, 360.75, 1.0},
		{"one degree of latitude", Coordinate{0, 0}, Coordinate{1, 0}, 111.19, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.a.Distance(tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantKm, d, tt.delta)
		})
	}
}

func TestDistanceInvalidCoordinate(t *testing.T) {
	valid := Coordinate{0, 0}
	invalid := Coordinate{Latitude: 120, Longitude: 0}

	_, err := valid.Distance(invalid)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = invalid.Distance(valid)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 3.34, RoundKm(3.336))
	assert.Equal(t, 3.33, RoundKm(3.3349))
	assert.Equal(t, 6.67, RoundKm(6.6726))
	assert.Equal(t, 0.0, RoundKm(0))
}
