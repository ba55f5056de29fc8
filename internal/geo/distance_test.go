package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(18.52, 73.85, 18.52, 73.85))
}

func TestDistanceKm_Symmetric(t *testing.T) {
	d1 := DistanceKm(18.52, 73.85, 19.07, 72.87)
	d2 := DistanceKm(19.07, 72.87, 18.52, 73.85)
	assert.Equal(t, d1, d2)
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name        string
		lat1, lng1  float64
		lat2, lng2  float64
		expectedKm  float64
		toleranceKm float64
	}{
		{
			name: "Pune to Mumbai",
			lat1: 18.5204, lng1: 73.8567,
			lat2: 19.0760, lng2: 72.8777,
			expectedKm:  120,
			toleranceKm: 5,
		},
		{
			name: "Delhi to Bangalore",
			lat1: 28.6139, lng1: 77.2090,
			lat2: 12.9716, lng2: 77.5946,
			expectedKm:  1740,
			toleranceKm: 20,
		},
		{
			name: "short hop within a city",
			lat1: 18.5204, lng1: 73.8567,
			lat2: 18.5600, lng2: 73.9000,
			expectedKm:  6.3,
			toleranceKm: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DistanceKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			assert.InDelta(t, tt.expectedKm, d, tt.toleranceKm)
		})
	}
}
