package geo

import (
	"testing"

	"github.com/RISHIK92/vyapaar-backend/internal/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offsetKm returns a location roughly km kilometers north of the requester.
func offsetKm(base *geocode.Location, km float64) *geocode.Location {
	return &geocode.Location{
		District: base.District,
		State:    base.State,
		Coordinates: &geocode.Coordinates{
			Lat: base.Coordinates.Lat + km/111.0,
			Lng: base.Coordinates.Lng,
		},
	}
}

func requesterLocation() *geocode.Location {
	return &geocode.Location{
		District:    "Pune",
		SubDistrict: "Haveli",
		City:        "Pune",
		State:       "Maharashtra",
		Coordinates: coords(18.5204, 73.8567),
	}
}

func TestScore_BaseScoreWithoutBonuses(t *testing.T) {
	req := &geocode.Location{District: "Pune"}
	cand := &geocode.Location{District: "Pune"}

	score, dist := Score(req, cand, 0)
	assert.Equal(t, 100, score)
	assert.Nil(t, dist)
}

func TestScore_CityAndSubDistrictBonuses(t *testing.T) {
	req := requesterLocation()

	score, _ := Score(req, &geocode.Location{District: "Pune", City: "pune"}, 0)
	assert.Equal(t, 150, score)

	score, _ = Score(req, &geocode.Location{District: "Pune", SubDistrict: "haveli"}, 0)
	assert.Equal(t, 130, score)

	score, _ = Score(req, &geocode.Location{District: "Pune", City: "Pune", SubDistrict: "Haveli"}, 0)
	assert.Equal(t, 180, score)
}

func TestScore_ProximityTiers(t *testing.T) {
	req := requesterLocation()
	base := &geocode.Location{District: "Pune", State: "Maharashtra", Coordinates: req.Coordinates}

	tests := []struct {
		name     string
		km       float64
		expected int
	}{
		{"within 5km", 3, 120},
		{"within 10km", 8, 116},
		{"within 20km", 15, 112},
		{"beyond 20km", 30, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := offsetKm(base, tt.km)
			score, dist := Score(req, cand, 0)
			require.NotNil(t, dist)
			assert.InDelta(t, tt.km, *dist, 0.5)
			assert.Equal(t, tt.expected, score)
		})
	}
}

func TestScore_ServiceRadiusBonus(t *testing.T) {
	req := requesterLocation()
	base := &geocode.Location{District: "Pune", State: "Maharashtra", Coordinates: req.Coordinates}
	cand := offsetKm(base, 15)

	withRadius, _ := Score(req, cand, 25)
	withoutRadius, _ := Score(req, cand, 0)
	assert.Equal(t, withoutRadius+10, withRadius)

	// Distance outside the declared radius earns nothing
	tooSmall, _ := Score(req, cand, 10)
	assert.Equal(t, withoutRadius, tooSmall)
}

func TestScore_MonotonicInProximity(t *testing.T) {
	req := requesterLocation()
	base := &geocode.Location{District: "Pune", State: "Maharashtra", Coordinates: req.Coordinates}

	prev := -1
	for _, km := range []float64{40, 25, 18, 9, 4, 1} {
		score, _ := Score(req, offsetKm(base, km), 0)
		if prev >= 0 {
			assert.GreaterOrEqual(t, score, prev, "closer candidate must not score lower")
		}
		prev = score
	}
}

func TestScore_DistanceAttachedEvenWithoutBonus(t *testing.T) {
	req := requesterLocation()
	base := &geocode.Location{District: "Pune", State: "Maharashtra", Coordinates: req.Coordinates}
	cand := offsetKm(base, 50)

	_, dist := Score(req, cand, 0)
	require.NotNil(t, dist)
	assert.InDelta(t, 50, *dist, 1)
}
