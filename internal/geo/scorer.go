package geo

import (
	"math"

	"github.com/RISHIK92/vyapaar-backend/internal/geocode"
)

// Scoring weights. The proximity bonus decays with distance: full within
// 5 km, 80% within 10 km, 60% within 20 km, nothing beyond.
const (
	baseAreaScore      = 100.0
	cityMatchBonus     = 50.0
	subDistrictBonus   = 30.0
	proximityBonusMax  = 20.0
	serviceRadiusBonus = 10.0
)

// Score rates an in-area candidate location against the requester. The
// caller must have established SameArea first. serviceRadiusKm > 0 adds the
// service-radius bonus when the computed distance falls inside it; pass 0
// for candidates without a declared radius.
//
// The returned distance pointer is non-nil whenever both sides carry
// coordinates, so callers can attach it for display even when it played no
// part in the area decision.
func Score(requester, candidate *geocode.Location, serviceRadiusKm float64) (int, *float64) {
	score := baseAreaScore

	if fieldsMatch(requester.City, candidate.City) {
		score += cityMatchBonus
	}
	if fieldsMatch(requester.SubDistrict, candidate.SubDistrict) {
		score += subDistrictBonus
	}

	var distance *float64
	if requester.HasCoordinates() && candidate.HasCoordinates() {
		d := DistanceKm(requester.Coordinates.Lat, requester.Coordinates.Lng,
			candidate.Coordinates.Lat, candidate.Coordinates.Lng)
		distance = &d

		score += proximityBonus(d)

		if serviceRadiusKm > 0 && d <= serviceRadiusKm {
			score += serviceRadiusBonus
		}
	}

	return int(math.Round(score)), distance
}

func proximityBonus(distanceKm float64) float64 {
	switch {
	case distanceKm <= 5:
		return proximityBonusMax
	case distanceKm <= 10:
		return proximityBonusMax * 0.8
	case distanceKm <= 20:
		return proximityBonusMax * 0.6
	default:
		return 0
	}
}
