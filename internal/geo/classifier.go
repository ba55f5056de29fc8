package geo

import (
	"strings"

	"github.com/RISHIK92/vyapaar-backend/internal/geocode"
)

// SameAreaMaxKm is the proximity cutoff for the same-state check.
const SameAreaMaxKm = 55.0

// SameArea decides whether two locations belong to the same area. Checks in
// order: district equality, city equality, then same-state proximity within
// SameAreaMaxKm. Missing data on either side fails the corresponding check,
// never the call.
func SameArea(a, b *geocode.Location) bool {
	if a == nil || b == nil {
		return false
	}

	if fieldsMatch(a.District, b.District) {
		return true
	}
	if fieldsMatch(a.City, b.City) {
		return true
	}

	if fieldsMatch(a.State, b.State) && a.HasCoordinates() && b.HasCoordinates() {
		d := DistanceKm(a.Coordinates.Lat, a.Coordinates.Lng, b.Coordinates.Lat, b.Coordinates.Lng)
		return d <= SameAreaMaxKm
	}

	return false
}

// fieldsMatch is a case-insensitive equality that requires both sides to be
// present.
func fieldsMatch(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
