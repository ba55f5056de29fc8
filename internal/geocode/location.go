// Package geocode resolves location hints (map links, postal codes, city
// names) into coordinates and administrative metadata, caching results with
// a TTL so repeat lookups skip the network.
package geocode

import "strings"

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is the resolver output. Every field may be absent; callers must
// tolerate partial data.
type Location struct {
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
	District         string       `json:"district,omitempty"`
	SubDistrict      string       `json:"sub_district,omitempty"`
	City             string       `json:"city,omitempty"`
	State            string       `json:"state,omitempty"`
	PostalCode       string       `json:"postal_code,omitempty"`
	FormattedAddress string       `json:"formatted_address,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are known.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Coordinates != nil
}

// HintKind identifies how a hint value should be interpreted.
type HintKind string

const (
	KindMapURL     HintKind = "map_url"
	KindPostalCode HintKind = "postal_code"
	KindCityName   HintKind = "city_name"
)

// Hint is a location-identifying input on a candidate or requester.
type Hint struct {
	Kind  HintKind `json:"kind"`
	Value string   `json:"value"`
}

// MapURL builds a map-link hint.
func MapURL(v string) Hint { return Hint{Kind: KindMapURL, Value: v} }

// PostalCode builds a postal-code hint.
func PostalCode(v string) Hint { return Hint{Kind: KindPostalCode, Value: v} }

// CityName builds a city-name hint.
func CityName(v string) Hint { return Hint{Kind: KindCityName, Value: v} }

// IsZero reports whether the hint carries no usable value.
func (h Hint) IsZero() bool {
	return strings.TrimSpace(h.Value) == ""
}

// CacheKey is the composite cache key for the hint.
func (h Hint) CacheKey() string {
	return string(h.Kind) + ":" + strings.ToLower(strings.TrimSpace(h.Value))
}
