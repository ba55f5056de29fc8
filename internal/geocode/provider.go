package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// geocodeResponse mirrors the primary provider's JSON shape.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location Coordinates `json:"location"`
		} `json:"geometry"`
		AddressComponents []addressComponent `json:"address_components"`
		FormattedAddress  string             `json:"formatted_address"`
	} `json:"results"`
}

type addressComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

// fallbackResult mirrors the secondary free-text geocoder's JSON shape.
// Coordinates come back string-typed.
type fallbackResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// geocodePrimary queries the primary provider with a country restriction.
// A nil Location with nil error means the provider had no result.
func (r *Resolver) geocodePrimary(ctx context.Context, query string) (*Location, error) {
	endpoint, err := url.Parse(r.cfg.GeocodeEndpoint)
	if err != nil {
		return nil, fmt.Errorf("bad geocode endpoint: %w", err)
	}

	q := endpoint.Query()
	q.Set("address", query)
	q.Set("components", "country:"+r.cfg.GeocodeCountry)
	if r.cfg.GeocodeAPIKey != "" {
		q.Set("key", r.cfg.GeocodeAPIKey)
	}
	endpoint.RawQuery = q.Encode()

	body, err := r.doWithRetry(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	var parsed geocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		return nil, nil
	}

	best := parsed.Results[0]
	coords := best.Geometry.Location
	loc := &Location{
		Coordinates:      &Coordinates{Lat: coords.Lat, Lng: coords.Lng},
		FormattedAddress: best.FormattedAddress,
	}
	for _, comp := range best.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "administrative_area_level_2":
				loc.District = comp.LongName
			case "administrative_area_level_3":
				loc.SubDistrict = comp.LongName
			case "locality":
				loc.City = comp.LongName
			case "administrative_area_level_1":
				loc.State = comp.LongName
			case "postal_code":
				loc.PostalCode = comp.LongName
			}
		}
	}
	return loc, nil
}

// geocodeFallback queries the lower-fidelity free-text geocoder. Only
// approximate coordinates and a display name come back.
func (r *Resolver) geocodeFallback(ctx context.Context, city string) (*Location, error) {
	endpoint, err := url.Parse(r.cfg.GeocodeFallbackEndpoint)
	if err != nil {
		return nil, fmt.Errorf("bad fallback endpoint: %w", err)
	}

	q := endpoint.Query()
	q.Set("city", city)
	q.Set("country", r.cfg.GeocodeCountry)
	q.Set("format", "json")
	q.Set("limit", "1")
	endpoint.RawQuery = q.Encode()

	body, err := r.doWithRetry(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	var results []fallbackResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode fallback response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse fallback lat: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse fallback lon: %w", err)
	}

	return &Location{
		Coordinates:      &Coordinates{Lat: lat, Lng: lng},
		City:             city,
		FormattedAddress: results[0].DisplayName,
	}, nil
}

// doWithRetry issues a GET, retrying once after a short jittered pause on
// transient network error. Provider error statuses are not retried.
func (r *Resolver) doWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := r.doGet(ctx, rawURL)
	if err == nil {
		return body, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	r.log.Debugf("geocode request failed, retrying once: %v", err)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(500*time.Millisecond + time.Duration(rand.Float64()*300)*time.Millisecond):
	}
	return r.doGet(ctx, rawURL)
}

func (r *Resolver) doGet(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
