package geocode

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// MaxRedirectHops bounds redirect-chain expansion of shortened map links.
const MaxRedirectHops = 10

var shortLinkHosts = map[string]bool{
	"maps.app.goo.gl": true,
	"goo.gl":          true,
	"g.co":            true,
}

var (
	atSegmentRe = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	bangTokenRe = regexp.MustCompile(`!3d(-?\d+(?:\.\d+)?)!4d(-?\d+(?:\.\d+)?)`)
)

// ParseMapURL extracts coordinates from a map link, trying in order the
// @lat,lng segment, the q=lat,lng query parameter, and the !3d/!4d token.
// Returns nil when no method yields two parseable floats.
func ParseMapURL(raw string) *Coordinates {
	if m := atSegmentRe.FindStringSubmatch(raw); m != nil {
		if c := parseLatLng(m[1], m[2]); c != nil {
			return c
		}
	}

	if u, err := url.Parse(raw); err == nil {
		if q := u.Query().Get("q"); q != "" {
			parts := strings.SplitN(q, ",", 2)
			if len(parts) == 2 {
				if c := parseLatLng(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); c != nil {
					return c
				}
			}
		}
	}

	if m := bangTokenRe.FindStringSubmatch(raw); m != nil {
		if c := parseLatLng(m[1], m[2]); c != nil {
			return c
		}
	}

	return nil
}

func parseLatLng(latStr, lngStr string) *Coordinates {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil
	}
	return &Coordinates{Lat: lat, Lng: lng}
}

// isShortLink reports whether the URL points at a known link shortener.
func isShortLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return shortLinkHosts[strings.ToLower(u.Hostname())]
}

// expandShortLink follows the redirect chain to the canonical URL, bounded
// to MaxRedirectHops. Any failure falls back to the original URL.
func (r *Resolver) expandShortLink(ctx context.Context, raw string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return raw
	}

	resp, err := r.redirectClient.Do(req)
	if err != nil {
		r.log.Debugf("short link expansion failed for %s: %v", raw, err)
		return raw
	}
	defer resp.Body.Close()

	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return raw
}
