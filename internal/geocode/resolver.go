package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RISHIK92/vyapaar-backend/internal/cache"
	"github.com/RISHIK92/vyapaar-backend/internal/config"
	"github.com/RISHIK92/vyapaar-backend/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vyapaar_geocode_lookups_total",
			Help: "Total number of location hint resolutions",
		},
		[]string{"kind", "outcome"},
	)

	providerErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vyapaar_geocode_provider_errors_total",
			Help: "Total number of geocoding provider failures",
		},
		[]string{"provider"},
	)
)

// Resolver turns location hints into Locations, reading through a TTL cache.
// Resolution never surfaces an error: any provider failure, timeout, or
// unparseable hint simply yields nil.
type Resolver struct {
	cfg            *config.Config
	store          cache.Store
	httpClient     *http.Client
	redirectClient *http.Client
	log            *zap.SugaredLogger
}

// New creates a Resolver backed by the given cache store.
func New(cfg *config.Config, store cache.Store) *Resolver {
	timeout := time.Duration(cfg.GeocodeTimeoutSec) * time.Second

	return &Resolver{
		cfg:   cfg,
		store: store,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		redirectClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= MaxRedirectHops {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		log: logger.GetLogger("geocode"),
	}
}

// Resolve resolves a single hint. Returns nil when the hint is empty,
// unparseable, or the providers had nothing for it.
func (r *Resolver) Resolve(ctx context.Context, hint Hint) *Location {
	if hint.IsZero() {
		return nil
	}

	key := hint.CacheKey()
	if raw, ok := r.store.Get(ctx, key); ok {
		var loc Location
		if err := json.Unmarshal(raw, &loc); err == nil {
			lookupsTotal.WithLabelValues(string(hint.Kind), "cache_hit").Inc()
			return &loc
		}
	}

	var loc *Location
	switch hint.Kind {
	case KindMapURL:
		loc = r.resolveMapURL(ctx, hint.Value)
	case KindPostalCode:
		loc = r.resolveText(ctx, hint.Value, false)
	case KindCityName:
		loc = r.resolveText(ctx, hint.Value, true)
	default:
		return nil
	}

	if loc == nil {
		lookupsTotal.WithLabelValues(string(hint.Kind), "failed").Inc()
		return nil
	}
	lookupsTotal.WithLabelValues(string(hint.Kind), "resolved").Inc()

	if raw, err := json.Marshal(loc); err == nil {
		r.store.Set(ctx, key, raw, r.ttlFor(hint.Kind))
	}
	return loc
}

// resolveMapURL extracts coordinates from a map link, expanding shortened
// links through their redirect chain first. No provider call is involved.
func (r *Resolver) resolveMapURL(ctx context.Context, raw string) *Location {
	target := raw
	if isShortLink(raw) {
		target = r.expandShortLink(ctx, raw)
	}

	coords := ParseMapURL(target)
	if coords == nil && target != raw {
		coords = ParseMapURL(raw)
	}
	if coords == nil {
		return nil
	}
	return &Location{Coordinates: coords}
}

// resolveText geocodes free text through the primary provider, optionally
// falling back to the secondary geocoder for city names.
func (r *Resolver) resolveText(ctx context.Context, query string, allowFallback bool) *Location {
	loc, err := r.geocodePrimary(ctx, query)
	if err != nil {
		providerErrorsTotal.WithLabelValues("primary").Inc()
		r.log.Warnf("primary geocode failed for %q: %v", query, err)
	}
	if loc != nil {
		return loc
	}
	if !allowFallback {
		return nil
	}

	loc, err = r.geocodeFallback(ctx, query)
	if err != nil {
		providerErrorsTotal.WithLabelValues("fallback").Inc()
		r.log.Warnf("fallback geocode failed for %q: %v", query, err)
		return nil
	}
	return loc
}

func (r *Resolver) ttlFor(kind HintKind) time.Duration {
	if kind == KindPostalCode {
		return r.cfg.PostalCacheTTL
	}
	return r.cfg.EntityCacheTTL
}
