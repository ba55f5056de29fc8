// Package selector implements the geo-relevance selection cascade: resolve
// the requester's location, bucket candidates into area / nearby / fallback
// tiers, and return a bounded, lightly shuffled selection from the highest
// non-empty tier. Tiers are strictly isolated; an under-filled tier is never
// topped up from the next one.
package selector

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/RISHIK92/vyapaar-backend/internal/geo"
	"github.com/RISHIK92/vyapaar-backend/internal/geocode"
	"github.com/RISHIK92/vyapaar-backend/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var selectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "vyapaar_selections_total",
		Help: "Total number of selection runs by the tier that served them",
	},
	[]string{"tier"},
)

const defaultConcurrency = 8

// Resolver resolves a location hint, returning nil on failure.
type Resolver interface {
	Resolve(ctx context.Context, hint geocode.Hint) *geocode.Location
}

// Config parameterizes a Selector over its candidate type.
type Config[T any] struct {
	// Hints extracts the candidate's location hints in resolution priority
	// order. An empty result marks the candidate location-unrestricted.
	Hints func(T) []geocode.Hint

	// ServiceRadiusKm returns the candidate's declared service radius in km,
	// or 0 when it has none. Optional.
	ServiceRadiusKm func(T) float64

	// Annotate receives the relevance score and computed distance for
	// candidates that went through scoring. Optional.
	Annotate func(*T, int, *float64)

	// Concurrency bounds parallel hint resolution. Defaults to 8.
	Concurrency int
}

// Selector runs the selection cascade for one candidate type.
type Selector[T any] struct {
	resolver Resolver
	cfg      Config[T]
	log      *zap.SugaredLogger
}

// New creates a Selector. cfg.Hints is required.
func New[T any](resolver Resolver, cfg Config[T]) *Selector[T] {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &Selector[T]{
		resolver: resolver,
		cfg:      cfg,
		log:      logger.GetLogger("selector"),
	}
}

type scoredCandidate[T any] struct {
	item       T
	score      int
	distanceKm *float64
}

// Select returns at most maxResults candidates from pool, ranked by
// geographic relevance to requesterHint. Global-sentinel candidates are
// always included and pinned at the front; the remainder of the chosen tier
// is shuffled. A missing or unresolvable requester hint degrades to a
// pool-wide random sample.
func (s *Selector[T]) Select(ctx context.Context, requesterHint geocode.Hint, pool []T, maxResults int) []T {
	if maxResults < 0 {
		maxResults = 0
	}

	global, regular := s.splitGlobal(pool)

	if requesterHint.IsZero() {
		selectionsTotal.WithLabelValues("unfiltered").Inc()
		return s.assemble(global, shuffled(regular), maxResults)
	}

	requester := s.resolver.Resolve(ctx, requesterHint)
	if requester == nil {
		s.log.Debugf("requester hint %q did not resolve, degrading to random sample", requesterHint.Value)
		selectionsTotal.WithLabelValues("unfiltered").Inc()
		return s.assemble(global, shuffled(regular), maxResults)
	}

	locations := s.resolveAll(ctx, regular)

	var area []scoredCandidate[T]
	var nearby []scoredCandidate[T]
	var fallback []T

	for i, candidate := range regular {
		hints := s.candidateHints(candidate)
		if len(hints) == 0 {
			// Location-unrestricted: always eligible as a fallback.
			fallback = append(fallback, candidate)
			continue
		}

		loc := locations[i]
		if loc == nil {
			// The candidate declared a restriction nobody can interpret;
			// showing it anywhere could contradict that restriction.
			continue
		}

		if geo.SameArea(requester, loc) {
			var radius float64
			if s.cfg.ServiceRadiusKm != nil {
				radius = s.cfg.ServiceRadiusKm(candidate)
			}
			score, dist := geo.Score(requester, loc, radius)
			area = append(area, scoredCandidate[T]{item: candidate, score: score, distanceKm: dist})
			continue
		}

		// Candidates that resolved to bare coordinates (a map link, say)
		// can never satisfy the administrative checks; distance alone
		// decides whether they are close enough to show.
		if requester.HasCoordinates() && loc.HasCoordinates() {
			d := geo.DistanceKm(requester.Coordinates.Lat, requester.Coordinates.Lng,
				loc.Coordinates.Lat, loc.Coordinates.Lng)
			if d <= geo.SameAreaMaxKm {
				nearby = append(nearby, scoredCandidate[T]{item: candidate, distanceKm: &d})
			}
		}
	}

	switch {
	case len(area) > 0:
		selectionsTotal.WithLabelValues("area").Inc()
		sort.SliceStable(area, func(i, j int) bool { return area[i].score > area[j].score })
		return s.assemble(global, s.annotated(area), maxResults)
	case len(nearby) > 0:
		selectionsTotal.WithLabelValues("nearby").Inc()
		sort.SliceStable(nearby, func(i, j int) bool {
			return *nearby[i].distanceKm < *nearby[j].distanceKm
		})
		return s.assemble(global, s.annotated(nearby), maxResults)
	default:
		selectionsTotal.WithLabelValues("fallback").Inc()
		return s.assemble(global, shuffled(fallback), maxResults)
	}
}

// resolveAll resolves each candidate's hints concurrently, first hit wins.
// One candidate's failure or timeout never affects the others.
func (s *Selector[T]) resolveAll(ctx context.Context, pool []T) []*geocode.Location {
	locations := make([]*geocode.Location, len(pool))

	sem := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup
	for i := range pool {
		hints := s.candidateHints(pool[i])
		if len(hints) == 0 {
			continue
		}

		wg.Add(1)
		go func(i int, hints []geocode.Hint) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			for _, h := range hints {
				if loc := s.resolver.Resolve(ctx, h); loc != nil {
					locations[i] = loc
					return
				}
			}
		}(i, hints)
	}
	wg.Wait()

	return locations
}

// candidateHints returns the candidate's non-empty hints in priority order.
func (s *Selector[T]) candidateHints(candidate T) []geocode.Hint {
	var hints []geocode.Hint
	for _, h := range s.cfg.Hints(candidate) {
		if !h.IsZero() {
			hints = append(hints, h)
		}
	}
	return hints
}

// splitGlobal separates global-sentinel candidates from the rest.
func (s *Selector[T]) splitGlobal(pool []T) (global, regular []T) {
	for _, candidate := range pool {
		if s.isGlobal(candidate) {
			global = append(global, candidate)
		} else {
			regular = append(regular, candidate)
		}
	}
	return global, regular
}

// isGlobal reports whether any postal-code hint carries the sentinel value.
func (s *Selector[T]) isGlobal(candidate T) bool {
	for _, h := range s.cfg.Hints(candidate) {
		if h.Kind == geocode.KindPostalCode && (h.Value == "000000" || h.Value == "0") {
			return true
		}
	}
	return false
}

// assemble pins global items at the front, shuffles the rest, and fills the
// remaining quota. Global items are never displaced by the quota.
func (s *Selector[T]) assemble(global, rest []T, maxResults int) []T {
	take := maxResults - len(global)
	if take < 0 {
		take = 0
	}
	if take > len(rest) {
		take = len(rest)
	}

	chosen := make([]T, take)
	copy(chosen, rest[:take])
	rand.Shuffle(len(chosen), func(i, j int) {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	})

	out := make([]T, 0, len(global)+take)
	out = append(out, global...)
	return append(out, chosen...)
}

// annotated flattens a scored tier, invoking the Annotate callback.
func (s *Selector[T]) annotated(tier []scoredCandidate[T]) []T {
	items := make([]T, len(tier))
	for i := range tier {
		items[i] = tier[i].item
		if s.cfg.Annotate != nil {
			s.cfg.Annotate(&items[i], tier[i].score, tier[i].distanceKm)
		}
	}
	return items
}

func shuffled[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
