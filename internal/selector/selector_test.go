package selector

import (
	"context"
	"sync"
	"testing"

	"github.com/RISHIK92/vyapaar-backend/internal/geocode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver resolves hints from a fixed table, nil for unknown values.
type fakeResolver struct {
	mu        sync.Mutex
	locations map[string]*geocode.Location
	calls     int
}

func (f *fakeResolver) Resolve(_ context.Context, h geocode.Hint) *geocode.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.locations[h.Value]
}

type shop struct {
	id     int
	mapURL string
	postal string
	city   string
}

func shopHints(s shop) []geocode.Hint {
	var hints []geocode.Hint
	if s.mapURL != "" {
		hints = append(hints, geocode.MapURL(s.mapURL))
	}
	if s.postal != "" {
		hints = append(hints, geocode.PostalCode(s.postal))
	}
	if s.city != "" {
		hints = append(hints, geocode.CityName(s.city))
	}
	return hints
}

func coords(lat, lng float64) *geocode.Coordinates {
	return &geocode.Coordinates{Lat: lat, Lng: lng}
}

var (
	puneLoc = &geocode.Location{
		District: "Pune", City: "Pune", State: "Maharashtra",
		Coordinates: coords(18.5204, 73.8567),
	}
	puneSuburbLoc = &geocode.Location{
		District: "Pune", City: "Pimpri", State: "Maharashtra",
		Coordinates: coords(18.62, 73.80),
	}
	// Bare coordinates about 44 km north of Pune, the shape a map-link
	// resolution produces: close enough for the nearby tier, but without
	// the administrative fields an area match needs
	nearbyOnlyLoc = &geocode.Location{
		Coordinates: coords(18.92, 73.8567),
	}
	// Same state, well beyond the 55 km cutoff
	mumbaiLoc = &geocode.Location{
		District: "Mumbai", City: "Mumbai", State: "Maharashtra",
		Coordinates: coords(19.0760, 72.8777),
	}
	bangaloreLoc = &geocode.Location{
		District: "Bengaluru Urban", City: "Bengaluru", State: "Karnataka",
		Coordinates: coords(12.9716, 77.5946),
	}
)

func newTestSelector(resolver Resolver) *Selector[shop] {
	return New(resolver, Config[shop]{Hints: shopHints})
}

func ids(shops []shop) []int {
	out := make([]int, len(shops))
	for i, s := range shops {
		out[i] = s.id
	}
	return out
}

func assertSubsetNoDupes(t *testing.T, pool, selected []shop) {
	t.Helper()
	inPool := map[int]bool{}
	for _, s := range pool {
		inPool[s.id] = true
	}
	seen := map[int]bool{}
	for _, s := range selected {
		assert.True(t, inPool[s.id], "selected candidate %d not in pool", s.id)
		assert.False(t, seen[s.id], "candidate %d selected twice", s.id)
		seen[s.id] = true
	}
}

func TestSelect_EmptyHintReturnsRandomSample(t *testing.T) {
	resolver := &fakeResolver{locations: map[string]*geocode.Location{}}
	sel := newTestSelector(resolver)

	pool := make([]shop, 8)
	for i := range pool {
		pool[i] = shop{id: i, city: "Somewhere"}
	}

	out := sel.Select(context.Background(), geocode.Hint{}, pool, 5)
	assert.Len(t, out, 5)
	assertSubsetNoDupes(t, pool, out)

	out = sel.Select(context.Background(), geocode.Hint{}, pool, 20)
	assert.Len(t, out, 8)
	assertSubsetNoDupes(t, pool, out)

	assert.Equal(t, 0, resolver.calls, "empty requester hint must skip resolution entirely")
}

func TestSelect_UnresolvableRequesterDegradesToRandomSample(t *testing.T) {
	resolver := &fakeResolver{locations: map[string]*geocode.Location{
		"411001": puneLoc,
	}}
	sel := newTestSelector(resolver)

	pool := []shop{
		{id: 1, postal: "411001"},
		{id: 2},
		{id: 3, city: "Mumbai"},
		{id: 4},
	}

	out := sel.Select(context.Background(), geocode.PostalCode("999999"), pool, 3)
	assert.Len(t, out, 3)
	assertSubsetNoDupes(t, pool, out)
}

func TestSelect_TierIsolationNotToppedUp(t *testing.T) {
	// One in-area candidate, nine nearby. Strict tier isolation means the
	// output is that single area candidate, never padded from nearby.
	locations := map[string]*geocode.Location{
		"411001": puneLoc,
		"411002": puneSuburbLoc,
		"410505": nearbyOnlyLoc,
	}
	resolver := &fakeResolver{locations: locations}
	sel := newTestSelector(resolver)

	pool := []shop{{id: 0, postal: "411002"}}
	for i := 1; i < 10; i++ {
		pool = append(pool, shop{id: i, postal: "410505"})
	}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 5)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].id)
}

func TestSelect_AreaBucketFillsQuotaExclusively(t *testing.T) {
	locations := map[string]*geocode.Location{
		"411001": puneLoc,
		"411002": puneSuburbLoc,
		"410505": nearbyOnlyLoc,
	}
	resolver := &fakeResolver{locations: locations}
	sel := newTestSelector(resolver)

	var pool []shop
	for i := 0; i < 10; i++ {
		pool = append(pool, shop{id: i, postal: "411002"}) // area
	}
	for i := 10; i < 15; i++ {
		pool = append(pool, shop{id: i, postal: "410505"}) // nearby
	}
	for i := 15; i < 20; i++ {
		pool = append(pool, shop{id: i}) // fallback
	}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 5)
	require.Len(t, out, 5)
	for _, s := range out {
		assert.Less(t, s.id, 10, "only area-bucket candidates may appear")
	}
	assertSubsetNoDupes(t, pool, out)
}

func TestSelect_AreaBucketPrefersHigherScores(t *testing.T) {
	// City match earns +50, so the exact-city candidate must win a quota of 1.
	locations := map[string]*geocode.Location{
		"411001": puneLoc,
		"exact":  {District: "Pune", City: "Pune", State: "Maharashtra"},
		"other":  {District: "Pune", City: "Baramati", State: "Maharashtra"},
	}
	resolver := &fakeResolver{locations: locations}
	sel := newTestSelector(resolver)

	pool := []shop{
		{id: 1, city: "other"},
		{id: 2, city: "exact"},
		{id: 3, city: "other"},
	}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 1)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].id)
}

func TestSelect_NearbyBucketPrefersCloserCandidates(t *testing.T) {
	near := &geocode.Location{Coordinates: coords(18.61, 73.8567)} // ~10 km
	mid := &geocode.Location{Coordinates: coords(18.70, 73.8567)}  // ~20 km
	far := &geocode.Location{Coordinates: coords(18.88, 73.8567)}  // ~40 km

	locations := map[string]*geocode.Location{
		"411001": puneLoc,
		"near":   near,
		"mid":    mid,
		"far":    far,
	}
	resolver := &fakeResolver{locations: locations}
	sel := newTestSelector(resolver)

	pool := []shop{
		{id: 1, city: "far"},
		{id: 2, city: "near"},
		{id: 3, city: "mid"},
	}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 2)
	require.Len(t, out, 2)
	got := map[int]bool{out[0].id: true, out[1].id: true}
	assert.True(t, got[2] && got[3], "the two closest candidates must be chosen, got %v", ids(out))
}

func TestSelect_BeyondCutoffIsExcluded(t *testing.T) {
	locations := map[string]*geocode.Location{
		"411001": puneLoc,
		"400001": mumbaiLoc,    // same state, >55 km
		"560001": bangaloreLoc, // different state
	}
	resolver := &fakeResolver{locations: locations}
	sel := newTestSelector(resolver)

	pool := []shop{
		{id: 1, postal: "400001"},
		{id: 2, postal: "560001"},
		{id: 3}, // unrestricted
	}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 5)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].id)
}

func TestSelect_UnresolvableRestrictedCandidateIsDropped(t *testing.T) {
	locations := map[string]*geocode.Location{
		"411001": puneLoc,
	}
	resolver := &fakeResolver{locations: locations}
	sel := newTestSelector(resolver)

	pool := []shop{
		{id: 1, postal: "123456"}, // restrictive hint nobody can resolve
		{id: 2},                   // no hints at all
	}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 5)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].id)
}

func TestSelect_HintPriorityOrder(t *testing.T) {
	// The map link resolves to Pune, the postal code to Bangalore. The map
	// link must win, putting the candidate in the area bucket.
	locations := map[string]*geocode.Location{
		"411001":            puneLoc,
		"https://maps/pune": puneSuburbLoc,
		"560001":            bangaloreLoc,
	}
	resolver := &fakeResolver{locations: locations}
	sel := newTestSelector(resolver)

	pool := []shop{{id: 1, mapURL: "https://maps/pune", postal: "560001"}}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 5)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].id)
}

func TestSelect_GlobalSentinelAlwaysIncludedAndPinnedFirst(t *testing.T) {
	locations := map[string]*geocode.Location{
		"411001": puneLoc,
		"411002": puneSuburbLoc,
	}
	resolver := &fakeResolver{locations: locations}
	sel := newTestSelector(resolver)

	pool := []shop{{id: 100, postal: "000000"}}
	for i := 0; i < 10; i++ {
		pool = append(pool, shop{id: i, postal: "411002"})
	}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 3)
	require.Len(t, out, 3)
	assert.Equal(t, 100, out[0].id, "sentinel must be pinned at the front")
	assertSubsetNoDupes(t, pool, out)
}

func TestSelect_GlobalSentinelSurvivesDegradedPaths(t *testing.T) {
	resolver := &fakeResolver{locations: map[string]*geocode.Location{}}
	sel := newTestSelector(resolver)

	pool := []shop{{id: 100, postal: "000000"}}
	for i := 0; i < 10; i++ {
		pool = append(pool, shop{id: i, city: "Anywhere"})
	}

	// Empty requester hint
	out := sel.Select(context.Background(), geocode.Hint{}, pool, 3)
	require.NotEmpty(t, out)
	assert.Equal(t, 100, out[0].id)

	// Unresolvable requester hint
	out = sel.Select(context.Background(), geocode.PostalCode("999999"), pool, 3)
	require.NotEmpty(t, out)
	assert.Equal(t, 100, out[0].id)
}

func TestSelect_NumericZeroSentinel(t *testing.T) {
	resolver := &fakeResolver{locations: map[string]*geocode.Location{"411001": puneLoc}}
	sel := newTestSelector(resolver)

	pool := []shop{{id: 1, postal: "0"}, {id: 2}}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 1)
	require.NotEmpty(t, out)
	assert.Equal(t, 1, out[0].id)
}

func TestSelect_MaxResultsZeroOrNegative(t *testing.T) {
	resolver := &fakeResolver{locations: map[string]*geocode.Location{}}
	sel := newTestSelector(resolver)

	pool := []shop{{id: 1}, {id: 2}}

	assert.Empty(t, sel.Select(context.Background(), geocode.Hint{}, pool, 0))
	assert.Empty(t, sel.Select(context.Background(), geocode.Hint{}, pool, -3))
}

func TestSelect_EmptyPool(t *testing.T) {
	resolver := &fakeResolver{locations: map[string]*geocode.Location{"411001": puneLoc}}
	sel := newTestSelector(resolver)

	assert.Empty(t, sel.Select(context.Background(), geocode.PostalCode("411001"), nil, 5))
}

func TestSelect_AnnotateReceivesScoreAndDistance(t *testing.T) {
	locations := map[string]*geocode.Location{
		"411001": puneLoc,
		"411002": puneSuburbLoc,
	}
	resolver := &fakeResolver{locations: locations}

	type annotated struct {
		score int
		dist  *float64
	}
	got := map[int]annotated{}
	var mu sync.Mutex

	sel := New(resolver, Config[shop]{
		Hints: shopHints,
		Annotate: func(s *shop, score int, dist *float64) {
			mu.Lock()
			defer mu.Unlock()
			got[s.id] = annotated{score: score, dist: dist}
		},
	})

	pool := []shop{{id: 1, postal: "411002"}}
	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 5)
	require.Len(t, out, 1)

	a, ok := got[1]
	require.True(t, ok)
	assert.GreaterOrEqual(t, a.score, 100)
	require.NotNil(t, a.dist)
	assert.Greater(t, *a.dist, 0.0)
}

func TestSelect_ResolutionFailureAffectsOnlyThatCandidate(t *testing.T) {
	locations := map[string]*geocode.Location{
		"411001": puneLoc,
		"411002": puneSuburbLoc,
	}
	resolver := &fakeResolver{locations: locations}
	sel := newTestSelector(resolver)

	pool := []shop{
		{id: 1, postal: "411002"},
		{id: 2, postal: "broken"},
		{id: 3, postal: "411002"},
	}

	out := sel.Select(context.Background(), geocode.PostalCode("411001"), pool, 5)
	require.Len(t, out, 2)
	got := map[int]bool{out[0].id: true, out[1].id: true}
	assert.True(t, got[1] && got[3])
}
