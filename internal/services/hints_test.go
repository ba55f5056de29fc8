package services

import (
	"testing"

	"github.com/RISHIK92/vyapaar-backend/internal/geocode"
	"github.com/RISHIK92/vyapaar-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestListingHints_PriorityOrder(t *testing.T) {
	l := models.Listing{
		MapLink:    strPtr("https://maps.app.goo.gl/abc"),
		PostalCode: strPtr("411001"),
		CityName:   strPtr("Pune"),
		City:       &models.City{Name: "Pimpri"},
	}

	hints := ListingHints(l)
	require.Len(t, hints, 4)
	assert.Equal(t, geocode.KindMapURL, hints[0].Kind)
	assert.Equal(t, geocode.KindPostalCode, hints[1].Kind)
	assert.Equal(t, "411001", hints[1].Value)
	assert.Equal(t, geocode.KindCityName, hints[2].Kind)
	assert.Equal(t, "Pune", hints[2].Value)
	assert.Equal(t, geocode.KindCityName, hints[3].Kind)
	assert.Equal(t, "Pimpri", hints[3].Value)
}

func TestListingHints_SkipsEmptyValues(t *testing.T) {
	l := models.Listing{
		MapLink:    strPtr(""),
		PostalCode: strPtr("411001"),
	}

	hints := ListingHints(l)
	require.Len(t, hints, 1)
	assert.Equal(t, geocode.KindPostalCode, hints[0].Kind)
}

func TestListingHints_NoHints(t *testing.T) {
	assert.Empty(t, ListingHints(models.Listing{}))
}

func TestBannerHints_PriorityOrder(t *testing.T) {
	b := models.Banner{
		PostalCode: strPtr("400001"),
		City:       &models.City{Name: "Mumbai"},
	}

	hints := BannerHints(b)
	require.Len(t, hints, 2)
	assert.Equal(t, geocode.KindPostalCode, hints[0].Kind)
	assert.Equal(t, geocode.KindCityName, hints[1].Kind)
}

func TestBannerHints_SentinelStaysAHint(t *testing.T) {
	b := models.Banner{PostalCode: strPtr(models.GlobalPostalCode)}

	hints := BannerHints(b)
	require.Len(t, hints, 1)
	assert.Equal(t, models.GlobalPostalCode, hints[0].Value)
	assert.True(t, b.IsGlobal())
}
