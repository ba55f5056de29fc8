package services

import (
	"context"
	"time"

	"github.com/RISHIK92/vyapaar-backend/internal/database"
	"github.com/RISHIK92/vyapaar-backend/internal/geocode"
	"github.com/RISHIK92/vyapaar-backend/internal/models"
	"github.com/RISHIK92/vyapaar-backend/internal/selector"
)

type BannerService struct {
	db       *database.DB
	selector *selector.Selector[models.Banner]
}

func NewBannerService(db *database.DB, resolver selector.Resolver) *BannerService {
	s := &BannerService{db: db}
	s.selector = selector.New(resolver, selector.Config[models.Banner]{
		Hints: BannerHints,
		Annotate: func(b *models.Banner, score int, distanceKm *float64) {
			b.LocationScore = score
			b.DistanceKm = distanceKm
		},
	})
	return s
}

// BannerHints extracts a banner's location hints in resolution priority
// order. The sentinel postal code "000000" stays a hint here; the selector
// recognizes it as the global override.
func BannerHints(b models.Banner) []geocode.Hint {
	var hints []geocode.Hint
	if b.MapLink != nil && *b.MapLink != "" {
		hints = append(hints, geocode.MapURL(*b.MapLink))
	}
	if b.PostalCode != nil && *b.PostalCode != "" {
		hints = append(hints, geocode.PostalCode(*b.PostalCode))
	}
	if b.CityName != nil && *b.CityName != "" {
		hints = append(hints, geocode.CityName(*b.CityName))
	}
	if b.City != nil && b.City.Name != "" {
		hints = append(hints, geocode.CityName(b.City.Name))
	}
	return hints
}

type BannerFilter struct {
	Slot       string
	PostalCode string
	MaxResults int
}

// Select returns the geo-relevant banners for a placement slot. Only active
// banners inside their display window enter the pool.
func (s *BannerService) Select(ctx context.Context, filter *BannerFilter) ([]models.Banner, error) {
	now := time.Now()
	query := s.db.WithContext(ctx).
		Preload("City").
		Where("slot = ?", filter.Slot).
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now)

	var pool []models.Banner
	if err := query.Find(&pool).Error; err != nil {
		return nil, err
	}

	selected := s.selector.Select(ctx, geocode.PostalCode(filter.PostalCode), pool, filter.MaxResults)
	return selected, nil
}
