package services

import (
	"context"
	"time"

	"github.com/RISHIK92/vyapaar-backend/internal/database"
	"github.com/RISHIK92/vyapaar-backend/internal/geocode"
	"github.com/RISHIK92/vyapaar-backend/internal/models"
	"github.com/RISHIK92/vyapaar-backend/internal/selector"
)

type ListingService struct {
	db       *database.DB
	selector *selector.Selector[models.Listing]
}

func NewListingService(db *database.DB, resolver selector.Resolver) *ListingService {
	s := &ListingService{db: db}
	s.selector = selector.New(resolver, selector.Config[models.Listing]{
		Hints: ListingHints,
		ServiceRadiusKm: func(l models.Listing) float64 {
			if l.ServiceRadiusKm != nil {
				return *l.ServiceRadiusKm
			}
			return 0
		},
		Annotate: func(l *models.Listing, score int, distanceKm *float64) {
			l.LocationScore = score
			l.DistanceKm = distanceKm
		},
	})
	return s
}

// ListingHints extracts a listing's location hints in resolution priority
// order: map link, postal code, free-text city name, city relation.
func ListingHints(l models.Listing) []geocode.Hint {
	var hints []geocode.Hint
	if l.MapLink != nil && *l.MapLink != "" {
		hints = append(hints, geocode.MapURL(*l.MapLink))
	}
	if l.PostalCode != nil && *l.PostalCode != "" {
		hints = append(hints, geocode.PostalCode(*l.PostalCode))
	}
	if l.CityName != nil && *l.CityName != "" {
		hints = append(hints, geocode.CityName(*l.CityName))
	}
	if l.City != nil && l.City.Name != "" {
		hints = append(hints, geocode.CityName(l.City.Name))
	}
	return hints
}

type ListingFilter struct {
	PostalCode   string
	MaxResults   int
	CategoryID   uint
	PromotedOnly bool
}

// Select returns the geo-relevant selection of eligible listings. Only
// approved listings enter the pool; PromotedOnly additionally requires an
// active promotion window.
func (s *ListingService) Select(ctx context.Context, filter *ListingFilter) ([]models.Listing, error) {
	query := s.db.WithContext(ctx).
		Preload("Category").
		Preload("City").
		Where("status = ?", models.ListingStatusApproved)

	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.PromotedOnly {
		query = query.Where("promotion_level > 0 AND promoted_until > ?", time.Now())
	}

	var pool []models.Listing
	if err := query.Order("promotion_level DESC, created_at DESC").Find(&pool).Error; err != nil {
		return nil, err
	}

	selected := s.selector.Select(ctx, geocode.PostalCode(filter.PostalCode), pool, filter.MaxResults)
	return selected, nil
}

// GetByID retrieves a listing by ID with relations
func (s *ListingService) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.WithContext(ctx).Preload("Category").Preload("City").First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}
