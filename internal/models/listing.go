package models

import (
	"time"

	"gorm.io/gorm"
)

// Listing statuses as stored in the status column
const (
	ListingStatusPending  = "pending"
	ListingStatusApproved = "approved"
	ListingStatusRejected = "rejected"
)

// Listing types
const (
	ListingTypeBusiness   = "business"
	ListingTypeIndividual = "individual"
)

// Category represents listing categories
// DB: categories
type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"column:name;size:100;not null;uniqueIndex:categories_name_key" json:"name"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:99" json:"display_order"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`

	// Relations
	Listings []Listing `gorm:"foreignKey:CategoryID" json:"listings,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

// City represents a known city with its geocoded center
// DB: cities
type City struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:100;not null;uniqueIndex:cities_name_key" json:"name"`
	State     string    `gorm:"column:state;size:100;not null;index:idx_city_state" json:"state"`
	Lat       *float64  `gorm:"column:lat;type:double precision" json:"lat,omitempty"`
	Lng       *float64  `gorm:"column:lng;type:double precision" json:"lng,omitempty"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (City) TableName() string {
	return "cities"
}

// Listing represents a business or individual listing
// DB: listing
type Listing struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	CategoryID  *uint   `gorm:"column:category_id;index:idx_lst_category" json:"category_id,omitempty"`
	CityID      *uint   `gorm:"column:city_id;index:idx_lst_city" json:"city_id,omitempty"`
	ListingType string  `gorm:"column:listing_type;size:20;not null;index:idx_lst_type" json:"listing_type"`
	Title       string  `gorm:"column:title;size:255;not null" json:"title"`
	Company     *string `gorm:"column:company;size:255" json:"company,omitempty"`
	Description *string `gorm:"column:description;type:text" json:"description,omitempty"`
	Status      string  `gorm:"column:status;size:20;not null;index:idx_lst_status" json:"status"`

	// Location hints, resolved in priority order: map link, postal code,
	// free-text city name, city relation
	MapLink    *string `gorm:"column:map_link;type:text" json:"map_link,omitempty"`
	PostalCode *string `gorm:"column:postal_code;size:10;index:idx_lst_postal" json:"postal_code,omitempty"`
	CityName   *string `gorm:"column:city_name;size:100" json:"city_name,omitempty"`

	ServiceRadiusKm *float64 `gorm:"column:service_radius_km;type:double precision" json:"service_radius_km,omitempty"`
	Lat             *float64 `gorm:"column:lat;type:double precision" json:"lat,omitempty"`
	Lng             *float64 `gorm:"column:lng;type:double precision" json:"lng,omitempty"`

	ImgURL      *string `gorm:"column:img_url;type:text" json:"img_url,omitempty"`
	ContactLink *string `gorm:"column:contact_link;type:text" json:"contact_link,omitempty"`

	PromotionLevel int        `gorm:"column:promotion_level;not null;default:0" json:"promotion_level"`
	PromotedUntil  *time.Time `gorm:"column:promoted_until;index:idx_lst_promoted" json:"promoted_until,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;not null;index:idx_lst_created,sort:desc" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index:idx_lst_deleted" json:"deleted_at,omitempty"`

	// Transient ranking output, populated during selection
	LocationScore int      `gorm:"-" json:"location_score,omitempty"`
	DistanceKm    *float64 `gorm:"-" json:"distance_km,omitempty"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	City     *City     `gorm:"foreignKey:CityID" json:"city,omitempty"`
}

func (Listing) TableName() string {
	return "listing"
}
