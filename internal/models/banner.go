package models

import (
	"time"

	"gorm.io/gorm"
)

// GlobalPostalCode marks a banner that bypasses geographic filtering entirely
const GlobalPostalCode = "000000"

// Banner represents a promotional banner for a placement slot
// DB: banner
type Banner struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Slot   string `gorm:"column:slot;size:50;not null;index:idx_bnr_slot" json:"slot"`
	Title  string `gorm:"column:title;size:255;not null" json:"title"`
	ImgURL string `gorm:"column:img_url;type:text;not null" json:"img_url"`

	TargetURL *string `gorm:"column:target_url;type:text" json:"target_url,omitempty"`

	// Location hints, same resolution priority as listings
	MapLink    *string `gorm:"column:map_link;type:text" json:"map_link,omitempty"`
	PostalCode *string `gorm:"column:postal_code;size:10;index:idx_bnr_postal" json:"postal_code,omitempty"`
	CityName   *string `gorm:"column:city_name;size:100" json:"city_name,omitempty"`
	CityID     *uint   `gorm:"column:city_id;index:idx_bnr_city" json:"city_id,omitempty"`

	IsActive bool       `gorm:"column:is_active;not null;default:true;index:idx_bnr_active" json:"is_active"`
	StartsAt *time.Time `gorm:"column:starts_at" json:"starts_at,omitempty"`
	EndsAt   *time.Time `gorm:"column:ends_at" json:"ends_at,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index:idx_bnr_deleted" json:"deleted_at,omitempty"`

	// Transient ranking output, populated during selection
	LocationScore int      `gorm:"-" json:"location_score,omitempty"`
	DistanceKm    *float64 `gorm:"-" json:"distance_km,omitempty"`

	// Relations
	City *City `gorm:"foreignKey:CityID" json:"city,omitempty"`
}

func (Banner) TableName() string {
	return "banner"
}

// IsGlobal reports whether the banner carries the global sentinel postal code
func (b *Banner) IsGlobal() bool {
	return b.PostalCode != nil && (*b.PostalCode == GlobalPostalCode || *b.PostalCode == "0")
}
