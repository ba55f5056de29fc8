package services

import (
	"github.com/RISHIK92/vyapaar-backend/internal/database"
	"github.com/RISHIK92/vyapaar-backend/internal/models"
)

type CityService struct {
	db *database.DB
}

func NewCityService(db *database.DB) *CityService {
	return &CityService{db: db}
}

// List retrieves all active cities
func (s *CityService) List() ([]models.City, error) {
	var cities []models.City
	err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}
