package handlers

import (
	"github.com/RISHIK92/vyapaar-backend/internal/database"
	"github.com/RISHIK92/vyapaar-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CityHandler struct {
	service *services.CityService
}

func NewCityHandler(db *database.DB) *CityHandler {
	return &CityHandler{
		service: services.NewCityService(db),
	}
}

func SetupCityRoutes(router fiber.Router, db *database.DB) {
	h := NewCityHandler(db)

	router.Get("/", h.List)
}

// List godoc
// @Summary List cities
// @Tags cities
// @Accept json
// @Produce json
// @Success 200 {array} models.City
// @Router /cities [get]
func (h *CityHandler) List(c *fiber.Ctx) error {
	cities, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(cities)
}
