package handlers

import (
	"strconv"

	"github.com/RISHIK92/vyapaar-backend/internal/config"
	"github.com/RISHIK92/vyapaar-backend/internal/database"
	"github.com/RISHIK92/vyapaar-backend/internal/selector"
	"github.com/RISHIK92/vyapaar-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BannerHandler struct {
	service *services.BannerService
	cfg     *config.Config
}

func NewBannerHandler(db *database.DB, cfg *config.Config, resolver selector.Resolver) *BannerHandler {
	return &BannerHandler{
		service: services.NewBannerService(db, resolver),
		cfg:     cfg,
	}
}

func SetupBannerRoutes(router fiber.Router, db *database.DB, cfg *config.Config, resolver selector.Resolver) {
	h := NewBannerHandler(db, cfg, resolver)

	router.Get("/:slot", h.Select)
}

// Select godoc
// @Summary Select geo-relevant banners for a slot
// @Tags banners
// @Accept json
// @Produce json
// @Param slot path string true "Banner slot name"
// @Param postal_code query string false "Requester postal code"
// @Param max_results query int false "Maximum number of results"
// @Success 200 {array} models.Banner
// @Router /banners/{slot} [get]
func (h *BannerHandler) Select(c *fiber.Ctx) error {
	maxResults, _ := strconv.Atoi(c.Query("max_results", strconv.Itoa(h.cfg.DefaultMaxResults)))

	filter := services.BannerFilter{
		Slot:       c.Params("slot"),
		PostalCode: c.Query("postal_code"),
		MaxResults: maxResults,
	}

	banners, err := h.service.Select(c.UserContext(), &filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(banners)
}
