package handlers

import (
	"strconv"

	"github.com/RISHIK92/vyapaar-backend/internal/config"
	"github.com/RISHIK92/vyapaar-backend/internal/database"
	"github.com/RISHIK92/vyapaar-backend/internal/selector"
	"github.com/RISHIK92/vyapaar-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	service *services.ListingService
	cfg     *config.Config
}

func NewListingHandler(db *database.DB, cfg *config.Config, resolver selector.Resolver) *ListingHandler {
	return &ListingHandler{
		service: services.NewListingService(db, resolver),
		cfg:     cfg,
	}
}

func SetupListingRoutes(router fiber.Router, db *database.DB, cfg *config.Config, resolver selector.Resolver) {
	h := NewListingHandler(db, cfg, resolver)

	router.Get("/", h.List)
	router.Get("/:id", h.Get)
}

// List godoc
// @Summary Select geo-relevant listings
// @Tags listings
// @Accept json
// @Produce json
// @Param postal_code query string false "Requester postal code"
// @Param max_results query int false "Maximum number of results"
// @Param category_id query int false "Filter by category"
// @Param promoted query bool false "Only listings with an active promotion"
// @Success 200 {array} models.Listing
// @Router /listings [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	maxResults, _ := strconv.Atoi(c.Query("max_results", strconv.Itoa(h.cfg.DefaultMaxResults)))
	categoryID, _ := strconv.Atoi(c.Query("category_id", "0"))
	promoted, _ := strconv.ParseBool(c.Query("promoted", "false"))

	filter := services.ListingFilter{
		PostalCode:   c.Query("postal_code"),
		MaxResults:   maxResults,
		CategoryID:   uint(categoryID),
		PromotedOnly: promoted,
	}

	listings, err := h.service.Select(c.UserContext(), &filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(listings)
}

// Get godoc
// @Summary Get listing by ID
// @Tags listings
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.Listing
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	listing, err := h.service.GetByID(c.UserContext(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
	}

	return c.JSON(listing)
}
