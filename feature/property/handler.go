package property

import (
	"renting-scraper/core/logger"
	"renting-scraper/feature/property/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for listings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the property routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/properties")
	group.Get("/", h.HandleListActive)
	group.Get("/delisted", h.HandleListDelisted)
	group.Get("/:source/:externalId", h.HandleGetByKey)
}

// HandleListActive returns all active listings.
// @Summary List active listings
// @Description Returns every listing present in the latest snapshot.
// @Tags properties
// @Produce json
// @Success 200 {array} models.PropertyEntity "Active listings"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /properties [get]
func (h *Handler) HandleListActive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	listings, err := h.service.ListActive(c.Context())
	if err != nil {
		l.Error("Listing query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(listings)
}

// HandleListDelisted returns all tombstoned listings.
// @Summary List delisted listings
// @Description Returns every listing that disappeared from the portals.
// @Tags properties
// @Produce json
// @Success 200 {array} models.PropertyEntity "Delisted listings"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /properties/delisted [get]
func (h *Handler) HandleListDelisted(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	listings, err := h.service.ListDelisted(c.Context())
	if err != nil {
		l.Error("Delisted query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(listings)
}

// HandleGetByKey returns one listing by natural key, delisted included.
// @Summary Get a listing
// @Description Get a single listing by its (source, externalId) key.
// @Tags properties
// @Produce json
// @Param source path string true "Listing source (e.g. 'imovirtual')"
// @Param externalId path string true "Identifier assigned by the source"
// @Success 200 {object} models.PropertyEntity "Listing"
// @Failure 400 {object} map[string]string "Unknown source"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /properties/{source}/{externalId} [get]
func (h *Handler) HandleGetByKey(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	source := models.Source(c.Params("source"))
	if !source.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown source",
		})
	}

	listing, err := h.service.GetByKey(c.Context(), source, c.Params("externalId"))
	if err != nil {
		l.Error("Listing lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if listing == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "listing not found",
		})
	}

	return c.JSON(listing)
}
