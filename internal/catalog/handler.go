package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the read-only catalog endpoints. Stock is only ever
// mutated through checkout, so there is nothing to register as protected.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/low-stock", h.lowStock)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func (h *Handler) lowStock(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"threshold": h.service.LowStockThreshold(),
		"products":  h.service.LowStock(),
	})
}
