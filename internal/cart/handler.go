package cart

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kareemjns/bestbuy-pos/internal/catalog"
)

// Handler delegates cart operations to the cart service.
// This keeps cart-specific HTTP routing isolated.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/cart/items", h.addItem)
	app.Delete("/api/v1/cart/items", h.removeItem)
}

type itemRequest struct {
	ProductID int `json:"productID"`
	Quantity  int `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"items":    h.service.Items(),
		"subtotal": h.service.Subtotal(),
	})
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(itemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.Add(payload.ProductID, payload.Quantity); err != nil {
		return businessError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(h.service.Items())
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	payload := new(itemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.Remove(payload.ProductID, payload.Quantity); err != nil {
		return businessError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(h.service.Items())
}

func businessError(c *fiber.Ctx, err error) error {
	var stockErr *catalog.InsufficientStockError
	var removalErr *ExcessRemovalError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	case errors.Is(err, ErrNotInCart):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.As(err, &stockErr), errors.As(err, &removalErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
