package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler drives the per-process checkout session over HTTP. The register
// serves one customer at a time, so the payment endpoint walks the session
// through review and payment in a single request and re-arms it afterwards.
type Handler struct {
	session *Session
}

func NewHandler(s *Session) *Handler {
	return &Handler{session: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/checkout/summary", h.getSummary)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout/pay", h.pay)
}

type payRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) getSummary(c *fiber.Ctx) error {
	sum, err := h.session.Quote()
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(sum)
}

func (h *Handler) pay(c *fiber.Ctx) error {
	payload := new(payRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Amount.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "amount must be non-negative"})
	}

	// Settle runs review, transition and payment under the session lock, so
	// parallel POSTs serialize and at most one of them commits
	receipt, err := h.session.Settle(payload.Amount)
	if err != nil {
		var short *PaymentInsufficientError
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		case errors.As(err, &short):
			return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{
				"message":   short.Error(),
				"shortfall": short.Shortfall(),
			})
		case errors.Is(err, ErrInventoryConsistency):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		}
	}

	h.session.Reset()
	return c.Status(fiber.StatusOK).JSON(receipt)
}
