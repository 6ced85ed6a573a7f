package cart

import "github.com/shopspring/decimal"

// Service orchestrates cart operations for the handlers and the terminal.
type Service struct {
	cart *Cart
}

func NewService(c *Cart) *Service {
	return &Service{cart: c}
}

func (s *Service) Add(productID int, qty int) error {
	return s.cart.Add(productID, qty)
}

func (s *Service) Remove(productID int, qty int) error {
	return s.cart.Remove(productID, qty)
}

func (s *Service) Items() []Line {
	return s.cart.Items()
}

func (s *Service) Subtotal() decimal.Decimal {
	return s.cart.Subtotal()
}

func (s *Service) IsEmpty() bool {
	return s.cart.IsEmpty()
}
