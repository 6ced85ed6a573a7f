package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kareemjns/bestbuy-pos/internal/catalog"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNotInCart       = errors.New("product not in cart")
)

// ExcessRemovalError reports an attempt to remove more units than the cart holds.
type ExcessRemovalError struct {
	Name      string
	Requested int
	InCart    int
}

func (e *ExcessRemovalError) Error() string {
	return fmt.Sprintf("cannot remove %d %s: only %d in cart", e.Requested, e.Name, e.InCart)
}

// ProductFinder is the catalog lookup the cart validates reservations
// against. Stock counters are read here at mutation time, never copied.
type ProductFinder interface {
	GetByID(id int) (catalog.Product, error)
}

// Line is one cart entry joined with its live product details.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart holds soft reservations: quantities are validated against live
// catalog stock but stock itself is untouched until checkout commits.
// The order slice keeps Items() stable so numbered removal menus don't
// shuffle between renders.
type Cart struct {
	mu         sync.RWMutex
	finder     ProductFinder
	quantities map[int]int
	order      []int
}

func New(finder ProductFinder) *Cart {
	return &Cart{
		finder:     finder,
		quantities: make(map[int]int),
	}
}

// Add reserves qty more units of a product. The single-call check rejects
// any one request above total stock; the cumulative check stops repeated
// small adds from walking the reservation past the stock ceiling.
func (c *Cart) Add(productID int, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.finder.GetByID(productID)
	if err != nil {
		return err
	}

	reserved := c.quantities[productID]
	if p.Stock < qty || p.Stock < reserved+qty {
		return &catalog.InsufficientStockError{
			Name:      p.Name,
			Requested: qty,
			Available: p.Stock - reserved,
		}
	}

	if reserved == 0 {
		c.order = append(c.order, productID)
	}
	c.quantities[productID] = reserved + qty
	return nil
}

// Remove releases qty units of a reservation. Entries that reach zero are
// deleted; the map never holds a zero-quantity entry.
func (c *Cart) Remove(productID int, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	reserved, ok := c.quantities[productID]
	if !ok {
		return ErrNotInCart
	}
	if qty > reserved {
		name := ""
		if p, err := c.finder.GetByID(productID); err == nil {
			name = p.Name
		}
		return &ExcessRemovalError{Name: name, Requested: qty, InCart: reserved}
	}

	if reserved == qty {
		delete(c.quantities, productID)
		c.dropFromOrder(productID)
		return nil
	}
	c.quantities[productID] = reserved - qty
	return nil
}

// Reserved returns the quantity currently held for a product (0 if absent).
func (c *Cart) Reserved(productID int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.quantities[productID]
}

// Items returns the cart lines in insertion order with live product details.
func (c *Cart) Items() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		p, err := c.finder.GetByID(id)
		if err != nil {
			continue
		}
		out = append(out, Line{Product: p, Quantity: c.quantities[id]})
	}
	return out
}

// Subtotal sums price×quantity over all entries; an empty cart totals zero.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for id, qty := range c.quantities {
		p, err := c.finder.GetByID(id)
		if err != nil {
			continue
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.quantities) == 0
}

// Quantities returns a copy of the reservation map keyed by product ID.
func (c *Cart) Quantities() map[int]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[int]int, len(c.quantities))
	for id, qty := range c.quantities {
		out[id] = qty
	}
	return out
}

// Clear empties the cart, releasing every reservation.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantities = make(map[int]int)
	c.order = nil
}

func (c *Cart) dropFromOrder(productID int) {
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
