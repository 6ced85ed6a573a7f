package catalog

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

// InsufficientStockError reports a request for more units than the catalog
// currently holds. Available is the amount that could still be taken.
type InsufficientStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, only %d available", e.Name, e.Requested, e.Available)
}

type Repository interface {
	List() []Product
	GetByID(id int) (Product, error)
	// DecrementStock subtracts qty from a product's stock. Stock never goes
	// negative; over-decrement returns *InsufficientStockError.
	DecrementStock(id int, qty int) error
	// DecrementAll applies a set of decrements atomically: either every line
	// is valid and all are applied, or nothing changes.
	DecrementAll(lines map[int]int) error
	LowStock(threshold int) []Product
	// Reset replaces all products with the provided list (used for wiring and tests)
	Reset(products []Product) error
}

// InMemoryRepository keeps products in seed order so numbered selection menus
// stay stable for the life of the process.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) DecrementStock(id int, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			if qty > r.storage[i].Stock {
				return &InsufficientStockError{
					Name:      r.storage[i].Name,
					Requested: qty,
					Available: r.storage[i].Stock,
				}
			}
			r.storage[i].Stock -= qty
			return nil
		}
	}
	return ErrNotFound
}

// DecrementAll validates every line before touching any stock counter, so a
// bad line can never leave a partially applied commit behind.
func (r *InMemoryRepository) DecrementAll(lines map[int]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := make(map[int]int, len(lines))
	for id, qty := range lines {
		pos := -1
		for i := range r.storage {
			if r.storage[i].ID == id {
				pos = i
				break
			}
		}
		if pos < 0 {
			return ErrNotFound
		}
		if qty > r.storage[pos].Stock {
			return &InsufficientStockError{
				Name:      r.storage[pos].Name,
				Requested: qty,
				Available: r.storage[pos].Stock,
			}
		}
		idx[pos] = qty
	}

	for pos, qty := range idx {
		r.storage[pos].Stock -= qty
	}
	return nil
}

// LowStock returns products with stock strictly below threshold, in catalog order.
func (r *InMemoryRepository) LowStock(threshold int) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out
}

// Reset replaces the whole in-memory storage with the provided products.
func (r *InMemoryRepository) Reset(products []Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = make([]Product, 0, len(products))
	r.storage = append(r.storage, products...)
	return nil
}
