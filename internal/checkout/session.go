package checkout

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kareemjns/bestbuy-pos/internal/cart"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrSessionState = errors.New("operation not allowed in current session state")
	// ErrInventoryConsistency means a commit failed a stock check that the
	// cart's reservation invariant should have made impossible. It signals a
	// programming error, not bad operator input.
	ErrInventoryConsistency = errors.New("inventory consistency fault during commit")
)

// PaymentInsufficientError reports a tendered amount below the total due.
type PaymentInsufficientError struct {
	Required decimal.Decimal
	Tendered decimal.Decimal
}

func (e *PaymentInsufficientError) Error() string {
	return fmt.Sprintf("amount must be at least $%s", e.Required.StringFixed(2))
}

// Shortfall is the amount still owed.
func (e *PaymentInsufficientError) Shortfall() decimal.Decimal {
	return e.Required.Sub(e.Tendered)
}

// State is the checkout phase of a session.
type State int

const (
	StateShopping State = iota
	StateReviewing
	StatePaying
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateShopping:
		return "shopping"
	case StateReviewing:
		return "reviewing"
	case StatePaying:
		return "paying"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Inventory is the commit seam into the catalog. The catalog repository
// satisfies it.
type Inventory interface {
	DecrementAll(lines map[int]int) error
}

// Clock supplies the receipt timestamp.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// StoreInfo is the receipt header identity.
type StoreInfo struct {
	Name    string
	Address string
	Contact string
}

// Session drives one customer through shopping, review, payment and commit.
// Reservations become real stock decrements only inside Pay; every earlier
// phase just reads. The mutex exists for the HTTP surface, where fiber
// serves handlers concurrently; the console drives the session from a
// single goroutine.
type Session struct {
	mu        sync.Mutex
	state     State
	cart      *cart.Cart
	inventory Inventory
	pricing   Pricing
	clock     Clock
	store     StoreInfo

	// frozen holds the summary captured by ProceedToPayment. Payment is
	// validated against it; there is no pathway back into Reviewing.
	frozen Summary
}

func NewSession(c *cart.Cart, inv Inventory, pricing Pricing, clock Clock, store StoreInfo) *Session {
	if clock == nil {
		clock = SystemClock()
	}
	return &Session{
		state:     StateShopping,
		cart:      c,
		inventory: inv,
		pricing:   pricing,
		clock:     clock,
		store:     store,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Cart() *cart.Cart { return s.cart }

// Quote prices the current cart without changing session state.
func (s *Session) Quote() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote()
}

// BeginReview recomputes the order summary from live cart state and enters
// (or re-enters) the Reviewing phase. An empty cart short-circuits without a
// state change.
func (s *Session) BeginReview() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beginReview()
}

// ResumeShopping loops back from Reviewing so the operator can edit the
// cart. The next BeginReview recomputes the summary, so totals never go stale.
func (s *Session) ResumeShopping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReviewing {
		return ErrSessionState
	}
	s.state = StateShopping
	return nil
}

// ProceedToPayment freezes the last reviewed summary and enters Paying.
// The transition is one-way: there is no route back into Reviewing.
func (s *Session) ProceedToPayment() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proceedToPayment()
}

// Pay validates the tendered amount against the frozen total, then commits:
// all reservations are applied to catalog stock atomically and the cart is
// cleared. Insufficient payment leaves every piece of state untouched.
func (s *Session) Pay(amount decimal.Decimal) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pay(amount)
}

// Settle walks the whole review-proceed-pay sequence under one lock, for
// callers that take payment in a single step. A session already parked in
// Paying (a rejected earlier payment) skips straight to the payment check so
// the frozen total stays authoritative; concurrent settles serialize, and
// the losers fail on the state check instead of double-committing.
func (s *Session) Settle(amount decimal.Decimal) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaying {
		if _, err := s.beginReview(); err != nil {
			return nil, err
		}
		if _, err := s.proceedToPayment(); err != nil {
			return nil, err
		}
	}
	return s.pay(amount)
}

// Reset re-arms the session for the next customer.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	s.frozen = Summary{}
	s.state = StateShopping
}

func (s *Session) quote() (Summary, error) {
	if s.cart.IsEmpty() {
		return Summary{}, ErrEmptyCart
	}
	return Summarize(s.cart.Subtotal(), s.pricing), nil
}

func (s *Session) beginReview() (Summary, error) {
	if s.state != StateShopping && s.state != StateReviewing {
		return Summary{}, ErrSessionState
	}
	sum, err := s.quote()
	if err != nil {
		return Summary{}, err
	}
	s.state = StateReviewing
	s.frozen = sum
	return sum, nil
}

func (s *Session) proceedToPayment() (Summary, error) {
	if s.state != StateReviewing {
		return Summary{}, ErrSessionState
	}
	if s.cart.IsEmpty() {
		return Summary{}, ErrEmptyCart
	}
	s.state = StatePaying
	return s.frozen, nil
}

func (s *Session) pay(amount decimal.Decimal) (*Receipt, error) {
	if s.state != StatePaying {
		return nil, ErrSessionState
	}
	if amount.LessThan(s.frozen.Total) {
		return nil, &PaymentInsufficientError{Required: s.frozen.Total, Tendered: amount}
	}

	lines := s.cart.Items()
	if err := s.inventory.DecrementAll(s.cart.Quantities()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventoryConsistency, err)
	}
	s.cart.Clear()
	s.state = StateCommitted

	return &Receipt{
		Number:   uuid.NewString(),
		Store:    s.store,
		IssuedAt: s.clock.Now(),
		Lines:    lines,
		Summary:  s.frozen,
		Paid:     amount,
		Change:   amount.Sub(s.frozen.Total),
	}, nil
}
