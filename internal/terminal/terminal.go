// Package terminal implements the interactive register console: the numbered
// main menu, the add/remove/checkout prompt flows and all text rendering.
// It only reads structured data from the core and drives session mutations;
// every rejected input reprompts at the level that raised it.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kareemjns/bestbuy-pos/internal/cart"
	"github.com/kareemjns/bestbuy-pos/internal/catalog"
	"github.com/kareemjns/bestbuy-pos/internal/checkout"
	"github.com/kareemjns/bestbuy-pos/internal/render"
)

var (
	// ErrParse marks input that is not numeric where a number was required.
	// It is distinct from the business-rule errors raised by cart/checkout.
	ErrParse = errors.New("input is not a valid number")
	// ErrSelectionOutOfRange marks a numeric selection outside the menu range.
	ErrSelectionOutOfRange = errors.New("selection out of range")
)

// Terminal runs the interactive menu loop over an injected reader/writer
// pair so scripted sessions can drive it in tests.
type Terminal struct {
	in      *bufio.Scanner
	out     io.Writer
	catalog *catalog.Service
	session *checkout.Session
}

func New(in io.Reader, out io.Writer, catalogSvc *catalog.Service, session *checkout.Session) *Terminal {
	return &Terminal{
		in:      bufio.NewScanner(in),
		out:     out,
		catalog: catalogSvc,
		session: session,
	}
}

// Run drives the main menu until the operator exits or the input source is
// exhausted. It returns an error only for internal consistency faults.
func (t *Terminal) Run() error {
	for {
		t.printMainMenu()
		choice, ok := t.readLine("Enter choice (1-6): ")
		if !ok {
			return nil
		}
		t.printf("%s\n", render.Rule())

		switch strings.TrimSpace(choice) {
		case "1":
			t.viewProducts()
		case "2":
			t.addToCart()
		case "3":
			t.removeFromCart()
		case "4":
			t.viewCart()
		case "5":
			if err := t.checkoutFlow(); err != nil {
				return err
			}
		case "6":
			t.printf("THANK YOU FOR USING BESTBUY POINT OF SALE SYSTEM!\n")
			return nil
		default:
			t.printf("Invalid choice. Please enter a valid choice 1-6.\n")
		}
	}
}

func (t *Terminal) printMainMenu() {
	t.printf("\n%s\n\n", render.Banner("BESTBUY POINT OF SALE SYSTEM MENU"))
	t.printLowStockAlerts()
	t.printf("%s\n", render.Rule())
	t.printf("1. View Products\n")
	t.printf("2. Add to Cart\n")
	t.printf("3. Remove from Cart\n")
	t.printf("4. View Cart\n")
	t.printf("5. Checkout\n")
	t.printf("6. Exit\n")
	t.printf("%s\n", render.Rule())
}

// printLowStockAlerts is evaluated fresh on every menu render.
func (t *Terminal) printLowStockAlerts() {
	low := t.catalog.LowStock()
	if len(low) == 0 {
		return
	}
	t.printf("%s\n", render.Center("ALERT: Low stock items:"))
	t.printf("\n")
	for _, p := range low {
		t.printf("%s\n", render.Center(fmt.Sprintf("%s: %d remaining", p.Name, p.Stock)))
	}
	t.printf("\n")
}

func (t *Terminal) viewProducts() {
	t.printf("\n%s\n\n", render.Banner("BESTBUY PRODUCT CATALOG"))
	threshold := t.catalog.LowStockThreshold()
	for i, p := range t.catalog.List() {
		alert := ""
		if p.Stock < threshold {
			alert = " (LOW STOCK!)"
		}
		t.printf("%d. %s ($%s, Stock: %d)%s\n", i+1, p.Name, p.Price.StringFixed(2), p.Stock, alert)
	}
}

func (t *Terminal) addToCart() {
	t.viewProducts()
	products := t.catalog.List()

	t.printf("\n")
	product, err := t.selectProduct(products)
	if err != nil {
		t.printf("\nError: Please enter a valid product number (1-%d)\n", len(products))
		return
	}
	t.printf("\n")

	reserved := t.session.Cart().Reserved(product.ID)
	available := product.Stock - reserved
	if available <= 0 {
		t.printf("\nThis product is completely allocated (Stock: %d)\n", product.Stock)
		return
	}

	t.printf("Current stock: %d\n", product.Stock)
	t.printf("Already in cart: %d\n", reserved)

	for {
		t.printf("\nAvailable to add: %d\n", available)
		raw, ok := t.readLine("Enter quantity to add (0 to cancel): ")
		if !ok {
			return
		}
		qty, err := parseInt(raw)
		if err != nil {
			t.printf("\nError: Please enter a valid number\n")
			continue
		}
		if qty == 0 {
			t.printf("Operation cancelled\n")
			return
		}
		if qty < 0 {
			t.printf("Error: Quantity cannot be negative\n")
			continue
		}

		if err := t.session.Cart().Add(product.ID, qty); err != nil {
			var stockErr *catalog.InsufficientStockError
			if errors.As(err, &stockErr) {
				t.printf("Error: Only %d available\n", stockErr.Available)
			} else {
				t.printf("Error: %v\n", err)
			}
			continue
		}

		newReserved := t.session.Cart().Reserved(product.ID)
		t.printf("\nAdded %d %s(s) to cart\n", qty, product.Name)
		t.printf("New quantities:\n")
		t.printf("- In cart: %d\n", newReserved)
		t.printf("- Remaining available: %d\n", product.Stock-newReserved)
		return
	}
}

func (t *Terminal) removeFromCart() {
	t.viewCart()
	items := t.session.Cart().Items()
	if len(items) == 0 {
		return
	}

	t.printf("\nItems in cart:\n\n")
	for i, line := range items {
		t.printf("%d. %s (Qty: %d)\n", i+1, line.Product.Name, line.Quantity)
	}

	t.printf("\n")
	line, err := t.selectCartLine(items)
	if err != nil {
		t.printf("\nError: Invalid selection. Please enter a valid item number and quantity.\n\n")
		return
	}
	t.printf("\n")

	raw, ok := t.readLine(fmt.Sprintf("Enter quantity to remove (1-%d): ", line.Quantity))
	if !ok {
		return
	}
	qty, err := parseInt(raw)
	if err != nil {
		t.printf("\nError: Invalid selection. Please enter a valid item number and quantity.\n\n")
		return
	}

	if err := t.session.Cart().Remove(line.Product.ID, qty); err != nil {
		var removalErr *cart.ExcessRemovalError
		switch {
		case errors.As(err, &removalErr):
			t.printf("\nError: Cannot remove more than %d items\n\n", removalErr.InCart)
		case errors.Is(err, cart.ErrNotInCart):
			t.printf("\nError: Product not in cart\n\n")
		default:
			t.printf("\nError: %v\n\n", err)
		}
		return
	}
	t.printf("\nRemoved %d %s(s) from cart\n\n", qty, line.Product.Name)
}

func (t *Terminal) viewCart() {
	items := t.session.Cart().Items()
	if len(items) == 0 {
		t.printf("Your cart is empty\n")
		return
	}
	t.printf("\n%s\n\n", render.Banner("BESTBUY SHOPPING CART"))
	t.printf("%-25s %-12s %-12s %-12s\n", "Product", "Price", "Qty", "Total")
	for _, line := range items {
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		t.printf("%-25s $%-11s %-12d $%-11s\n",
			line.Product.Name, line.Product.Price.StringFixed(2), line.Quantity, lineTotal.StringFixed(2))
	}
	t.printf("\nSUBTOTAL: $%s\n", t.session.Cart().Subtotal().StringFixed(2))
}

// checkoutFlow runs the review loop and the payment loop. Totals are
// recomputed at the top of every review iteration; once the operator
// proceeds to payment there is no way back into review.
func (t *Terminal) checkoutFlow() error {
	for {
		sum, err := t.session.BeginReview()
		if err != nil {
			if errors.Is(err, checkout.ErrEmptyCart) {
				t.printf("Your cart is empty\n")
				return nil
			}
			return err
		}

		t.printf("\n%s\n\n", render.Banner("ORDER SUMMARY"))
		t.viewCart()
		if sum.Discount.IsPositive() {
			t.printf("\n")
		}
		t.printf("DISCOUNT (5%%): -$%s\n", sum.Discount.StringFixed(2))
		t.printf("TAX (10%%): $%s\n", sum.Tax.StringFixed(2))
		t.printf("TOTAL: $%s\n", sum.Total.StringFixed(2))

		t.printf("\nPlease select an option below to add or remove items from your cart. Select 3 to proceed to checkout\n")
		t.printf("1. Add an Item to your cart\n")
		t.printf("2. Remove an Item from your cart\n")
		t.printf("3. No, Please proceed to payment\n")
		choice, ok := t.readLine("Enter choice (1-3): ")
		if !ok {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := t.session.ResumeShopping(); err != nil {
				return err
			}
			t.addToCart()
		case "2":
			if err := t.session.ResumeShopping(); err != nil {
				return err
			}
			t.removeFromCart()
		case "3":
			if _, err := t.session.ProceedToPayment(); err != nil {
				return err
			}
			return t.paymentLoop()
		default:
			t.printf("Invalid choice. Please enter 1-3\n")
		}
	}
}

func (t *Terminal) paymentLoop() error {
	for {
		t.printf("\n")
		raw, ok := t.readLine("Enter payment amount: $")
		if !ok {
			return nil
		}
		t.printf("\n")

		amount, err := parseAmount(raw)
		if err != nil {
			t.printf("Invalid amount. Please enter a number\n")
			continue
		}

		receipt, err := t.session.Pay(amount)
		if err != nil {
			var short *checkout.PaymentInsufficientError
			if errors.As(err, &short) {
				t.printf("Amount must be at least $%s\n", short.Required.StringFixed(2))
				continue
			}
			return err
		}

		t.printf("%s", receipt.Render())
		t.session.Reset()
		return nil
	}
}

// selectProduct reads a 1-based product number against the catalog listing.
func (t *Terminal) selectProduct(products []catalog.Product) (catalog.Product, error) {
	raw, ok := t.readLine("Enter product number: ")
	if !ok {
		return catalog.Product{}, ErrParse
	}
	n, err := parseInt(raw)
	if err != nil {
		return catalog.Product{}, err
	}
	if n < 1 || n > len(products) {
		return catalog.Product{}, ErrSelectionOutOfRange
	}
	return products[n-1], nil
}

func (t *Terminal) selectCartLine(items []cart.Line) (cart.Line, error) {
	raw, ok := t.readLine("Enter item number to remove: ")
	if !ok {
		return cart.Line{}, ErrParse
	}
	n, err := parseInt(raw)
	if err != nil {
		return cart.Line{}, err
	}
	if n < 1 || n > len(items) {
		return cart.Line{}, ErrSelectionOutOfRange
	}
	return items[n-1], nil
}

func (t *Terminal) readLine(label string) (string, bool) {
	t.printf("%s", label)
	if !t.in.Scan() {
		return "", false
	}
	return t.in.Text(), true
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrParse
	}
	return n, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrParse
	}
	return d, nil
}

