package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kareemjns/bestbuy-pos/internal/cart"
	"github.com/kareemjns/bestbuy-pos/internal/catalog"
	"github.com/kareemjns/bestbuy-pos/internal/checkout"
)

type fixedClock struct{ at time.Time }

func (f fixedClock) Now() time.Time { return f.at }

func storePricing() checkout.Pricing {
	return checkout.Pricing{
		DiscountRate:      decimal.RequireFromString("0.05"),
		DiscountThreshold: decimal.NewFromInt(5000),
		TaxRate:           decimal.RequireFromString("0.10"),
	}
}

// runScript feeds one input line per prompt and returns everything the
// terminal printed, together with the catalog for stock assertions.
func runScript(t *testing.T, lines ...string) (string, *catalog.InMemoryRepository) {
	t.Helper()

	repo := catalog.NewInMemoryRepository(catalog.Seed())
	service := catalog.NewService(repo, 5)
	c := cart.New(repo)
	session := checkout.NewSession(
		c, repo, storePricing(),
		fixedClock{at: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)},
		checkout.StoreInfo{Name: "BestBuy", Address: "16 East Street, St. James", Contact: "(876) 940-2025"},
	)

	var out bytes.Buffer
	term := New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, service, session)
	require.NoError(t, term.Run())
	return out.String(), repo
}

func TestFullPurchaseFlow(t *testing.T) {
	out, repo := runScript(t,
		"2", "1", "3", // add 3 of product 1 (Gain, 3950)
		"5", "3", "20000", // checkout, proceed, pay
		"6",
	)

	assert.Contains(t, out, "Added 3 Gain Laundry Detergent(s) to cart")
	assert.Contains(t, out, "ORDER SUMMARY")
	// 11850 subtotal -> 592.50 discount, 1125.75 tax, 12383.25 total
	assert.Contains(t, out, "TOTAL: $12383.25")
	assert.Contains(t, out, "PAID: $20000.00")
	assert.Contains(t, out, "CHANGE: $7616.75")
	assert.Contains(t, out, "Date: 2026-03-14 15:09:26")
	assert.Contains(t, out, "THANK YOU FOR USING BESTBUY POINT OF SALE SYSTEM!")

	p, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock, "commit decrements stock by the purchased quantity")
}

func TestAddFlowRejectsBadInput(t *testing.T) {
	out, repo := runScript(t,
		"2", "abc", // non-numeric product number
		"2", "11", // out of range
		"2", "1", "xyz", "0", // bad quantity then cancel
		"2", "1", "-2", "0", // negative quantity then cancel
		"2", "1", "99", "0", // over available then cancel
		"6",
	)

	assert.Contains(t, out, "Error: Please enter a valid product number (1-10)")
	assert.Contains(t, out, "Error: Please enter a valid number")
	assert.Contains(t, out, "Error: Quantity cannot be negative")
	assert.Contains(t, out, "Error: Only 10 available")
	assert.Contains(t, out, "Operation cancelled")

	// nothing was ever added or committed
	p, _ := repo.GetByID(1)
	assert.Equal(t, 10, p.Stock)
}

func TestCumulativeAddCapAcrossCalls(t *testing.T) {
	out, _ := runScript(t,
		"2", "1", "8", // reserve 8 of 10
		"2", "1", "3", "0", // only 2 more available; cancel
		"6",
	)

	assert.Contains(t, out, "Already in cart: 8")
	assert.Contains(t, out, "Available to add: 2")
	assert.Contains(t, out, "Error: Only 2 available")
}

func TestFullyAllocatedProductShortCircuits(t *testing.T) {
	out, repo := runScript(t,
		"2", "8", "5", // reserve all 5 Moscato Wine
		"2", "8", // re-enter the add flow for the same product
		"6",
	)

	assert.Contains(t, out, "This product is completely allocated (Stock: 5)")
	// the flow returns to the menu before ever prompting for a quantity
	assert.NotContains(t, out, "Already in cart: 5")
	assert.NotContains(t, out, "Available to add: 0")

	// reservation only: stock is untouched until a commit
	p, err := repo.GetByID(8)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}

func TestRemoveFlow(t *testing.T) {
	out, _ := runScript(t,
		"3", // remove with empty cart
		"2", "1", "4",
		"3", "1", "2", // remove 2 of the only line
		"4", // view cart
		"6",
	)

	assert.Contains(t, out, "Your cart is empty")
	assert.Contains(t, out, "Removed 2 Gain Laundry Detergent(s) from cart")
	assert.Contains(t, out, "SUBTOTAL: $7900.00")
}

func TestCheckoutEmptyCart(t *testing.T) {
	out, _ := runScript(t, "5", "6")
	assert.Contains(t, out, "Your cart is empty")
}

func TestPaymentReprompts(t *testing.T) {
	out, repo := runScript(t,
		"2", "3", "2", // 2 x Tissues (995) = 1990, total 2189
		"5", "3",
		"1000", // short
		"abc", // unparsable
		"2189", // exact
		"6",
	)

	assert.Contains(t, out, "Amount must be at least $2189.00")
	assert.Contains(t, out, "Invalid amount. Please enter a number")
	assert.Contains(t, out, "CHANGE: $0.00")

	p, _ := repo.GetByID(3)
	assert.Equal(t, 18, p.Stock)
}

func TestReviewLoopEditsRecomputeTotals(t *testing.T) {
	out, repo := runScript(t,
		"2", "1", "1", // 1 x Gain (3950)
		"5",
		"1", "2", "2", // review: add 2 x Paper Towels (2200)
		"2", "1", "1", // review: remove 1 x Gain
		"3", "4840", // proceed, pay exactly
		"6",
	)

	// first review: 3950 + 395 tax
	assert.Contains(t, out, "TOTAL: $4345.00")
	// after the add: 8350 -> discount 417.50, tax 793.25
	assert.Contains(t, out, "TOTAL: $8725.75")
	// after the remove: 4400 -> tax 440
	assert.Contains(t, out, "TOTAL: $4840.00")

	// only the final cart was committed
	gain, _ := repo.GetByID(1)
	towels, _ := repo.GetByID(2)
	assert.Equal(t, 10, gain.Stock)
	assert.Equal(t, 13, towels.Stock)

	// receipt lists what was actually bought
	receiptPart := out[strings.LastIndex(out, "RECEIPT"):]
	assert.Contains(t, receiptPart, "Paper Towels Bundle")
	assert.NotContains(t, receiptPart, "Gain Laundry Detergent")
}

func TestLowStockAlertAfterCommit(t *testing.T) {
	out, _ := runScript(t,
		"2", "10", "2", // 2 x Exotic Breakfast Combo (stock 6)
		"5", "3", "10000",
		"6",
	)

	assert.Contains(t, out, "ALERT: Low stock items:")
	assert.Contains(t, out, "Exotic Breakfast Combo: 4 remaining")
}

func TestLowStockTagInListing(t *testing.T) {
	repo := catalog.NewInMemoryRepository(catalog.Seed())
	require.NoError(t, repo.DecrementStock(8, 3)) // Moscato 5 -> 2
	service := catalog.NewService(repo, 5)
	c := cart.New(repo)
	session := checkout.NewSession(c, repo, storePricing(), fixedClock{at: time.Now()}, checkout.StoreInfo{})

	var out bytes.Buffer
	term := New(strings.NewReader("1\n6\n"), &out, service, session)
	require.NoError(t, term.Run())

	assert.Contains(t, out.String(), "Moscato Wine ($4050.00, Stock: 2) (LOW STOCK!)")
}

func TestInvalidMenuChoice(t *testing.T) {
	out, _ := runScript(t, "9", "6")
	assert.Contains(t, out, "Invalid choice. Please enter a valid choice 1-6.")
}
