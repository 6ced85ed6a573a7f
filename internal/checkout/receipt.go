package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kareemjns/bestbuy-pos/internal/cart"
	"github.com/kareemjns/bestbuy-pos/internal/render"
)

// Receipt is the committed record of one sale. Building it reads final
// session state only; rendering has no effect on anything.
type Receipt struct {
	Number   string          `json:"receiptNumber"`
	Store    StoreInfo       `json:"store"`
	IssuedAt time.Time       `json:"issuedAt"`
	Lines    []cart.Line     `json:"lines"`
	Summary  Summary         `json:"summary"`
	Paid     decimal.Decimal `json:"paid"`
	Change   decimal.Decimal `json:"change"`
}

// Render formats the receipt in the store's 80-column layout.
func (r *Receipt) Render() string {
	var b strings.Builder

	b.WriteString(render.Banner("RECEIPT") + "\n")
	b.WriteString(render.Center(r.Store.Name) + "\n")
	b.WriteString(render.Center(fmt.Sprintf("%s, Contact: %s", r.Store.Address, r.Store.Contact)) + "\n")
	b.WriteString(render.Center("Date: "+r.IssuedAt.Format("2006-01-02 15:04:05")) + "\n")
	b.WriteString(render.Rule() + "\n")

	b.WriteString(fmt.Sprintf("%-25s %-12s %-12s %-12s\n", "Product", "Price", "Qty", "Total"))
	for _, line := range r.Lines {
		lineTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		b.WriteString(fmt.Sprintf("%-25s $%-11s %-12d $%11s\n",
			line.Product.Name, line.Product.Price.StringFixed(2), line.Quantity, lineTotal.StringFixed(2)))
	}
	b.WriteString(render.Rule() + "\n")

	b.WriteString(fmt.Sprintf("SUBTOTAL: $%s\n", r.Summary.Subtotal.StringFixed(2)))
	if r.Summary.Discount.IsPositive() {
		b.WriteString(fmt.Sprintf("DISCOUNT: -$%s\n", r.Summary.Discount.StringFixed(2)))
	}
	b.WriteString(fmt.Sprintf("TAX: $%s\n", r.Summary.Tax.StringFixed(2)))
	b.WriteString(fmt.Sprintf("TOTAL: $%s\n", r.Summary.Total.StringFixed(2)))
	b.WriteString(fmt.Sprintf("PAID: $%s\n", r.Paid.StringFixed(2)))
	b.WriteString(fmt.Sprintf("CHANGE: $%s\n", r.Change.StringFixed(2)))
	b.WriteString("\nThank you for shopping with us!\n\n")
	b.WriteString(render.Rule() + "\n")

	return b.String()
}
