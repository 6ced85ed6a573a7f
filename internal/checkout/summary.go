package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/kareemjns/bestbuy-pos/internal/config"
)

// Pricing carries the store's discount and tax policy.
type Pricing struct {
	DiscountRate      decimal.Decimal
	DiscountThreshold decimal.Decimal
	TaxRate           decimal.Decimal
}

func PricingFromConfig(cfg config.Config) Pricing {
	return Pricing{
		DiscountRate:      cfg.DiscountRate,
		DiscountThreshold: cfg.DiscountThreshold,
		TaxRate:           cfg.TaxRate,
	}
}

// Summary is the derived order pricing for a cart. It is recomputed from
// cart state on demand and never cached as mutable state.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Summarize prices a subtotal: the discount applies only when the subtotal
// strictly exceeds the threshold, and tax is charged on the discounted amount.
func Summarize(subtotal decimal.Decimal, p Pricing) Summary {
	discount := decimal.Zero
	if subtotal.GreaterThan(p.DiscountThreshold) {
		discount = subtotal.Mul(p.DiscountRate)
	}
	tax := subtotal.Sub(discount).Mul(p.TaxRate)
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal.Sub(discount).Add(tax),
	}
}
