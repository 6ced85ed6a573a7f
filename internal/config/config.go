package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds environment-driven configuration for the POS.
type Config struct {
	Addr         string
	StoreName    string
	StoreAddress string
	StoreContact string
	JWTSecret    string

	TaxRate           decimal.Decimal
	DiscountRate      decimal.Decimal
	DiscountThreshold decimal.Decimal
	LowStockThreshold int
}

// Load reads configuration from environment variables, falling back to the
// store defaults when a variable is unset or malformed.
func Load() Config {
	return Config{
		Addr:              envString("POS_ADDR", ":8080"),
		StoreName:         envString("STORE_NAME", "BestBuy Food, Beverages, and Household Items Retail Store"),
		StoreAddress:      envString("STORE_ADDRESS", "16 East Street, St. James"),
		StoreContact:      envString("STORE_CONTACT", "(876) 940-2025"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TaxRate:           envDecimal("TAX_RATE", "0.10"),
		DiscountRate:      envDecimal("DISCOUNT_RATE", "0.05"),
		DiscountThreshold: envDecimal("DISCOUNT_THRESHOLD", "5000"),
		LowStockThreshold: envInt("LOW_STOCK_THRESHOLD", 5),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDecimal(key, fallback string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			return d
		}
	}
	return decimal.RequireFromString(fallback)
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}
