package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/kareemjns/bestbuy-pos/internal/cart"
	"github.com/kareemjns/bestbuy-pos/internal/catalog"
	"github.com/kareemjns/bestbuy-pos/internal/checkout"
	"github.com/kareemjns/bestbuy-pos/internal/config"
	"github.com/kareemjns/bestbuy-pos/internal/terminal"
)

// main wires the register: seeded catalog, one cart, one checkout session,
// and the interactive terminal over stdin/stdout. Nothing persists across
// runs; the catalog resets to its seed on every start.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	catalogRepo := catalog.NewInMemoryRepository(catalog.Seed())
	catalogService := catalog.NewService(catalogRepo, cfg.LowStockThreshold)

	shoppingCart := cart.New(catalogRepo)
	session := checkout.NewSession(
		shoppingCart,
		catalogRepo,
		checkout.PricingFromConfig(cfg),
		checkout.SystemClock(),
		checkout.StoreInfo{Name: cfg.StoreName, Address: cfg.StoreAddress, Contact: cfg.StoreContact},
	)

	term := terminal.New(os.Stdin, os.Stdout, catalogService, session)
	if err := term.Run(); err != nil {
		log.Fatalf("register stopped: %v", err)
	}
}
