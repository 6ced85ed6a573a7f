package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kareemjns/bestbuy-pos/internal/cart"
	"github.com/kareemjns/bestbuy-pos/internal/catalog"
	"github.com/kareemjns/bestbuy-pos/internal/checkout"
	"github.com/kareemjns/bestbuy-pos/internal/config"
)

// main exposes the single register over HTTP: read-only catalog and cart
// views are public, mutations require an operator token. State lives in
// memory and resets with the process, same as the console terminal.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger(logger))

	catalogRepo := catalog.NewInMemoryRepository(catalog.Seed())
	catalogService := catalog.NewService(catalogRepo, cfg.LowStockThreshold)
	catalogHandler := catalog.NewHandler(catalogService)

	shoppingCart := cart.New(catalogRepo)
	cartService := cart.NewService(shoppingCart)
	cartHandler := cart.NewHandler(cartService)

	session := checkout.NewSession(
		shoppingCart,
		catalogRepo,
		checkout.PricingFromConfig(cfg),
		checkout.SystemClock(),
		checkout.StoreInfo{Name: cfg.StoreName, Address: cfg.StoreAddress, Contact: cfg.StoreContact},
	)
	checkoutHandler := checkout.NewHandler(session)

	catalogHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	checkoutHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// reads stay open; only mutating routes need an operator token
		Filter: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodGet
		},
	}))

	cartHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)

	logger.Info("starting register API", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)),
		)
		return err
	}
}
