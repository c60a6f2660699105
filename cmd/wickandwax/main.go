package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"wickandwax/internal/catalog"
	"wickandwax/internal/config"
	"wickandwax/internal/http/handlers"
	applog "wickandwax/internal/log"
	"wickandwax/internal/store"
	"wickandwax/internal/wishlist"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	st, err := store.Open(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	// Everything downstream reads the catalog, so load it before any
	// handler wiring.
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		log.Fatal(err)
	}

	// One-time compatibility step; a no-op on every later start.
	if err := wishlist.NewManager(st).MigrateLegacy(); err != nil {
		log.Fatal(err)
	}

	// Storage-change notifications: other tabs poll the badge endpoints
	// after a change; here we just make changes observable in the logs.
	st.Notify(func(key string) {
		if strings.HasPrefix(key, "cart:") || strings.HasPrefix(key, "wishlist_") {
			applog.Info(nil, "store.change", map[string]any{"key": key})
		}
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Something went wrong. Please try again.",
			})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(st, cat, cfg)
	api := app.Group("/api/v1")

	api.Get("/products", deps.CatalogHandler.Products)
	api.Get("/products/:id", deps.CatalogHandler.Product)
	api.Get("/scents", deps.CatalogHandler.Scents)
	api.Get("/scents/recommend", deps.CatalogHandler.Recommend)

	api.Get("/cart", deps.CartHandler.View)
	api.Get("/cart/count", deps.CartHandler.Count)
	api.Post("/cart", deps.CartHandler.Add)
	api.Post("/cart/update", deps.CartHandler.Update)
	api.Post("/cart/remove", deps.CartHandler.Remove)

	api.Get("/wishlist", deps.WishlistHandler.List)
	api.Post("/wishlist", deps.WishlistHandler.Save)
	api.Post("/wishlist/delete", deps.WishlistHandler.Unsave)

	api.Get("/checkout", deps.CheckoutHandler.State)
	api.Get("/checkout/options", deps.CheckoutHandler.Options)
	api.Post("/checkout/shipping-option", deps.CheckoutHandler.SelectShipping)
	api.Post("/checkout/shipping", deps.CheckoutHandler.SetShipping)
	api.Post("/checkout/payment", deps.CheckoutHandler.SetPayment)
	api.Post("/checkout/advance", deps.CheckoutHandler.Advance)
	api.Post("/checkout/retreat", deps.CheckoutHandler.Retreat)

	api.Get("/session", deps.AuthHandler.Session)
	api.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	api.Post("/logout", deps.AuthHandler.Logout)

	api.Post("/contact", deps.ContactHandler.Send)
	api.Post("/newsletter", deps.ContactHandler.Newsletter)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
