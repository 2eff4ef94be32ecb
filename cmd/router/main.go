package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"pfd-editor/internal/common/config"
	"pfd-editor/internal/common/middleware"
	"pfd-editor/internal/routing/engine"
	"pfd-editor/internal/routing/handlers"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Router Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	routeHandler := handlers.NewRouteHandler(engine.New(engine.OptionsFrom(cfg.Routing)))

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Router Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.CORS())
	app.Use(middleware.Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Routing Routes
	// ============================================================

	app.Post("/route", routeHandler.Route)
	app.Post("/snap", routeHandler.Snap)
	app.Post("/preview", routeHandler.Preview)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Router Service on %s (env: %s, standoff: %v)", addr, cfg.Environment, cfg.Routing.Standoff)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
