package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"pfd-editor/internal/common/config"
	"pfd-editor/internal/common/middleware"
	"pfd-editor/internal/diagrams/handlers"
	"pfd-editor/internal/diagrams/repository"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Diagrams Service
// ============================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	dbPath := getenv("DIAGRAMS_DB_PATH", "data/db/diagrams.db")
	db, err := repository.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), "migrations/001_init_diagrams.sql"); err != nil {
		log.Fatalf("init db: %v", err)
	}

	routerURL := getenv("ROUTER_URL", "http://localhost:3001")
	diagramHandler := handlers.NewDiagramHandler(repo, routerURL)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Diagrams Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := db.PingContext(context.Background()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Component Library Routes
	// ============================================================

	app.Get("/components", diagramHandler.ListComponents)
	app.Post("/components", diagramHandler.SaveComponent)
	app.Get("/components/:name", diagramHandler.GetComponent)

	// ============================================================
	// Diagram Routes
	// ============================================================

	app.Post("/diagrams", diagramHandler.CreateDiagram)
	app.Get("/diagrams/:id", diagramHandler.GetDiagram)
	app.Put("/diagrams/:id", diagramHandler.UpdateDiagram)
	app.Get("/diagrams/:id/routes", diagramHandler.GetRoutes)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Diagrams Service on %s (env: %s, router: %s)", addr, cfg.Environment, routerURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func getenv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
