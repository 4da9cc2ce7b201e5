package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"plan-analyzer/internal/analyzer/handlers"
	"plan-analyzer/internal/analyzer/repository"
	"plan-analyzer/internal/analyzer/telemetry"
	"plan-analyzer/internal/common/config"
	"plan-analyzer/internal/common/middleware"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
)

// ============================================================
// Plan Analyzer Service
// ============================================================

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	cfg := config.Load()

	// ============================================================
	// Tracing
	// ============================================================

	tracer := telemetry.NoopTracer()
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := telemetry.Setup(context.Background())
		if err != nil {
			log.Fatalf("telemetry setup: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("telemetry shutdown: %v", err)
			}
		}()
		tracer = telemetry.Tracer("handlers")
	}

	// ============================================================
	// Storage
	// ============================================================

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(cfg.MigrationsPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Plan Analyzer",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := db.Ping(); err != nil {
			return c.Status(503).JSON(fiber.Map{"status": "db unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	registerRoutes(app, handlers.NewPlanHandler(repo, tracer))

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Plan Analyzer on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func registerRoutes(app *fiber.App, h *handlers.PlanHandler) {
	// ============================================================
	// Plan Storage Routes
	// ============================================================

	app.Post("/plans", h.CreatePlan)
	app.Get("/plans", h.ListPlans)
	app.Get("/plans/:id", h.GetPlan)
	app.Delete("/plans/:id", h.DeletePlan)

	// ============================================================
	// Analysis Routes
	// ============================================================

	app.Get("/plans/:id/report", h.Report)
	app.Get("/plans/:id/summary", h.Summary)
	app.Get("/plans/:id/validate", h.Validate)
	app.Get("/plans/:id/export", h.Export)

	app.Get("/plans/:id/rooms", h.Rooms)
	app.Get("/plans/:id/rooms/:roomID", h.GetRoom)
	app.Get("/plans/:id/rooms/:roomID/adjacent", h.AdjacentRooms)
	app.Post("/plans/:id/rooms/:roomID/move", h.MoveRoom)
	app.Post("/plans/:id/rooms/:roomID/resize", h.ResizeRoom)

	// ============================================================
	// Stateless Analysis Routes
	// ============================================================

	app.Post("/analyze/report", h.AnalyzeReport)
	app.Post("/analyze/validate", h.AnalyzeValidate)
	app.Post("/analyze/summary", h.AnalyzeSummary)
	app.Post("/analyze/export", h.AnalyzeExport)
}
