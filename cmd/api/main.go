package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docreview/docs"
	"docreview/internal/config"
	handlers "docreview/internal/http/handler"
	"docreview/internal/http/middleware"
	"docreview/internal/model"
	"docreview/internal/otel"
	"docreview/internal/repository/jsonfile"
	"docreview/internal/service"
	"docreview/internal/storage"
)

// @title Document Review API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Document store backend: local directory tree by default, MinIO when
	// STORAGE_BACKEND=s3.
	var store storage.DocumentStore
	switch cfg.Store.Backend {
	case "s3":
		store, err = storage.NewMinIO(cfg.MinIO, cfg.Review.Categories)
	default:
		store, err = storage.NewFilesystem(cfg.Store.DataDir, cfg.Review.Categories)
	}
	if err != nil {
		log.Fatalf("failed to initialize document store: %v", err)
	}

	// The ledger blobs always live in the local data dir; they are the
	// source of truth for review state.
	ledger, err := jsonfile.NewLedgerJSONFile(cfg.Store.DataDir, cfg.Review.Categories)
	if err != nil {
		log.Fatalf("failed to initialize review ledger: %v", err)
	}

	reviewSvc, err := service.NewReviewService(store, ledger, cfg.Review.Categories, model.ReviewStatus(cfg.Review.DefaultState))
	if err != nil {
		log.Fatalf("failed to initialize review service: %v", err)
	}
	ingestSvc := service.NewIngestService(store)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		UnescapePath: true,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	promMw, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMw.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, store, reviewSvc, ingestSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
