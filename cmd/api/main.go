package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RISHIK92/vyapaar-backend/internal/cache"
	"github.com/RISHIK92/vyapaar-backend/internal/config"
	"github.com/RISHIK92/vyapaar-backend/internal/database"
	"github.com/RISHIK92/vyapaar-backend/internal/geocode"
	"github.com/RISHIK92/vyapaar-backend/internal/handlers"
	applogger "github.com/RISHIK92/vyapaar-backend/internal/logger"
	"github.com/RISHIK92/vyapaar-backend/internal/middleware"
	"github.com/RISHIK92/vyapaar-backend/internal/telemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

// @title Vyapaar API
// @version 1.0.0
// @description Geo-relevant listing and banner selection API
// @host api.vyapaar.example
// @BasePath /v1
// @schemes https
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	if err := applogger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer applogger.Sync()

	// Initialize OpenTelemetry Tracer
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tracerShutdown, err := telemetry.InitTracer(ctx, "vyapaar-api", cfg.SigNozEndpoint)
	if err != nil {
		log.Printf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if tracerShutdown == nil {
			return
		}
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// Initialize OpenTelemetry Metrics
	meterShutdown, err := telemetry.InitMeter(ctx, "vyapaar-api", cfg.SigNozEndpoint)
	if err != nil {
		log.Printf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if meterShutdown == nil {
			return
		}
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Error shutting down metrics: %v", err)
		}
	}()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	go database.StartConnectionPoolMetricsCollector(ctx, db.DB, 15*time.Second)

	// Location cache store for the coordinate resolver
	store := newCacheStore(ctx, cfg)
	resolver := geocode.New(cfg, store)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Vyapaar API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		TimeZone:   "Asia/Kolkata",
	}))
	app.Use(telemetry.New(telemetry.Config{
		ServiceName: "vyapaar-api",
	}))
	app.Use(middleware.PrometheusMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:     "Accept, Accept-Encoding, Authorization, Content-Type, DNT, Origin, User-Agent, X-Requested-With, X-API-Key",
		AllowCredentials: false,
		ExposeHeaders:    "Content-Length, Content-Type",
		MaxAge:           86400,
	}))

	// Setup routes
	setupRoutes(app, db, cfg, resolver)

	// Start server
	port := cfg.ServerPort
	if port == "" {
		port = "3000"
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newCacheStore picks the resolver cache backend. The in-memory store gets a
// periodic full sweep; Redis entries expire server-side.
func newCacheStore(ctx context.Context, cfg *config.Config) cache.Store {
	if cfg.CacheBackend == "redis" {
		store, err := cache.NewRedis(cfg)
		if err == nil {
			log.Println("Using Redis location cache")
			return store
		}
		log.Printf("Redis cache unavailable (%v), falling back to memory", err)
	}

	mem := cache.NewMemory()
	go mem.StartSweeper(ctx, cfg.EntityCacheTTL)
	return mem
}

func setupRoutes(app *fiber.App, db *database.DB, cfg *config.Config, resolver *geocode.Resolver) {
	// Health check endpoints for k8s probes
	app.Get("/healthz", handlers.HealthCheck)
	app.Get("/v1/healthz", handlers.HealthCheck)
	app.Get("/v1/health", handlers.HealthCheck)
	app.Get("/v1/readiness", handlers.ReadinessCheck(db))
	app.Get("/v1/liveness", handlers.LivenessCheck)

	// Prometheus scrape endpoint, private networks only
	app.Get("/metrics", middleware.InternalOnly(), middleware.PrometheusHandler())

	// API v1 group
	v1 := app.Group("/v1")

	// Listings routes (public)
	listings := v1.Group("/listings")
	handlers.SetupListingRoutes(listings, db, cfg, resolver)

	// Banners routes (public)
	banners := v1.Group("/banners")
	handlers.SetupBannerRoutes(banners, db, cfg, resolver)

	// Reference data routes (public)
	categories := v1.Group("/categories")
	handlers.SetupCategoryRoutes(categories, db)

	cities := v1.Group("/cities")
	handlers.SetupCityRoutes(cities, db)
}
