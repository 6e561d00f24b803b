package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"lexcite/internal/config"
	"lexcite/internal/handlers"
	"lexcite/internal/middleware"
	"lexcite/pkg/citation"
	"lexcite/pkg/citation/registry"
	"lexcite/pkg/ledger"
	"lexcite/pkg/monitoring"
	"lexcite/pkg/pipeline"
	"lexcite/pkg/search"
	"lexcite/pkg/search/client"
	"lexcite/pkg/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg(".env file not found or could not be loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	configureLogging(cfg)

	tables, err := registry.DefaultTables()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load citation data tables")
	}
	engine, err := citation.NewEngine(tables)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build citation engine")
	}
	pool := pipeline.New(engine, citation.Options{}, cfg.Processing.MaxWorkers)
	metrics := monitoring.New()

	ledgerStore, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open ledger")
	}
	defer ledgerStore.Close()

	storageSvc, err := storage.NewS3Store(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("S3 storage unavailable, running without storage")
		storageSvc = nil
	}

	searchSvc := newSearchService(cfg)
	if searchSvc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := search.EnsureIndex(ctx, searchSvc); err != nil {
			log.Warn().Err(err).Msg("failed to ensure citation search index")
		}
		cancel()
	}

	app := fiber.New(fiber.Config{
		ServerHeader: "lexcite",
		AppName:      "lexcite citation engine v1.0",
		ErrorHandler: fiberErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.Metrics(metrics))
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,X-HTTP-Method-Override",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length,Content-Type,X-Total-Count",
	}))
	app.Use(middleware.RateLimit(middleware.NewRateLimiterStorage(float64(cfg.Server.RateLimitPerMin)/60, cfg.Server.RateLimitPerMin)))

	citationHandler := handlers.NewCitationHandler(engine, pool, storageOrNilService(storageSvc), searchSvc, ledgerStore, metrics)
	healthHandler := handlers.NewHealthHandler(storageOrNilService(storageSvc), searchSvc, metrics)

	app.Get("/", healthHandler.Root)
	app.Get("/healthz", healthHandler.Health)
	app.Get("/healthz/detail", healthHandler.DetailedStatus)
	app.Get("/readyz", healthHandler.ReadinessCheck)
	app.Get("/livez", healthHandler.LivenessCheck)
	app.Get("/metrics", healthHandler.PrometheusMetrics)
	app.Get("/metrics.json", healthHandler.Metrics)

	api := app.Group("/api/v1")
	api.Post("/extract", citationHandler.Extract)
	api.Post("/extract/batch", citationHandler.ExtractBatch)

	protected := api.Group("", middleware.JWT(cfg.Auth.JWTSecret))
	protected.Post("/annotate", citationHandler.Annotate)
	protected.Post("/resolve", citationHandler.Resolve)

	pruneCron := cron.New()
	if _, err := pruneCron.AddFunc("@every "+cfg.Ledger.PruneEvery.String(), func() {
		pruned, err := ledgerStore.Prune(cfg.Ledger.PruneTTL)
		if err != nil {
			log.Error().Err(err).Msg("ledger prune failed")
			return
		}
		metrics.RecordLedgerPrune()
		log.Info().Int64("pruned", pruned).Msg("ledger prune complete")
	}); err != nil {
		log.Error().Err(err).Msg("failed to schedule ledger prune")
	}
	pruneCron.Start()
	defer pruneCron.Stop()

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

func configureLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Logging.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func newSearchService(cfg *config.Config) search.Service {
	osClient, err := client.NewClient(&cfg.OpenSearch)
	if err != nil {
		log.Warn().Err(err).Msg("OpenSearch unavailable, citation indexing disabled")
		return nil
	}
	return search.NewService(osClient)
}

// storageOrNilService turns a possibly-nil *storage.S3Store into a
// possibly-nil storage.Service without a (*S3Store)(nil) typed-nil
// interface leaking through.
func storageOrNilService(s *storage.S3Store) storage.Service {
	if s == nil {
		return nil
	}
	return s
}

func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Error().Err(err).Str("path", c.Path()).Int("status", code).Msg("request error")
	return c.Status(code).JSON(fiber.Map{"success": false, "error": err.Error()})
}
