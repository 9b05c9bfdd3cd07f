package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"klontong/internal/config"
	"klontong/internal/handlers"
	"klontong/internal/repositories"
	"klontong/internal/services"
	"klontong/pkg/httpclient"
	"klontong/pkg/localstore"
	"klontong/pkg/logging"
	"klontong/pkg/query"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logging.NewLogger(cfg.App.LogPath, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck
	sugar := zapLogger.Sugar()

	// --- Local storage (session persistence) ---
	store, err := localstore.New(cfg.App.StoragePath)
	if err != nil {
		sugar.Fatalw("failed to initialize local storage", "error", err)
	}

	// --- Query cache ---
	// A broken persister only costs the warm start, so the app keeps
	// running without one.
	cache := query.NewClient(query.Options{
		StaleTime: cfg.Cache.StaleTime,
		GCTime:    cfg.Cache.GCTime,
		Retry:     cfg.Cache.Retry,
	}, buildPersister(cfg, sugar), sugar)
	if err := cache.Restore(context.Background()); err != nil {
		sugar.Warnw("starting with a cold cache", "error", err)
	}

	// --- API client and repositories ---
	apiClient, err := httpclient.NewClient(httpclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize API client", "error", err)
	}

	productRepo := repositories.NewRESTProductRepository(apiClient)
	userRepo := repositories.NewRESTUserRepository(apiClient)

	// --- Services ---
	authService := services.NewAuthService(userRepo, store, cfg.Admin.Email, cfg.Admin.Password, sugar)
	authService.InitializeAuth()
	productService := services.NewProductService(productRepo, cache)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, authService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	// --- Routes ---
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/products")
	})
	authHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)

	// Catch-all: anything that matched nothing above is the not-found
	// screen.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"screen":  "not-found",
			"message": "Not Found",
		})
	})

	// --- Start server with graceful shutdown ---
	sugar.Infow("starting app", "port", cfg.App.Port, "backend", cfg.API.BaseURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.App.Port); err != nil {
			sugar.Fatalw("server failed to start", "error", err)
		}
	}()

	<-quit
	sugar.Info("shutting down")

	if err := app.Shutdown(); err != nil {
		sugar.Errorw("error during shutdown", "error", err)
	}

	sugar.Info("stopped")
}

// buildPersister selects the cache snapshot backend. Failures degrade to
// an in-memory-only cache rather than aborting startup.
func buildPersister(cfg *config.Config, sugar *zap.SugaredLogger) query.Persister {
	switch cfg.Cache.Backend {
	case "sqlite":
		persister, err := query.NewSQLiteStore(filepath.Join(cfg.App.StoragePath, "query-cache.db"))
		if err != nil {
			sugar.Warnw("snapshot store unavailable, caching in memory only", "error", err)
			return nil
		}
		return persister
	case "redis":
		persister, err := query.NewRedisStore(cfg.Cache.RedisURL)
		if err != nil {
			sugar.Warnw("redis unavailable, caching in memory only", "error", err)
			return nil
		}
		return persister
	case "none":
		return nil
	default:
		sugar.Warnw("unknown cache backend, caching in memory only", "backend", cfg.Cache.Backend)
		return nil
	}
}
