package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobby-s-dev/weather-lookup/internal/api"
	"github.com/bobby-s-dev/weather-lookup/internal/app"
	"github.com/bobby-s-dev/weather-lookup/internal/config"
	"github.com/bobby-s-dev/weather-lookup/internal/scheduler"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	level := zap.NewAtomicLevel()
	logConfig := zap.NewProductionConfig()
	logConfig.Level = level
	logger, _ := logConfig.Build()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Weather Lookup Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if err := level.UnmarshalText([]byte(cfg.Server.LogLevel)); err != nil {
		logger.Warn("Unknown log level, keeping info", zap.String("level", cfg.Server.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	weather, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize weather session", zap.Error(err))
	}
	defer weather.Close()

	// First fetch runs in the background so the server is reachable meanwhile
	go func() {
		label := weather.StartupFetch(ctx)
		logger.Info("Startup fetch finished",
			zap.String("label", label),
			zap.String("phase", string(weather.Session.Status().Phase)))
	}()

	var refresher *scheduler.Scheduler
	if cfg.Scheduler.RefreshSchedule != "" {
		refresher = scheduler.NewScheduler(weather.Session, cfg.Scheduler.RefreshSchedule, logger)
		if err := refresher.Start(); err != nil {
			logger.Fatal("Failed to start scheduler", zap.Error(err))
		}
	}

	// Create Fiber app
	server := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: api.ErrorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(weather.Session, weather.Credentials, weather.Feed, cfg.Location.Default, logger)
	api.SetupRoutes(server, handler, logger)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := server.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if refresher != nil {
		refresher.Stop()
	}

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
