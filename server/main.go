package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/image2pdf/internal/config"
	"github.com/yourusername/image2pdf/internal/http/handlers"
	"github.com/yourusername/image2pdf/internal/http/routes"
	"github.com/yourusername/image2pdf/internal/services/convert"
	"github.com/yourusername/image2pdf/internal/services/session"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize services
	pipeline := convert.NewPipeline(cfg.Convert.PageDPI, logger)

	var store session.Store
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		store = session.NewRedisStore(cfg.Redis, cfg.Session.TTL)
		logger.Info("Using redis session store", zap.String("addr", cfg.Redis.Addr))
	default:
		store = session.NewMemoryStore()
		logger.Info("Using in-memory session store")
	}

	// Initialize handlers
	convertHandler := handlers.NewConvertHandler(pipeline, store, logger, cfg)

	router := routes.NewRouter(convertHandler, logger, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
