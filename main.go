package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oh-crepe-api/cache"
	"oh-crepe-api/config"
	"oh-crepe-api/logger"
	"oh-crepe-api/middleware"
	"oh-crepe-api/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	db, err := config.OpenDB(cfg.Database, zl)
	if err != nil {
		zl.Fatal("Failed to open database", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	menuCache := newMenuCache(cfg.Redis, zl)
	defer menuCache.Close()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(zl), middleware.CORS(cfg.Server.CORSOrigins))
	if err := routes.SetupRoutes(r, db, cfg, zl, menuCache); err != nil {
		zl.Fatal("Failed to set up routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		zl.Info("Server running", zap.String("addr", "http://localhost:"+cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		zl.Info("Received shutdown signal")
	case err := <-serverErr:
		zl.Fatal("Server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Graceful shutdown failed", zap.Error(err))
	}
	zl.Info("Server stopped")
}

// newMenuCache connects to Redis when configured. Without it, or when the
// server is unreachable, menu reads go straight to the database.
func newMenuCache(cfg config.RedisConfig, zl *zap.Logger) cache.Cache {
	if cfg.URL == "" {
		return cache.Nop{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := cache.NewRedis(ctx, cfg.URL, cfg.MenuTTL)
	if err != nil {
		zl.Warn("Menu cache disabled", zap.Error(err))
		return cache.Nop{}
	}
	zl.Info("Menu cache enabled", zap.Duration("ttl", cfg.MenuTTL))
	return c
}
