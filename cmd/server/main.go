package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/internal/app/controller"
	"github.com/mariyae/catalog-backend/internal/app/repository"
	"github.com/mariyae/catalog-backend/internal/app/service"
	"github.com/mariyae/catalog-backend/internal/router"
	"github.com/mariyae/catalog-backend/internal/storage"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"github.com/mariyae/catalog-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})

	logger.Info("Starting catalog backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"db_driver":   cfg.Database.Driver,
	})

	// Open the configured store; the schema is bound once here
	repos, closeDB, err := repository.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := closeDB(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Redis is optional; without it lists are read straight from the store
	var cache *redis.Cache
	if cfg.Redis.Enabled() {
		c, closeCache, err := redis.Connect(&cfg.Redis)
		if err != nil {
			logger.Warn("Continuing without cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			cache = c
			defer closeCache()
		}
	}

	media := storage.NewS3MediaStore(cfg.Media)

	// Initialize services
	categoryService := service.NewCategoryService(repos.MainCategories, repos.SubCategories, cache)
	productService := service.NewProductService(repos.Products, media, cfg.Media.Namespace)
	bulkService := service.NewBulkService(repos.Products, cfg.Import.BatchSize)
	bannerService := service.NewBannerService(repos.Banners, media, cache, cfg.Media.Namespace)
	handpickedService := service.NewHandpickedService(repos.Handpicked, media, cache, cfg.Media.Namespace)
	uploadService := service.NewUploadService(cfg.Media, media)

	// Setup router
	r := router.NewRouter(
		controller.NewCategoryController(categoryService),
		controller.NewProductController(productService),
		controller.NewBulkController(bulkService),
		controller.NewBannerController(bannerService),
		controller.NewHandpickedController(handpickedService),
		controller.NewUploadController(uploadService),
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
