package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cs2-inventory-api/internal/cache"
	"cs2-inventory-api/internal/config"
	"cs2-inventory-api/internal/handler"
	"cs2-inventory-api/internal/router"
	"cs2-inventory-api/internal/service"
	"cs2-inventory-api/internal/steam"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting CS2 Inventory API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize cache store based on config
	var store cache.Cache
	if cfg.Cache.IsRedis() {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:      cfg.Cache.RedisAddress(),
			Password:  cfg.Cache.RedisPassword,
			DB:        cfg.Cache.RedisDB,
			KeyPrefix: cfg.Cache.RedisKeyPrefix,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Redis cache: %v", err)
		}
		store = redisCache
		log.Println("Redis cache initialized")
	} else {
		store = cache.NewMemoryCache(cfg.Cache.SweepInterval)
		log.Println("Memory cache initialized")
	}
	defer store.Close()

	// Initialize upstream client and services
	steamClient := steam.NewClient(steam.ClientConfig{
		BaseURL:   cfg.Steam.BaseURL(),
		Timeout:   cfg.Steam.Timeout,
		ItemCount: cfg.Steam.ItemCount,
	})
	log.Printf("Steam inventory endpoint: %s (timeout %v)", cfg.Steam.BaseURL(), cfg.Steam.Timeout)

	inventoryService := service.NewInventoryService(steamClient, store, service.InventoryServiceConfig{
		CacheTTL: cfg.Cache.TTL,
		IconBase: cfg.Steam.IconBase,
		Coalesce: cfg.Cache.Coalesce,
	})

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Name, cfg.App.Version, store)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	adminHandler := handler.NewAdminHandler(inventoryService, cfg.Cache.Type)

	if len(cfg.Admin.APIKeys) == 0 {
		log.Println("Warning: ADMIN_API_KEYS not set, admin endpoints will reject all requests")
	}

	// Create router
	r := router.New(router.Config{
		Handler:          healthHandler,
		InventoryHandler: inventoryHandler,
		AdminHandler:     adminHandler,
		AdminAPIKeys:     cfg.Admin.APIKeys,
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	fmt.Println("Goodbye!")
}
