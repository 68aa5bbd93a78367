package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shophub/cart-service/internal/config"
	"github.com/shophub/cart-service/internal/handlers"
	"github.com/shophub/cart-service/internal/middleware"
	"github.com/shophub/cart-service/internal/notify"
	"github.com/shophub/cart-service/internal/repository"
	"github.com/shophub/cart-service/internal/service"
	"github.com/shophub/cart-service/pkg/localstore"
	"github.com/shophub/cart-service/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting shopping cart api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"data_dir", cfg.Store.DataDir,
	)

	// Open the persisted store backing the repositories
	store, err := localstore.New(cfg.Store.DataDir)
	if err != nil {
		log.Error("failed to open local store", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	productRepo, err := repository.NewLocalProductRepository(store)
	if err != nil {
		log.Error("failed to initialize product repository", "error", err)
		os.Exit(1)
	}
	couponRepo, err := repository.NewLocalCouponRepository(store)
	if err != nil {
		log.Error("failed to initialize coupon repository", "error", err)
		os.Exit(1)
	}

	// Notification feed for user-facing messages
	feed := notify.NewFeed(50)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, feed)
	cartService := service.NewCartService(productRepo, couponRepo, feed)
	couponService := service.NewCouponService(couponRepo, cartService, feed)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(catalogService, log)
	couponHandler := handlers.NewCouponHandler(couponService, log)
	cartHandler := handlers.NewCartHandler(cartService, log)
	adminHandler := handlers.NewAdminHandler(catalogService, couponService, log)
	notificationHandler := handlers.NewNotificationHandler(feed)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{productID}", productHandler.GetProduct)

		// Coupon endpoints
		r.Get("/coupons", couponHandler.ListCoupons)
		r.Get("/coupons/{code}", couponHandler.GetCoupon)

		// Notification feed
		r.Get("/notifications", notificationHandler.ListNotifications)

		// Cart endpoints
		r.Route("/carts", func(r chi.Router) {
			r.Post("/", cartHandler.CreateCart)
			r.Get("/{cartID}", cartHandler.GetCart)
			r.Post("/{cartID}/items", cartHandler.AddItem)
			r.Put("/{cartID}/items/{productID}", cartHandler.UpdateQuantity)
			r.Delete("/{cartID}/items/{productID}", cartHandler.RemoveItem)
			r.Post("/{cartID}/coupon", cartHandler.ApplyCoupon)
			r.Delete("/{cartID}/coupon", cartHandler.ClearCoupon)
			r.Post("/{cartID}/checkout", cartHandler.Checkout)
		})

		// Admin endpoints, API-key protected
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Post("/products", adminHandler.CreateProduct)
			r.Put("/products/{productID}", adminHandler.UpdateProduct)
			r.Delete("/products/{productID}", adminHandler.DeleteProduct)
			r.Post("/coupons", adminHandler.CreateCoupon)
			r.Delete("/coupons/{code}", adminHandler.DeleteCoupon)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
