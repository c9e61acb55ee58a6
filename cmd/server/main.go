package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	httpapi "aubri-backend/internal/api/http"
	"aubri-backend/internal/cache"
	"aubri-backend/internal/config"
	"aubri-backend/internal/identity"
	"aubri-backend/internal/logger"
	"aubri-backend/internal/moderation"
	"aubri-backend/internal/repository/postgres"
	"aubri-backend/internal/security"
	"aubri-backend/internal/service"
	"aubri-backend/internal/validator"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Aubri backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "allowed_origins", cfg.Server.AllowedOrigins)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db, cfg.QueryTimeout())

	// Redis is optional; without it the listing cache and revocations stay in
	// process memory.
	listingCache := cache.NewMemoryCache(cfg.ListingCacheTTL())
	revocations := identity.NewMemoryRevocations()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unavailable, using in-process cache", "addr", cfg.Redis.Addr, "error", err)
		} else {
			logger.Info("Redis connection established", "addr", cfg.Redis.Addr)
			listingCache = cache.NewRedisCache(rdb, cfg.ListingCacheTTL())
			revocations = cache.NewRedisRevocations(rdb)
		}
	}

	// Email
	var emailSvc service.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailSvc = service.NewSendGridService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Info("SendGrid api key not set, moderation emails are logged only")
		emailSvc = service.NewLogEmailService()
	}

	// Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())
	authority := identity.NewLocalAuthority(store.ProfileRepository, tokenManager, revocations)

	// Services
	validate := validator.New()
	workflow := moderation.NewWorkflow(cfg.ReversalAllowed())

	authSvc := service.NewAuthService(authority, store.ProfileRepository, validate)
	listingSvc := service.NewListingService(
		store.PropertyRepository,
		store.ProfileRepository,
		listingCache,
		emailSvc,
		workflow,
		validate,
	)
	bookingSvc := service.NewBookingService(store.BookingRepository, store.PropertyRepository, validate)
	dashboardSvc := service.NewDashboardService(listingSvc, bookingSvc)

	handler := httpapi.NewRouter(httpapi.Services{
		Auth:      authSvc,
		Listing:   listingSvc,
		Booking:   bookingSvc,
		Dashboard: dashboardSvc,
		Health:    store,
	}, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Error during server shutdown", "error", err)
	}
	logger.Info("Server gracefully stopped")
}
