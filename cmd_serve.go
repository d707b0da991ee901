package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/appLSI/decentralized-rental-app-sub000/clients"
	"github.com/appLSI/decentralized-rental-app-sub000/consumers"
	"github.com/appLSI/decentralized-rental-app-sub000/controllers"
	"github.com/appLSI/decentralized-rental-app-sub000/repositories"
	"github.com/appLSI/decentralized-rental-app-sub000/services"
	"github.com/appLSI/decentralized-rental-app-sub000/stores"
	"github.com/appLSI/decentralized-rental-app-sub000/wizard"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// ============================================
	// 1. CONFIGURACIÓN
	// ============================================
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info().
		Str("port", cfg.Port).
		Str("listings_api", cfg.ListingsAPIURL).
		Str("auth_api", cfg.AuthAPIURL).
		Str("memcached", cfg.MemcachedHost).
		Msg("Configuration loaded")

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// 2. CLIENTES UPSTREAM Y CACHÉ
	// ============================================
	listingsClient := clients.NewListingsClient(cfg.ListingsAPIURL, cfg.HTTPTimeout)
	usersClient := clients.NewUsersClient(cfg.AuthAPIURL, cfg.HTTPTimeout)
	bookingsClient := clients.NewBookingsClient(cfg.BookingsAPIURL, cfg.HTTPTimeout)

	var predictor wizard.PricePredictor
	if cfg.PredictionAPIURL != "" {
		predictor = clients.NewPredictionClient(cfg.PredictionAPIURL, cfg.HTTPTimeout)
	}

	cacheRepo := repositories.NewCacheRepository(cfg.MemcachedHost)

	// ============================================
	// 3. MYSQL (opcional, búsquedas guardadas)
	// ============================================
	var savedSearchService services.SavedSearchService
	if cfg.Database.Enabled {
		log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.Name).Msg("Connecting to MySQL")
		db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
		if err != nil {
			return err
		}
		if err := repositories.Migrate(db); err != nil {
			return err
		}
		savedSearchService = services.NewSavedSearchService(repositories.NewSavedSearchRepository(db))
		log.Info().Msg("Saved searches enabled")
	}

	// ============================================
	// 4. SERVICIOS Y SESIONES
	// ============================================
	propertyService := services.NewPropertyService(listingsClient, cacheRepo)
	catalogService := services.NewCatalogService(listingsClient, cacheRepo, cfg.CatalogTTL)
	userService := services.NewUserService(usersClient)
	bookingService := services.NewBookingService(bookingsClient, propertyService)

	sessions := stores.NewSessionStore(propertyService, userService, bookingService, cfg.SessionTTL)
	defer sessions.Close()

	// ============================================
	// 5. CONSUMER DE EVENTOS (opcional)
	// ============================================
	var consumer *consumers.RabbitMQConsumer
	if cfg.EnableEvents {
		handler := consumers.NewCacheInvalidator(propertyService, sessions)
		consumer, err = consumers.NewRabbitMQConsumer(cfg.RabbitMQURL, cfg.RabbitMQQueue, handler)
		if err != nil {
			return err
		}
		if err := consumer.Start(); err != nil {
			consumer.Close()
			return err
		}
	}

	// ============================================
	// 6. ROUTER
	// ============================================
	var wizardOpts []wizard.Option
	if !cfg.WizardPricingStep {
		wizardOpts = append(wizardOpts, wizard.WithoutPricing())
	}

	router := controllers.NewRouter(controllers.RouterConfig{
		Properties:   propertyService,
		Catalog:      catalogService,
		Users:        userService,
		Bookings:     bookingService,
		SavedSearch:  savedSearchService,
		Predictor:    predictor,
		Sessions:     sessions,
		JWTSecret:    cfg.JWTSecret,
		ImageBaseURL: cfg.ImageBaseURL,
		WizardOpts:   wizardOpts,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// ============================================
	// 7. ARRANCAR Y ESPERAR SEÑALES
	// ============================================
	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
		log.Info().Msg("Shutting down")
	case runErr = <-serverErr:
		log.Error().Err(runErr).Msg("HTTP server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error shutting down server")
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing RabbitMQ consumer")
		}
	}

	log.Info().Msg("Shutdown complete")
	return runErr
}
