// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Marga-Ghale/ora-member-service/internal/api"
	"github.com/Marga-Ghale/ora-member-service/internal/config"
	"github.com/Marga-Ghale/ora-member-service/internal/db"
	"github.com/Marga-Ghale/ora-member-service/internal/logger"
	"github.com/Marga-Ghale/ora-member-service/internal/notification"
	"github.com/Marga-Ghale/ora-member-service/internal/repository"
	"github.com/Marga-Ghale/ora-member-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	envErr := godotenv.Load()

	// ============================================
	// Load configuration
	// ============================================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Connect to MongoDB
	// ============================================
	mongoDB, err := db.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	repos := repository.NewRepositories(mongoDB.Database)

	// ============================================
	// Initialize Notification Dispatcher
	// ============================================
	notifier, strategy := notification.NewFromConfig(cfg, logger.Component("notification"))
	dispatcher := notification.NewDispatcher(notifier, notification.DispatcherConfig{
		Workers:   cfg.NotifyWorkers,
		QueueSize: cfg.NotifyQueueSize,
		Timeout:   cfg.NotifyTimeout,
	}, log.Logger)
	dispatcher.Start()
	log.Info().
		Str("strategy", strategy).
		Int("workers", cfg.NotifyWorkers).
		Msg("notification dispatcher started")

	// ============================================
	// Initialize Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:    cfg,
		Repos:     repos,
		Publisher: dispatcher,
	})

	router := api.NewRouter(&api.RouterDeps{
		Services:       services,
		DB:             mongoDB,
		Notifier:       strategy,
		AllowedOrigins: cfg.GetCORSAllowedOrigins(),
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := dispatcher.Stop(ctx); err != nil {
		log.Warn().Err(err).Msg("notification dispatcher did not drain in time")
	}
	mongoDB.Close(ctx)

	log.Info().Msg("server exited")
}
