package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"io.winapps.adminconsole/internal/config"
	"io.winapps.adminconsole/internal/db"
	firebaseutil "io.winapps.adminconsole/internal/firebase"
	"io.winapps.adminconsole/internal/handlers"
	"io.winapps.adminconsole/internal/logging"
	"io.winapps.adminconsole/internal/middleware"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Firebase
	firebaseApp, err := firebaseutil.InitFirebase()
	if err != nil {
		logger.Fatalw("failed to initialize Firebase", "error", err)
	}
	idTokenVerifier, err := firebaseutil.NewIDTokenVerifier(firebaseApp)
	if err != nil {
		logger.Fatalw("failed to initialize Firebase token verifier", "error", err)
	}

	// Initialize PostgreSQL
	postgresDB, err := db.InitPostgres()
	if err != nil {
		logger.Fatalw("failed to initialize PostgreSQL", "error", err)
	}
	defer postgresDB.Close()

	// Initialize Redis
	redisClient, err := db.InitRedis()
	if err != nil {
		logger.Fatalw("failed to initialize Redis", "error", err)
	}
	defer redisClient.Close()

	presetStore := db.NewPresetRepository(postgresDB, redisClient, cfg.PresetCacheTTL)
	tokenResolver := middleware.ResolverChain{
		db.NewTokenRepository(postgresDB, redisClient),
		idTokenVerifier,
	}

	// Initialize Gin router
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(
		middleware.RequestIDMiddleware(),
		middleware.RequestLoggingMiddleware(logger),
		middleware.RecoveryMiddleware(logger),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigin),
	)

	// Initialize handlers
	filtersHandler := handlers.NewFiltersHandler(logger)
	presetsHandler := handlers.NewPresetsHandler(presetStore, logger)

	retention := handlers.NewPresetRetention(presetStore, logger, cfg.PresetRetention(), cfg.PresetPurgeSchedule)
	if err := retention.Start(); err != nil {
		logger.Fatalw("failed to start preset retention", "error", err)
	}

	// Define routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/filters/count", filtersHandler.CountFilters)

		// Protected preset routes
		presets := v1.Group("/presets")
		presets.Use(middleware.AuthMiddleware(tokenResolver))
		{
			presets.POST("/save-preset", presetsHandler.SavePreset)
			presets.POST("/list-presets", presetsHandler.ListPresets)
			presets.POST("/get-preset", presetsHandler.GetPreset)
			presets.POST("/update-preset", presetsHandler.UpdatePreset)
			presets.POST("/delete-preset", presetsHandler.DeletePreset)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infow("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infow("shutting down server")

	retention.Stop()

	// Give a 5 second timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorw("server forced to shutdown", "error", err)
		return
	}

	logger.Infow("server exited")
}
