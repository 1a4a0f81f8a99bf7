package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/artmart/backend/api/handlers"
	"github.com/artmart/backend/internal/artwork"
	"github.com/artmart/backend/internal/catalog"
	"github.com/artmart/backend/internal/collab"
	"github.com/artmart/backend/internal/db"
	"github.com/artmart/backend/internal/payment"
	"github.com/artmart/backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environment wins.
	_ = godotenv.Load()

	setupLogging()

	// Get configuration from environment
	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "data/artmart.db")
	metBaseURL := getEnv("MET_BASE_URL", artwork.DefaultBaseURL)
	blingBaseURL := getEnv("BLING_BASE_URL", payment.DefaultBaseURL)

	// Ensure the data directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	// Initialize database
	database, err := db.InitDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Load the product catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Initialize clients and repositories
	cartRepo := repository.NewCartRepository(database)
	artworks := artwork.NewClient(artwork.WithBaseURL(metBaseURL))
	payments := payment.NewClient(payment.WithBaseURL(blingBaseURL))

	// Initialize the shared framing session registry
	registry := collab.NewRegistry()

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(cat)
	artworkHandler := handlers.NewArtworkHandler(artworks)
	cartHandler := handlers.NewCartHandler(cartRepo, cat, artworks, payments)
	sharedHandler := handlers.NewSharedFramingHandler(collab.NewHandler(registry))

	// Initialize Gin router
	r := gin.Default()

	// Enable CORS for development
	r.Use(corsMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("")
	{
		catalogHandler.RegisterRoutes(api)
		artworkHandler.RegisterRoutes(api)
		cartHandler.RegisterRoutes(api)

		// WebSocket routes
		sharedHandler.RegisterRoutes(api)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
		db.CloseDB()
	}()

	// Start server
	slog.Info("starting server", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setupLogging configures the default slog logger from LOG_LEVEL.
func setupLogging() {
	level := slog.LevelInfo
	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// corsMiddleware returns a CORS middleware for development.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
