package main

import (
	"net/http"
	"os"

	"dog-walk-service/config"
	"dog-walk-service/handlers"
	"dog-walk-service/lifecycle"
	"dog-walk-service/routes"
	"dog-walk-service/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	if cfg.GinMode == "" {
		gin.SetMode(gin.DebugMode)
	}

	db, err := config.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Str("db", cfg.DBPath).Msg("database connected and migrated")

	h := handlers.New(db, lifecycle.New(db), session.NewMemoryStore(), cfg.JWTSecret)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Dog Walk Service API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🐕 Welcome to the Dog Walk Service API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"owner", "walker"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, h)

	log.Info().Str("port", cfg.Port).Msg("server running")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
