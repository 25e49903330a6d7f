package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"dynamic-pricing/internal/api"
	"dynamic-pricing/internal/data"
	"dynamic-pricing/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const defaultCacheTTL = 30 * time.Minute

func main() {
	// .env is optional; real environment variables take precedence.
	envErr := godotenv.Load()

	pretty, _ := strconv.ParseBool(os.Getenv("LOG_PRETTY"))
	log := logger.New(logger.Config{Level: os.Getenv("LOG_LEVEL"), Pretty: pretty})
	if envErr != nil && !os.IsNotExist(envErr) {
		log.Warn().Err(envErr).Msg("failed to read .env")
	}

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	ttl := defaultCacheTTL
	if v := os.Getenv("SOLVE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatal().Err(err).Str("SOLVE_CACHE_TTL", v).Msg("invalid cache ttl")
		}
		ttl = d
	}
	cache := data.NewSolveCache(ttl)
	defer cache.Close()

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Options{
		MarketDir:   os.Getenv("MARKET_DIR"),
		CORSOrigins: os.Getenv("CORS_ORIGINS"),
		Cache:       cache,
		Log:         log,
	})

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Dur("cache_ttl", ttl).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
