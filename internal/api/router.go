package api

import (
	"net/http"
	"strings"

	"dynamic-pricing/internal/api/handlers"
	"dynamic-pricing/internal/api/middleware"
	"dynamic-pricing/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options configures NewRouter.
type Options struct {
	MarketDir   string
	CORSOrigins string
	Cache       *data.SolveCache
	Log         zerolog.Logger
}

// NewRouter wires middleware, handlers and routes.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.Logger(opts.Log))
	router.Use(middleware.ErrorHandler(opts.Log))

	marketHandler := handlers.NewMarketHandler(opts.MarketDir, opts.Log)
	optimizeHandler := handlers.NewOptimizeHandler(marketHandler, opts.Cache, opts.Log)
	simulateHandler := handlers.NewSimulateHandler(marketHandler, opts.Log)
	curveHandler := handlers.NewCurveHandler(marketHandler)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"cached_solves": opts.Cache.Len(),
		})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/optimize", optimizeHandler.Optimize)
		api.GET("/optimize/:id/policy", optimizeHandler.GetPolicy)

		api.POST("/simulate", simulateHandler.Simulate)
		api.POST("/curve", curveHandler.Curve)

		api.GET("/strategies", strategyHandler.ListStrategies)
		api.GET("/markets", marketHandler.ListMarkets)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router
}
