package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resuminator/internal/api/middleware"
	"resuminator/internal/config"
	"resuminator/internal/metrics"
)

// NewRouter builds the Gin engine with the ambient middleware chain, the
// health check and the metrics endpoint. Routes are registered separately.
func NewRouter(cfg *config.Config, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.CorrelationIDMiddleware(),
		middleware.SlogLoggerMiddleware(logger),
		metrics.GinMiddleware(),
		gin.Recovery(),
	)

	// The frontend lives on another origin and authenticates via cookie,
	// so credentials must be allowed for exactly that origin.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.API.AllowedOrigin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
