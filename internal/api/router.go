package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salesdata/config"
	"github.com/guttosm/salesdata/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultRatePerMinute  = 60
)

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds the per request timeout (cfg.RequestTimeout, 10s when unset).
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg config.ServerConfig) *gin.Engine {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = defaultRatePerMinute
	}

	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(perMinute),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(middleware.Timeout(timeout))

	// ─── Swagger & metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/sales", handler.GetSalesData)
	}

	return router
}
