package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/salesdata/config"
	"github.com/guttosm/salesdata/internal/api"
	"github.com/guttosm/salesdata/internal/service"
	"github.com/guttosm/salesdata/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Resolves the sales timezone from config.
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the order store (OrdersRepository) with the backend role.
//   - Creates the sales service and the HTTP handler layer.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	loc, err := cfg.Sales.Location()
	if err != nil {
		return nil, nil, err
	}

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Order store, read with the backend role when one is configured
	repo := storage.NewOrdersRepository(db, cfg.Postgres.BackendRole)

	svc := service.NewSalesService(repo)

	handler := api.NewHandler(svc, loc, cfg.Sales.MaxRangeDays)

	router := api.NewRouter(handler, cfg.Server)

	healthHandler := api.NewHealthHandler(db.PingContext)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
