package main

//
//  @title           salesdata API
//  @version         1.0
//  @description     Purchase count and revenue of store orders over a date range.
//  @termsOfService  https://github.com/guttosm/salesdata
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/salesdata
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        sales
//  @tag.description Sales summary over a date range
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/salesdata/config"
	_ "github.com/guttosm/salesdata/docs" // swagger docs
	"github.com/guttosm/salesdata/internal/app"
	"github.com/guttosm/salesdata/internal/ingestion"
	"github.com/guttosm/salesdata/internal/logger"
	"github.com/guttosm/salesdata/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runMigrations applies the embedded schema migrations to the configured database.
func runMigrations(ctx context.Context) error {
	db, err := app.InitPostgres(config.AppConfig)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return storage.Migrate(ctx, db)
}

// main is the entry point of the salesdata application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API exposing GET /api/v1/sales.
//   - migrate: Applies the embedded SQL migrations and exits.
//   - ingest:  Loads every DD-MM-YYYY_ORDERS.csv file of --dir into the order store.
//
// Flags:
//   - --mode:     Execution mode ("api", "migrate" or "ingest"). Default: "api".
//   - --dir:      Directory containing order export files. Default: "./data/input".
//   - --parallel: Files processed concurrently (0=auto up to CPU, max 8).
//   - --force:    Reload days already ingested.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	logger.Init(logger.Options{
		Level:   config.AppConfig.Log.Level,
		Pretty:  config.AppConfig.Log.Pretty,
		Service: "salesdata",
	})

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api, migrate or ingest")
	dir := flag.String("dir", "./data/input", "Directory with DD-MM-YYYY_ORDERS.csv files")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Reprocess days even if already ingested (deletes existing orders for that day)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "migrate":
		logger.L().Info().Msg("running migrations")
		if err := runMigrations(ctx); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}
		logger.L().Info().Msg("migrations applied")

	case "ingest":
		logger.L().Info().Msg("running ingestion")

		loc, err := config.AppConfig.Sales.Location()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("invalid sales timezone")
		}

		// Direct DB connection for ingestion
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := ingestion.ProcessDirectory(ctx, *dir, db, *parallel, *force, loc); err != nil {
			logger.L().Error().Err(err).Msg("ingestion failed")
			_ = db.Close()
			os.Exit(1)
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
