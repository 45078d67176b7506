package main

//
//  @title           b3rank API
//  @version         1.0
//  @description     Magic formula ranking of B3 listed companies.
//  @termsOfService  https://github.com/guttosm/b3rank
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/b3rank
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        ranking
//  @tag.description Magic formula ranking of B3 companies
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/b3rank/config"
	_ "github.com/guttosm/b3rank/docs" // swagger docs
	"github.com/guttosm/b3rank/internal/app"
	"github.com/guttosm/b3rank/internal/logger"
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

// runRank executes one ranking run and returns once it is persisted.
// db may be nil, in which case only the CSV/JSON outputs are written.
func runRank(ctx context.Context, db *sql.DB, opts app.RankOptions, force bool) error {
	runner := app.NewRankRunner(config.AppConfig, db, opts)
	res, err := runner.Run(ctx, force)
	if err != nil {
		return err
	}
	logger.L().Info().
		Str("snapshot", res.SnapshotDate.Format("2006-01-02")).
		Str("run_id", res.RunID).
		Int("rows", res.Rows).
		Bool("skipped", res.Skipped).
		Msg("rank completed")
	return nil
}

// main is the entry point of the b3rank application.
//
// Modes (selected via --mode flag):
//   - rank: Scrapes Fundamentus, ranks every company and writes CSV/JSON (+ Postgres).
//   - api:  Starts the REST API over the latest persisted ranking.
//
// Flags:
//   - --mode:     Execution mode ("rank" or "api"). Default: "rank".
//   - --force:    Rank again even if today's run already exists.
//   - --parallel: Concurrent detail-page fetches (0 = FETCH_PARALLEL).
//   - --input:    Saved screener export (';' separated) used instead of the live page.
//   - --no-db:    Rank without Postgres.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "rank", "Mode: rank or api")
	force := flag.Bool("force", false, "Rank again even if a run already exists for today (replaces it)")
	parallel := flag.Int("parallel", 0, "How many detail pages to fetch concurrently (0=config)")
	input := flag.String("input", "", "Screener export to rank instead of downloading it")
	noDB := flag.Bool("no-db", false, "Skip Postgres; write only CSV/JSON outputs")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "rank":
		logger.L().Info().Bool("force", *force).Str("input", *input).Msg("running ranking")

		var db *sql.DB
		if !*noDB {
			var err error
			db, err = app.InitPostgres(config.AppConfig)
			if err != nil {
				logger.L().Fatal().Err(err).Msg("db connect error")
			}
			defer func() { _ = db.Close() }()
		}

		runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		err := runRank(runCtx, db, app.RankOptions{InputFile: *input, Parallel: *parallel}, *force)
		stop()
		if err != nil {
			logger.L().Error().Err(err).Msg("ranking failed")
			if db != nil {
				_ = db.Close()
			}
			os.Exit(1)
		}

	case "api":
		// API mode: start the HTTP server
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
