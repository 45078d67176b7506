package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3rank/config"
	"github.com/guttosm/b3rank/internal/api"
	"github.com/guttosm/b3rank/internal/service"
	"github.com/guttosm/b3rank/internal/storage"
)

// InitializeApp sets up the API dependencies and returns a configured Gin
// router, a cleanup function for graceful shutdown, and any initialization error.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Builds repository → service → handler → router.
//   - Registers health and readiness probes.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewRankingRepository(db)
	svc := service.NewRankingService(repo)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	api.NewHealthHandler(db.Ping).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
