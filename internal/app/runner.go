package app

import (
	"database/sql"
	"net/http"

	"github.com/guttosm/b3rank/config"
	"github.com/guttosm/b3rank/internal/export"
	"github.com/guttosm/b3rank/internal/fundamentus"
	"github.com/guttosm/b3rank/internal/ingestion"
	"github.com/guttosm/b3rank/internal/metadata"
	"github.com/guttosm/b3rank/internal/ranking"
)

// RankOptions selects the inputs of a rank-mode run.
type RankOptions struct {
	// InputFile, when set, replaces the screener download with a saved export.
	InputFile string
	// Parallel overrides FETCH_PARALLEL when positive.
	Parallel int
}

// NewRankRunner wires one ranking run from configuration:
//
//	fundamentus (or file) → metadata cache + merger → pipeline → CSV/JSON sinks (+ Postgres when db != nil)
func NewRankRunner(cfg config.Config, db *sql.DB, opts RankOptions) *ingestion.Runner {
	client := fundamentus.NewClient(
		fundamentus.WithBaseURL(cfg.Fundamentus.BaseURL),
		fundamentus.WithUserAgent(cfg.Fundamentus.UserAgent),
		fundamentus.WithRateLimit(cfg.Fundamentus.RateLimit),
		fundamentus.WithHTTPClient(&http.Client{Timeout: cfg.Fundamentus.Timeout}),
	)

	parallel := cfg.Fundamentus.Parallel
	if opts.Parallel > 0 {
		parallel = opts.Parallel
	}

	store := metadata.NewFileStore(cfg.Storage.CacheFile)
	merger := metadata.NewMerger(client, store.Load(), parallel)

	pipeline := ranking.NewPipeline(merger)
	pipeline.SmallCapThreshold = cfg.Ranking.SmallCapThreshold
	pipeline.TopN = cfg.Ranking.TopN

	var source ingestion.TableSource = client
	if opts.InputFile != "" {
		source = ingestion.NewFileSource(opts.InputFile)
	}

	r := ingestion.NewRunner(source, pipeline, db,
		export.NewCSVSink(cfg.Storage.OutputDir),
		export.NewJSONSink(cfg.Storage.OutputDir),
	)
	r.Merger = merger
	r.CacheStore = store
	return r
}
