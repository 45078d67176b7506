package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/b3rank/internal/domain/models"
	"github.com/guttosm/b3rank/internal/export"
	"github.com/guttosm/b3rank/internal/logger"
	"github.com/guttosm/b3rank/internal/metadata"
	"github.com/guttosm/b3rank/internal/ranking"
	"github.com/guttosm/b3rank/internal/storage"
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.RankingRepository {
	return storage.NewRankingRepository(db)
}

// TableSource yields one raw screener snapshot.
type TableSource interface {
	FetchTable(ctx context.Context) (models.RawTable, error)
}

// ResultSink stages a finished ranking (CSV, JSON, ...). Staged output is
// published by the runner only after every other step has succeeded.
type ResultSink interface {
	Stage(ctx context.Context, t ranking.Table) (*export.Staged, error)
}

// Runner wires one end-to-end ranking run: fetch → pipeline → persist.
type Runner struct {
	Source   TableSource
	Pipeline *ranking.Pipeline
	Sinks    []ResultSink
	Repo     storage.RankingRepository // nil disables the database

	// Merger and CacheStore are optional; when both are set the merged
	// metadata cache is saved once the run has been persisted.
	Merger     *metadata.Merger
	CacheStore metadata.Store

	Now func() time.Time
}

// Result summarizes a run.
type Result struct {
	SnapshotDate time.Time
	RunID        string
	Rows         int
	Skipped      bool
}

// NewRunner builds a Runner. db may be nil to run without Postgres.
func NewRunner(source TableSource, pipeline *ranking.Pipeline, db *sql.DB, sinks ...ResultSink) *Runner {
	r := &Runner{Source: source, Pipeline: pipeline, Sinks: sinks, Now: time.Now}
	if db != nil {
		// use indirection to allow tests to swap repository constructor
		r.Repo = repoCtor(db)
	}
	return r
}

// Run executes one ranking.
//
// Behavior:
//   - The run belongs to the current B3 business day (SnapshotDay).
//   - With a repository, a day that already has a run is skipped unless force
//     is set; with force the previous run is replaced.
//   - Any fetch or pipeline error aborts before anything is written.
//   - Sinks stage their files concurrently, then the repository saves the run
//     in one transaction (replacing the day's run under force). Staged files
//     are published only after the commit; any earlier failure discards them
//     and leaves the previous outputs and run in place.
func (r *Runner) Run(ctx context.Context, force bool) (Result, error) {
	start := time.Now()
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	res := Result{SnapshotDate: SnapshotDay(now())}
	day := res.SnapshotDate.Format(models.DateLayout)

	exists := false
	if r.Repo != nil {
		var err error
		exists, err = r.Repo.HasRunForDate(ctx, res.SnapshotDate)
		if err != nil {
			logger.L().Error().Str("snapshot", day).Err(err).Msg("check run log failed")
			return res, fmt.Errorf("check existing run: %w", err)
		}
		if exists && !force {
			logger.L().Info().Str("snapshot", day).Bool("skipped", true).Msg("already ranked")
			res.Skipped = true
			return res, nil
		}
	}

	logger.L().Info().Str("snapshot", day).Bool("force", force).Msg("ranking run start")

	raw, err := r.Source.FetchTable(ctx)
	if err != nil {
		logger.L().Error().Err(err).Msg("screener fetch failed")
		return res, fmt.Errorf("fetch screener: %w", err)
	}

	table, err := r.Pipeline.Run(ctx, raw)
	if err != nil {
		logger.L().Error().Err(err).Msg("pipeline failed")
		return res, fmt.Errorf("pipeline: %w", err)
	}
	res.Rows = len(table)

	staged, err := r.stage(ctx, table)
	if err != nil {
		logger.L().Error().Str("snapshot", day).Err(err).Msg("staging outputs failed")
		return res, err
	}

	if r.Repo != nil {
		save := r.Repo.SaveRun
		if exists {
			save = r.Repo.ReplaceRun
		}
		id, err := save(ctx, res.SnapshotDate, table)
		if err != nil {
			discard(staged)
			logger.L().Error().Str("snapshot", day).Bool("replace", exists).Err(err).Msg("save run failed")
			return res, fmt.Errorf("save run: %w", err)
		}
		res.RunID = id
	}

	for i, st := range staged {
		if err := st.Commit(); err != nil {
			discard(staged[i+1:])
			logger.L().Error().Str("snapshot", day).Str("run_id", res.RunID).Err(err).Msg("publish outputs failed")
			return res, err
		}
	}

	if r.Merger != nil && r.CacheStore != nil {
		if err := r.CacheStore.Save(r.Merger.Cache); err != nil {
			return res, fmt.Errorf("save metadata cache: %w", err)
		}
	}

	logger.L().Info().
		Str("snapshot", day).
		Str("run_id", res.RunID).
		Int("rows", res.Rows).
		Dur("elapsed", time.Since(start)).
		Msg("ranking run done")
	return res, nil
}

// stage runs every sink concurrently. On error nothing staged survives.
func (r *Runner) stage(ctx context.Context, table ranking.Table) ([]*export.Staged, error) {
	staged := make([]*export.Staged, len(r.Sinks))

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	for i, sink := range r.Sinks {
		g.Go(func() error {
			st, err := sink.Stage(gctx, table)
			if err != nil {
				return err
			}
			staged[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		discard(staged)
		return nil, err
	}
	return staged, nil
}

func discard(staged []*export.Staged) {
	for _, st := range staged {
		st.Discard()
	}
}
