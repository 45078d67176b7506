package metadata

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/b3rank/internal/domain/models"
	"github.com/guttosm/b3rank/internal/logger"
	"github.com/guttosm/b3rank/internal/ranking"
)

// Source fetches metadata for a single ticker. Used only on cache miss.
type Source interface {
	FetchTicker(ctx context.Context, ticker string) (models.TickerMetadata, error)
}

// maxParallel caps concurrent fetches regardless of configuration.
const maxParallel = 8

// Merger attaches cached metadata to every row and fills the cache from
// Source for tickers it has not seen yet.
//
// The merger owns Cache for the duration of a run; callers save it once the
// run succeeds.
type Merger struct {
	Source   Source
	Cache    Cache
	Parallel int
}

func NewMerger(source Source, cache Cache, parallel int) *Merger {
	if cache == nil {
		cache = Cache{}
	}
	return &Merger{Source: source, Cache: cache, Parallel: parallel}
}

// Enrich implements ranking.Enricher.
//
// Behavior:
//   - Collects the distinct tickers missing from the cache.
//   - Fetches them concurrently (bounded by Parallel, default min(8, NumCPU)).
//   - Writes each successful fetch into the cache exactly once.
//   - A failed fetch leaves that ticker's metadata empty; the row is later
//     dropped by the staleness filter. Context cancellation aborts.
func (m *Merger) Enrich(ctx context.Context, t ranking.Table) (ranking.Table, error) {
	if m.Cache == nil {
		m.Cache = Cache{}
	}
	if err := m.fetchMissing(ctx, t); err != nil {
		return nil, err
	}

	out := t.Clone()
	for i := range out {
		md := m.Cache[out[i].Ticker]
		out[i].CompanyName = md.CompanyName
		out[i].Sector = md.Sector
		out[i].Subsector = md.Subsector
		out[i].LastQuote = md.LastQuote
	}
	return out, nil
}

func (m *Merger) missing(t ranking.Table) []string {
	seen := make(map[string]bool, len(t))
	var out []string
	for _, c := range t {
		if _, ok := m.Cache[c.Ticker]; ok || seen[c.Ticker] {
			continue
		}
		seen[c.Ticker] = true
		out = append(out, c.Ticker)
	}
	return out
}

func (m *Merger) parallelism() int {
	p := m.Parallel
	if p <= 0 {
		p = runtime.NumCPU()
	}
	if p > maxParallel {
		p = maxParallel
	}
	return p
}

func (m *Merger) fetchMissing(ctx context.Context, t ranking.Table) error {
	tickers := m.missing(t)
	logger.L().Info().Int("rows", len(t)).Int("cache_misses", len(tickers)).Msg("metadata merge start")
	if len(tickers) == 0 {
		return nil
	}
	if m.Source == nil {
		logger.L().Warn().Int("cache_misses", len(tickers)).Msg("no metadata source configured")
		return nil
	}

	var (
		mu     sync.Mutex
		failed int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.parallelism())

	for _, ticker := range tickers {
		g.Go(func() error {
			md, err := m.Source.FetchTicker(gctx, ticker)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				logger.L().Warn().Str("ticker", ticker).Err(err).Msg("metadata fetch failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			if md.Ticker == "" {
				md.Ticker = ticker
			}

			mu.Lock()
			m.Cache[ticker] = md
			mu.Unlock()
			logger.L().Debug().Str("ticker", ticker).Msg("metadata fetched")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.L().Info().Int("fetched", len(tickers)-failed).Int("failed", failed).Msg("metadata merge done")
	return nil
}
