package ranking

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/b3rank/internal/domain/models"
	"github.com/guttosm/b3rank/internal/logger"
)

// Enricher attaches per-ticker metadata (company name, sector, sub-sector and
// raw last-quote date) to every row.
type Enricher interface {
	Enrich(ctx context.Context, t Table) (Table, error)
}

// Pipeline turns a raw screener snapshot into the ranked table.
//
// Stage order is fixed:
//
//	normalize → enrich → derive valuation → remove stale → small-cap flag →
//	EV/EBIT rank → ROIC rank → magic rank → price to top N → sort
type Pipeline struct {
	Enricher          Enricher
	Now               func() time.Time
	SmallCapThreshold float64
	TopN              int
}

// NewPipeline returns a Pipeline with the default threshold, top size and clock.
func NewPipeline(enricher Enricher) *Pipeline {
	return &Pipeline{
		Enricher:          enricher,
		Now:               time.Now,
		SmallCapThreshold: DefaultSmallCapThreshold,
		TopN:              DefaultTopN,
	}
}

// Run executes every stage over raw. Any error aborts the run; no partial
// table is returned.
func (p *Pipeline) Run(ctx context.Context, raw models.RawTable) (Table, error) {
	start := time.Now()
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	topN := p.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	t, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	logger.L().Info().Int("raw_rows", len(raw.Rows)).Int("rows", len(t)).Msg("table normalized")

	if p.Enricher != nil {
		t, err = p.Enricher.Enrich(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("enrich: %w", err)
		}
	}

	t = DeriveValuation(t)

	runAt := now()
	before := len(t)
	t = RemoveStale(t, runAt)
	logger.L().Info().Int("dropped", before-len(t)).Int("rows", len(t)).Str("cutoff", Cutoff(runAt).String()).Msg("stale tickers removed")

	t = FlagSmallCaps(t, p.SmallCapThreshold)
	t = Rank(t)
	t = EstimatePriceToTop(t, topN)
	t = SortByMagicRank(t)

	logger.L().Info().
		Int("rows", len(t)).
		Strs("leaders", t[:min(len(t), 5)].Tickers()).
		Dur("elapsed", time.Since(start)).
		Msg("ranking computed")
	return t, nil
}
