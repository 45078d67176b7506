package service

import (
	"context"
	"errors"
	"strings"

	"github.com/guttosm/b3rank/internal/domain/models"
	"github.com/guttosm/b3rank/internal/storage"
)

const (
	// DefaultLimit is applied when the caller does not ask for a page size.
	DefaultLimit = 30
	// MaxLimit caps a single response.
	MaxLimit = 500
)

// RankingQuery holds the optional filters of a ranking lookup.
type RankingQuery struct {
	Limit        int
	SmallCapOnly bool
	Sector       string
}

// RankingService defines business logic for reading persisted rankings.
//
// Both lookups return nil, nil when there is nothing to show (no run yet,
// or the ticker is not part of the latest run).
type RankingService interface {
	GetLatest(ctx context.Context, q RankingQuery) (*models.RankingRun, error)
	GetCompany(ctx context.Context, ticker string) (*models.Company, error)
}

type rankingService struct {
	repo storage.RankingRepository
}

func NewRankingService(repo storage.RankingRepository) RankingService {
	return &rankingService{repo: repo}
}

func (s *rankingService) GetLatest(ctx context.Context, q RankingQuery) (*models.RankingRun, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	run, err := s.repo.GetLatestRanking(ctx, storage.RankingFilter{
		Limit:        limit,
		SmallCapOnly: q.SmallCapOnly,
		Sector:       strings.TrimSpace(q.Sector),
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return run, err
}

func (s *rankingService) GetCompany(ctx context.Context, ticker string) (*models.Company, error) {
	c, err := s.repo.GetCompany(ctx, strings.ToUpper(strings.TrimSpace(ticker)))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return c, err
}
