package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/b3rank/internal/domain/models"
	"github.com/guttosm/b3rank/internal/storage"
)

type stubRepo struct {
	run     *models.RankingRun
	company *models.Company
	err     error

	gotFilter storage.RankingFilter
	gotTicker string
}

func (s *stubRepo) SaveRun(context.Context, time.Time, []models.Company) (string, error) {
	return "", nil
}
func (s *stubRepo) ReplaceRun(context.Context, time.Time, []models.Company) (string, error) {
	return "", nil
}
func (s *stubRepo) HasRunForDate(context.Context, time.Time) (bool, error) { return false, nil }
func (s *stubRepo) GetLatestRanking(_ context.Context, f storage.RankingFilter) (*models.RankingRun, error) {
	s.gotFilter = f
	return s.run, s.err
}
func (s *stubRepo) GetCompany(_ context.Context, ticker string) (*models.Company, error) {
	s.gotTicker = ticker
	return s.company, s.err
}

func TestRankingService_GetLatest(t *testing.T) {
	run := &models.RankingRun{ID: "r1", Companies: []models.Company{{Ticker: "WEGE3", MagicRank: 1}}}

	cases := []struct {
		name      string
		repo      *stubRepo
		query     RankingQuery
		wantLimit int
		wantNil   bool
		wantErr   bool
	}{
		{name: "default limit", repo: &stubRepo{run: run}, wantLimit: DefaultLimit},
		{name: "explicit limit", repo: &stubRepo{run: run}, query: RankingQuery{Limit: 5}, wantLimit: 5},
		{name: "limit capped", repo: &stubRepo{run: run}, query: RankingQuery{Limit: 10_000}, wantLimit: MaxLimit},
		{name: "no run yet", repo: &stubRepo{err: storage.ErrNotFound}, wantLimit: DefaultLimit, wantNil: true},
		{name: "repo error", repo: &stubRepo{err: errors.New("boom")}, wantLimit: DefaultLimit, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewRankingService(tc.repo)
			out, err := svc.GetLatest(context.Background(), tc.query)
			if tc.repo.gotFilter.Limit != tc.wantLimit {
				t.Fatalf("limit=%d want %d", tc.repo.gotFilter.Limit, tc.wantLimit)
			}
			switch {
			case tc.wantErr:
				if err == nil {
					t.Fatalf("expected error")
				}
			case tc.wantNil:
				if err != nil || out != nil {
					t.Fatalf("want nil,nil got out=%+v err=%v", out, err)
				}
			default:
				if err != nil || out != run {
					t.Fatalf("unexpected: out=%+v err=%v", out, err)
				}
			}
		})
	}
}

func TestRankingService_GetLatestPassesFilters(t *testing.T) {
	repo := &stubRepo{run: &models.RankingRun{}}
	_, _ = NewRankingService(repo).GetLatest(context.Background(), RankingQuery{SmallCapOnly: true, Sector: "  Bancos "})
	if !repo.gotFilter.SmallCapOnly || repo.gotFilter.Sector != "Bancos" {
		t.Fatalf("filters not forwarded: %+v", repo.gotFilter)
	}
}

func TestRankingService_GetCompany(t *testing.T) {
	cases := []struct {
		name    string
		repo    *stubRepo
		wantNil bool
		wantErr bool
	}{
		{name: "found", repo: &stubRepo{company: &models.Company{Ticker: "PETR4"}}},
		{name: "not in latest run", repo: &stubRepo{err: storage.ErrNotFound}, wantNil: true},
		{name: "repo error", repo: &stubRepo{err: errors.New("boom")}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := NewRankingService(tc.repo).GetCompany(context.Background(), " petr4 ")
			if tc.repo.gotTicker != "PETR4" {
				t.Fatalf("ticker not normalized: %q", tc.repo.gotTicker)
			}
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if tc.wantNil != (out == nil) || err != nil {
				t.Fatalf("unexpected: out=%+v err=%v", out, err)
			}
		})
	}
}
