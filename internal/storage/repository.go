package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/b3rank/internal/domain/models"
	pq "github.com/lib/pq"
)

// ErrNotFound is returned when no run, or no company within the latest run, matches.
var ErrNotFound = errors.New("not found")

// RankingFilter narrows GetLatestRanking. Zero values disable each filter.
type RankingFilter struct {
	Limit        int
	SmallCapOnly bool
	Sector       string
}

// RankingRepository defines contract for DB operations.
type RankingRepository interface {
	SaveRun(ctx context.Context, snapshot time.Time, companies []models.Company) (string, error)
	ReplaceRun(ctx context.Context, snapshot time.Time, companies []models.Company) (string, error)
	HasRunForDate(ctx context.Context, snapshot time.Time) (bool, error)
	GetLatestRanking(ctx context.Context, filter RankingFilter) (*models.RankingRun, error)
	GetCompany(ctx context.Context, ticker string) (*models.Company, error)
}

type rankingRepository struct {
	db *sql.DB
}

func NewRankingRepository(db *sql.DB) RankingRepository {
	return &rankingRepository{db: db}
}

// companyColumns is shared by COPY and SELECT so both stay in the same order as companyValues.
var companyColumns = []string{
	"ticker", "company_name", "sector", "subsector", "last_quote_date",
	"price", "price_to_earnings", "price_to_book", "price_to_sales", "dividend_yield",
	"price_to_assets", "price_to_working_capital", "price_to_ebit", "price_to_net_current_assets",
	"ev_to_ebit", "ev_to_ebitda", "ebit_margin", "net_margin", "current_liquidity",
	"roic", "roe", "liquidity_2m", "net_equity", "gross_debt_to_equity", "revenue_growth_5y",
	"market_value", "share_count", "ebit", "enterprise_value",
	"smallcap", "ev_to_ebit_rank", "roic_rank", "magic_score", "magic_rank", "price_to_top30",
}

func toNullDate(d models.Date) interface{} {
	if d.IsZero() {
		return nil
	}
	return d.Time
}

func companyValues(c models.Company) []interface{} {
	return []interface{}{
		c.Ticker, c.CompanyName, c.Sector, c.Subsector, toNullDate(c.LastQuoteDate),
		c.Price, c.PriceToEarnings, c.PriceToBook, c.PriceToSales, c.DividendYield,
		c.PriceToAssets, c.PriceToWorkingCapital, c.PriceToEBIT, c.PriceToNetCurrentAssets,
		c.EVToEBIT, c.EVToEBITDA, c.EBITMargin, c.NetMargin, c.CurrentLiquidity,
		c.ROIC, c.ROE, c.Liquidity2M, c.NetEquity, c.GrossDebtToEquity, c.RevenueGrowth5Y,
		c.MarketValue, c.ShareCount, c.EBIT, c.EnterpriseValue,
		c.SmallCap, c.EVToEBITRank, c.ROICRank, c.MagicScore, c.MagicRank, c.PriceToTop30,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCompany(s scanner) (models.Company, error) {
	var c models.Company
	var quoted sql.NullTime
	err := s.Scan(
		&c.Ticker, &c.CompanyName, &c.Sector, &c.Subsector, &quoted,
		&c.Price, &c.PriceToEarnings, &c.PriceToBook, &c.PriceToSales, &c.DividendYield,
		&c.PriceToAssets, &c.PriceToWorkingCapital, &c.PriceToEBIT, &c.PriceToNetCurrentAssets,
		&c.EVToEBIT, &c.EVToEBITDA, &c.EBITMargin, &c.NetMargin, &c.CurrentLiquidity,
		&c.ROIC, &c.ROE, &c.Liquidity2M, &c.NetEquity, &c.GrossDebtToEquity, &c.RevenueGrowth5Y,
		&c.MarketValue, &c.ShareCount, &c.EBIT, &c.EnterpriseValue,
		&c.SmallCap, &c.EVToEBITRank, &c.ROICRank, &c.MagicScore, &c.MagicRank, &c.PriceToTop30,
	)
	if err != nil {
		return c, err
	}
	if quoted.Valid {
		y, m, d := quoted.Time.Date()
		c.LastQuoteDate = models.NewDate(y, m, d)
	}
	return c, nil
}

// SaveRun stores a ranking run and its companies in a single transaction and returns the run id.
func (r *rankingRepository) SaveRun(ctx context.Context, snapshot time.Time, companies []models.Company) (string, error) {
	return r.insertRun(ctx, snapshot, companies, false)
}

// ReplaceRun deletes every run of the snapshot day and stores the new one in
// the same transaction. On failure the previous runs are left untouched.
func (r *rankingRepository) ReplaceRun(ctx context.Context, snapshot time.Time, companies []models.Company) (string, error) {
	return r.insertRun(ctx, snapshot, companies, true)
}

func (r *rankingRepository) insertRun(ctx context.Context, snapshot time.Time, companies []models.Company, replace bool) (string, error) {
	runID := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return "", err
	}

	if replace {
		// company rows cascade
		if _, err := tx.ExecContext(ctx, `DELETE FROM ranking_runs WHERE snapshot_date = $1`, snapshot); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("delete previous runs: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ranking_runs (id, snapshot_date, row_count) VALUES ($1, $2, $3)`,
		runID, snapshot, len(companies),
	); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("company_rankings", append([]string{"run_id"}, companyColumns...)...))
	if err != nil {
		_ = tx.Rollback()
		return "", err
	}

	for _, c := range companies {
		args := append([]interface{}{runID}, companyValues(c)...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return "", fmt.Errorf("copy %s: %w", c.Ticker, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return "", err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// HasRunForDate checks if a run was already recorded for a given business day.
func (r *rankingRepository) HasRunForDate(ctx context.Context, snapshot time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ranking_runs WHERE snapshot_date = $1)`, snapshot).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

const (
	latestRunQuery   = `SELECT id, snapshot_date, created_at FROM ranking_runs ORDER BY snapshot_date DESC, created_at DESC LIMIT 1`
	latestRunIDQuery = `SELECT id FROM ranking_runs ORDER BY snapshot_date DESC, created_at DESC LIMIT 1`
)

// GetLatestRanking returns the most recent run with its companies ordered by magic rank.
func (r *rankingRepository) GetLatestRanking(ctx context.Context, filter RankingFilter) (*models.RankingRun, error) {
	var run models.RankingRun
	var snapshot time.Time
	err := r.db.QueryRowContext(ctx, latestRunQuery).Scan(&run.ID, &snapshot, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	y, m, d := snapshot.Date()
	run.SnapshotDate = models.NewDate(y, m, d)

	// $1 is always the run id. Subsequent placeholders depend on the filter.
	conditions := "run_id = $1"
	args := []interface{}{run.ID}
	if filter.SmallCapOnly {
		conditions += " AND smallcap = TRUE"
	}
	if filter.Sector != "" {
		args = append(args, filter.Sector)
		conditions += fmt.Sprintf(" AND LOWER(sector) = LOWER($%d)", len(args))
	}
	query := fmt.Sprintf(`SELECT %s FROM company_rankings WHERE %s ORDER BY magic_rank, ticker`,
		strings.Join(companyColumns, ", "), conditions)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	run.Companies = []models.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		run.Companies = append(run.Companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetCompany returns a ticker's row from the latest run.
func (r *rankingRepository) GetCompany(ctx context.Context, ticker string) (*models.Company, error) {
	query := fmt.Sprintf(`SELECT %s FROM company_rankings WHERE run_id = (%s) AND ticker = $1`,
		strings.Join(companyColumns, ", "), latestRunIDQuery)

	c, err := scanCompany(r.db.QueryRowContext(ctx, query, strings.ToUpper(ticker)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
