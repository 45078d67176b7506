package dto

import "github.com/guttosm/b3rank/internal/domain/models"

// RankingResponse represents the JSON structure returned by the
// GET /api/v1/ranking endpoint.
//
// Fields match the API contract and may differ from internal domain models.
type RankingResponse struct {
	RunID        string           `json:"run_id" example:"6f1c2a9e-6b7e-4d0b-9b3e-2f7f3c1d8a10"` // Ranking run that produced the rows
	SnapshotDate string           `json:"snapshot_date" example:"2024-05-10"`                    // B3 business day of the snapshot
	Count        int              `json:"count" example:"30"`                                    // Number of companies returned
	Companies    []models.Company `json:"companies"`                                             // Rows ordered by magic ranking
}

// NewRankingResponse flattens a persisted run into the API shape.
func NewRankingResponse(run *models.RankingRun) RankingResponse {
	companies := run.Companies
	if companies == nil {
		companies = []models.Company{}
	}
	return RankingResponse{
		RunID:        run.ID,
		SnapshotDate: run.SnapshotDate.String(),
		Count:        len(companies),
		Companies:    companies,
	}
}
