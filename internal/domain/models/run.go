package models

import "time"

// RankingRun is one persisted execution of the ranking pipeline.
type RankingRun struct {
	ID           string
	SnapshotDate Date
	CreatedAt    time.Time
	Companies    []Company
}
