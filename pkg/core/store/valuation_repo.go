package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/assumption"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/valuation"
)

// ValuationRepo persists completed valuation runs so past scenarios can be
// revisited. Persistence is best-effort; a missing database never fails a
// valuation.
type ValuationRepo struct{}

// NewValuationRepo creates a new repository instance.
func NewValuationRepo() *ValuationRepo {
	return &ValuationRepo{}
}

// RunRecord is one stored valuation run.
type RunRecord struct {
	ID          string                     `json:"id"`
	Ticker      string                     `json:"ticker"`
	BaseYear    *baseyear.BaseYearRecord   `json:"base_year"`
	Assumptions assumption.Assumptions     `json:"assumptions"`
	Result      *valuation.ValuationResult `json:"result"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// Schema assumption (managed outside the app):
//
// CREATE TABLE IF NOT EXISTS valuation_runs (
//   id UUID PRIMARY KEY,
//   ticker TEXT NOT NULL,
//   run_json JSONB NOT NULL,
//   created_at TIMESTAMPTZ NOT NULL
// );

// Save stores one run and returns its generated id.
func (r *ValuationRepo) Save(ctx context.Context, ticker string, base *baseyear.BaseYearRecord, a assumption.Assumptions, result *valuation.ValuationResult) (string, error) {
	pool := GetPool()
	if pool == nil {
		return "", fmt.Errorf("database pool not initialized")
	}

	record := RunRecord{
		ID:          uuid.NewString(),
		Ticker:      ticker,
		BaseYear:    base,
		Assumptions: a,
		Result:      result,
		CreatedAt:   time.Now(),
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal run: %w", err)
	}

	query := `
		INSERT INTO valuation_runs (id, ticker, run_json, created_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := pool.Exec(ctx, query, record.ID, ticker, jsonData, record.CreatedAt); err != nil {
		return "", fmt.Errorf("failed to save valuation run: %w", err)
	}
	return record.ID, nil
}

// Recent returns the most recent runs for a ticker, newest first.
func (r *ValuationRepo) Recent(ctx context.Context, ticker string, limit int) ([]RunRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT run_json FROM valuation_runs
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := pool.Query(ctx, query, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, err
		}
		var record RunRecord
		if err := json.Unmarshal(jsonData, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
