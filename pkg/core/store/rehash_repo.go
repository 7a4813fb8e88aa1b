package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"dealer_rehash/pkg/core/deal"
	"dealer_rehash/pkg/core/rehash"
)

// RehashRepo archives optimizer runs for later review. The core never reads
// it back during a search; it is an audit trail, not state.
type RehashRepo struct{}

func NewRehashRepo() *RehashRepo {
	return &RehashRepo{}
}

// Save upserts one run keyed by its run ID.
//
// Schema assumption (managed outside this process):
//
//	CREATE TABLE IF NOT EXISTS rehash_runs (
//	  run_id TEXT PRIMARY KEY,
//	  credit_tier TEXT,
//	  run_json JSONB,
//	  created_at TIMESTAMPTZ
//	);
func (r *RehashRepo) Save(ctx context.Context, runID string, d deal.Input, res rehash.Result) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	data := struct {
		Deal   deal.Input    `json:"deal"`
		Result rehash.Result `json:"result"`
	}{Deal: d, Result: res}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal rehash run: %w", err)
	}

	query := `
		INSERT INTO rehash_runs (run_id, credit_tier, run_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (run_id)
		DO UPDATE SET
			credit_tier = EXCLUDED.credit_tier,
			run_json = EXCLUDED.run_json,
			created_at = EXCLUDED.created_at;
	`
	if _, err := pool.Exec(ctx, query, runID, string(d.CreditTier), jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save rehash run: %w", err)
	}
	return nil
}

// Load retrieves an archived run by ID.
func (r *RehashRepo) Load(ctx context.Context, runID string) (deal.Input, rehash.Result, error) {
	var d deal.Input
	var res rehash.Result

	pool := GetPool()
	if pool == nil {
		return d, res, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT run_json FROM rehash_runs WHERE run_id = $1`, runID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return d, res, fmt.Errorf("no rehash run found for id %s", runID)
		}
		return d, res, fmt.Errorf("failed to load rehash run: %w", err)
	}

	var data struct {
		Deal   deal.Input    `json:"deal"`
		Result rehash.Result `json:"result"`
	}
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return d, res, fmt.Errorf("failed to unmarshal rehash run: %w", err)
	}
	return data.Deal, data.Result, nil
}
