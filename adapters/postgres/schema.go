package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the results table when it does not exist yet.
// The schema is small enough that a single idempotent statement replaces
// a migration chain.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS prediction_results (
			run_id            TEXT PRIMARY KEY,
			batch_id          TEXT NOT NULL,
			player_id         TEXT NOT NULL,
			name              TEXT,
			season            TEXT NOT NULL,
			target_usage      DOUBLE PRECISION NOT NULL,
			archetype         TEXT NOT NULL,
			prob_king         DOUBLE PRECISION NOT NULL,
			prob_bulldozer    DOUBLE PRECISION NOT NULL,
			prob_sniper       DOUBLE PRECISION NOT NULL,
			prob_victim       DOUBLE PRECISION NOT NULL,
			performance_score DOUBLE PRECISION NOT NULL,
			dependence_score  DOUBLE PRECISION NOT NULL,
			dependence_known  BOOLEAN NOT NULL DEFAULT TRUE,
			risk_category     TEXT NOT NULL,
			path              TEXT NOT NULL,
			flash_applied     BOOLEAN NOT NULL DEFAULT FALSE,
			applied_gates     TEXT,
			confidence_flags  TEXT,
			created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure prediction_results schema: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_prediction_results_batch
		ON prediction_results (batch_id, created_at)`)
	if err != nil {
		return fmt.Errorf("failed to ensure batch index: %w", err)
	}
	return nil
}
