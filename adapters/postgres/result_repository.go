// Package postgres persists flattened prediction results. Persistence is
// optional: the engine runs fully in-memory when no DATABASE_URL is set.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"courtlens/domain/core"
	"courtlens/domain/prediction"
	"courtlens/ports"
)

// resultRepository implements the ResultRepository interface
type resultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sqlx.DB) ports.ResultRepository {
	return &resultRepository{db: db}
}

// SaveResult upserts one flattened prediction row, keyed by run ID
func (r *resultRepository) SaveResult(ctx context.Context, batchID core.BatchID, rec prediction.FlatRecord) error {
	query := `INSERT INTO prediction_results (
		run_id, batch_id, player_id, name, season, target_usage, archetype,
		prob_king, prob_bulldozer, prob_sniper, prob_victim,
		performance_score, dependence_score, dependence_known, risk_category,
		path, flash_applied, applied_gates, confidence_flags, created_at
	) VALUES (
		:run_id, :batch_id, :player_id, :name, :season, :target_usage, :archetype,
		:prob_king, :prob_bulldozer, :prob_sniper, :prob_victim,
		:performance_score, :dependence_score, :dependence_known, :risk_category,
		:path, :flash_applied, :applied_gates, :confidence_flags, NOW()
	)
	ON CONFLICT (run_id) DO UPDATE SET
		archetype = EXCLUDED.archetype,
		prob_king = EXCLUDED.prob_king,
		prob_bulldozer = EXCLUDED.prob_bulldozer,
		prob_sniper = EXCLUDED.prob_sniper,
		prob_victim = EXCLUDED.prob_victim,
		performance_score = EXCLUDED.performance_score,
		dependence_score = EXCLUDED.dependence_score,
		dependence_known = EXCLUDED.dependence_known,
		risk_category = EXCLUDED.risk_category,
		path = EXCLUDED.path,
		flash_applied = EXCLUDED.flash_applied,
		applied_gates = EXCLUDED.applied_gates,
		confidence_flags = EXCLUDED.confidence_flags`

	args := struct {
		prediction.FlatRecord
		BatchID string `db:"batch_id"`
	}{FlatRecord: rec, BatchID: batchID.String()}

	if _, err := r.db.NamedExecContext(ctx, query, args); err != nil {
		return fmt.Errorf("failed to save prediction result: %w", err)
	}
	return nil
}

// ListResults returns all saved rows for a batch, oldest first
func (r *resultRepository) ListResults(ctx context.Context, batchID core.BatchID) ([]prediction.FlatRecord, error) {
	query := `SELECT
		run_id, player_id, COALESCE(name, '') as name, season, target_usage, archetype,
		prob_king, prob_bulldozer, prob_sniper, prob_victim,
		performance_score, dependence_score, dependence_known, risk_category,
		path, flash_applied, COALESCE(applied_gates, '') as applied_gates,
		COALESCE(confidence_flags, '') as confidence_flags
	FROM prediction_results
	WHERE batch_id = $1
	ORDER BY created_at ASC`

	var records []prediction.FlatRecord
	if err := r.db.SelectContext(ctx, &records, query, batchID.String()); err != nil {
		return nil, fmt.Errorf("failed to list prediction results: %w", err)
	}
	return records, nil
}
