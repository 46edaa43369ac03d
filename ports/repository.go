package ports

import (
	"context"

	"courtlens/domain/core"
	"courtlens/domain/prediction"
)

// ResultRepository persists flattened prediction results. The engine
// itself holds no durable state; persistence is an optional adapter.
type ResultRepository interface {
	SaveResult(ctx context.Context, batchID core.BatchID, rec prediction.FlatRecord) error
	ListResults(ctx context.Context, batchID core.BatchID) ([]prediction.FlatRecord, error)
}
