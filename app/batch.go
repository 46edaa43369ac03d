package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"courtlens/domain/core"
	"courtlens/domain/player"
	"courtlens/domain/prediction"
	"courtlens/internal"
	"courtlens/internal/metrics"
	"courtlens/ports"
)

// ItemError records one failed query inside a batch
type ItemError struct {
	PlayerID core.PlayerID `json:"player_id"`
	Name     string        `json:"name,omitempty"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
}

// BatchResult is the aggregate outcome of one batch run. A batch never
// aborts on a bad row: failures are collected per item and the rest of
// the roster is still scored.
type BatchResult struct {
	BatchID     core.BatchID        `json:"batch_id"`
	TargetUsage float64             `json:"target_usage"`
	Results     []prediction.Result `json:"results"`
	Errors      []ItemError         `json:"errors,omitempty"`
}

// BatchRunner scores a whole dataset concurrently through one service
type BatchRunner struct {
	service     *PredictionService
	repo        ports.ResultRepository // optional
	concurrency int64
	logger      *internal.Logger
}

// NewBatchRunner creates a runner. repo may be nil for in-memory runs.
func NewBatchRunner(service *PredictionService, repo ports.ResultRepository, concurrency int) *BatchRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchRunner{
		service:     service,
		repo:        repo,
		concurrency: int64(concurrency),
		logger:      internal.DefaultLogger,
	}
}

// Run projects every vector in the dataset to targetUsage. Results come
// back in dataset order regardless of completion order.
func (r *BatchRunner) Run(ctx context.Context, ds player.Dataset, targetUsage float64) (*BatchResult, error) {
	batchID := core.BatchID(core.NewID())
	out := &BatchResult{BatchID: batchID, TargetUsage: targetUsage}
	defer func(start time.Time) {
		metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	type indexed struct {
		idx int
		res prediction.Result
	}

	sem := semaphore.NewWeighted(r.concurrency)
	var mu sync.Mutex
	var wg sync.WaitGroup
	var ordered []indexed

	for i, v := range ds {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled mid-batch: return what completed
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(idx int, vec player.FeatureVector) {
			defer sem.Release(1)
			defer wg.Done()

			res, err := r.service.Predict(vec, targetUsage)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				code := errorCode(err)
				metrics.PredictionErrors.WithLabelValues(code).Inc()
				out.Errors = append(out.Errors, ItemError{
					PlayerID: vec.PlayerID,
					Name:     vec.Name,
					Code:     code,
					Message:  err.Error(),
				})
				return
			}
			ordered = append(ordered, indexed{idx: idx, res: *res})
		}(i, v)
	}
	wg.Wait()

	sort.Slice(ordered, func(a, b int) bool { return ordered[a].idx < ordered[b].idx })
	for _, item := range ordered {
		out.Results = append(out.Results, item.res)
	}

	if r.repo != nil {
		for _, res := range out.Results {
			if err := r.repo.SaveResult(ctx, batchID, res.Flatten()); err != nil {
				r.logger.Error("failed to persist result for %s: %v", res.PlayerID, err)
			}
		}
	}

	r.logger.Info("batch %s complete: %d scored, %d failed", batchID, len(out.Results), len(out.Errors))
	return out, nil
}

// errorCode maps pipeline errors onto stable item-error codes
func errorCode(err error) string {
	switch {
	case core.IsContractError(err):
		return "classifier_contract"
	case core.IsReferenceError(err):
		return "reference_data"
	case core.IsNotFoundError(err):
		return "not_found"
	default:
		return "invalid_input"
	}
}
