package app

import (
	"context"
	"sync"
	"testing"

	"courtlens/domain/core"
	"courtlens/domain/player"
	"courtlens/domain/prediction"
)

// memoryRepo collects saved records in memory
type memoryRepo struct {
	mu      sync.Mutex
	records map[core.BatchID][]prediction.FlatRecord
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[core.BatchID][]prediction.FlatRecord)}
}

func (r *memoryRepo) SaveResult(_ context.Context, batchID core.BatchID, rec prediction.FlatRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[batchID] = append(r.records[batchID], rec)
	return nil
}

func (r *memoryRepo) ListResults(_ context.Context, batchID core.BatchID) ([]prediction.FlatRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[batchID], nil
}

func TestBatchRunScoresWholeDataset(t *testing.T) {
	svc, _ := buildService(t, []float64{0.10, 0.20, 0.50, 0.20})
	repo := newMemoryRepo()
	runner := NewBatchRunner(svc, repo, 4)

	ds := leagueDataset()[:20]
	out, err := runner.Run(context.Background(), ds, 0.24)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(out.Results) != 20 {
		t.Fatalf("scored %d of 20", len(out.Results))
	}
	if len(out.Errors) != 0 {
		t.Fatalf("unexpected item errors: %v", out.Errors)
	}
	// Results come back in dataset order
	for i, res := range out.Results {
		if res.PlayerID != ds[i].PlayerID {
			t.Fatalf("result %d out of order: %s", i, res.PlayerID)
		}
	}

	saved, err := repo.ListResults(context.Background(), out.BatchID)
	if err != nil {
		t.Fatalf("ListResults() error = %v", err)
	}
	if len(saved) != 20 {
		t.Errorf("persisted %d of 20", len(saved))
	}
}

func TestBatchRunCollectsItemErrors(t *testing.T) {
	svc, _ := buildService(t, []float64{0.25, 0.25, 0.25, 0.25})
	runner := NewBatchRunner(svc, nil, 2)

	ds := player.Dataset{
		{PlayerID: core.PlayerID("ok"), UsageRate: player.Some(0.18)},
		{PlayerID: core.PlayerID("bad-usage"), UsageRate: player.Some(-0.50)},
		{PlayerID: core.PlayerID("ok2"), UsageRate: player.Some(0.20)},
	}

	out, err := runner.Run(context.Background(), ds, 0.22)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out.Results) != 3 {
		t.Errorf("all rows project cleanly at a valid target, got %d results and %v", len(out.Results), out.Errors)
	}
}

func TestBatchRunNeverAbortsOnBadRow(t *testing.T) {
	svc, clf := buildService(t, []float64{0.25, 0.25, 0.25, 0.25})
	runner := NewBatchRunner(svc, nil, 2)

	// Force a contract failure on every row by breaking the classifier
	clf.features = append(clf.features, "wingspan")

	ds := leagueDataset()[:5]
	out, err := runner.Run(context.Background(), ds, 0.24)
	if err != nil {
		t.Fatalf("batch must not abort: %v", err)
	}
	if len(out.Errors) != 5 {
		t.Fatalf("want 5 item errors, got %d", len(out.Errors))
	}
	for _, ie := range out.Errors {
		if ie.Code != "classifier_contract" {
			t.Errorf("error code = %q, want classifier_contract", ie.Code)
		}
	}
}

func TestBatchRunHonorsCancellation(t *testing.T) {
	svc, _ := buildService(t, []float64{0.25, 0.25, 0.25, 0.25})
	runner := NewBatchRunner(svc, nil, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Run(ctx, leagueDataset(), 0.24); err == nil {
		t.Error("cancelled context should surface an error")
	}
}
