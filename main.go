package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"courtlens/adapters/excel"
	"courtlens/adapters/model"
	"courtlens/adapters/postgres"
	"courtlens/app"
	"courtlens/domain/reference"
	"courtlens/internal"
	"courtlens/internal/config"
	"courtlens/internal/errors"
	"courtlens/internal/risk"
	"courtlens/ports"
	"courtlens/ui"
)

// initDatabase connects to PostgreSQL and ensures the results schema.
// Returns nil without error when no DATABASE_URL is configured: the
// engine runs in-memory in that case.
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.Database.URL == "" {
		return nil, nil
	}
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "schema setup failed")
	}
	return db, nil
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ds, err := excel.NewDatasetReader(cfg.Paths.DatasetFile).ReadDataset()
	if err != nil {
		log.Fatalf("dataset load failed: %v", err)
	}
	logger.Info("dataset loaded: %d rows", len(ds))

	ref, err := reference.Build(ds, reference.DefaultConfig())
	if err != nil {
		log.Fatalf("reference distribution build failed: %v", err)
	}
	logger.Info("reference built: %d qualified, %d creators", ref.QualifiedCount(), ref.CreatorCount())

	clf, err := model.Load(cfg.Paths.ClassifierFile)
	if err != nil {
		log.Fatalf("classifier load failed: %v", err)
	}

	service, err := app.NewPredictionService(clf, ref)
	if err != nil {
		log.Fatalf("service wiring failed: %v", err)
	}
	service.WithCuts(risk.Cuts{
		Performance:    cfg.Engine.PerformanceCut,
		DependenceLow:  cfg.Engine.DependenceLow,
		DependenceHigh: cfg.Engine.DependenceHigh,
		StrictMiddle:   cfg.Engine.StrictMiddleBand,
	})

	var repo ports.ResultRepository
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if db != nil {
		defer db.Close()
		repo = postgres.NewResultRepository(db)
		logger.Info("result persistence enabled")
	}

	runner := app.NewBatchRunner(service, repo, cfg.Engine.BatchConcurrency)
	server := ui.NewServer(service, runner).WithRoster(ds)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, cfg.Server.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
