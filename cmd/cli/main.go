// Command cli scores projection queries from the terminal against a
// local dataset and classifier artifact.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"courtlens/adapters/excel"
	"courtlens/adapters/model"
	"courtlens/app"
	"courtlens/domain/player"
	"courtlens/domain/prediction"
	"courtlens/domain/reference"
	"courtlens/internal/config"
	"courtlens/internal/report"
	"courtlens/internal/risk"
	"courtlens/ui"
)

var (
	datasetPath    string
	classifierPath string
	targetUsage    float64
)

var rootCmd = &cobra.Command{
	Use:   "courtlens",
	Short: "Conditional performance projection for basketball rosters",
	Long:  "Project player archetype outcomes at hypothetical usage levels and classify acquisition risk.",
}

var predictCmd = &cobra.Command{
	Use:   "predict <player-name-or-id>",
	Short: "Score one player from the dataset at the target usage",
	Args:  cobra.ExactArgs(1),
	RunE:  runPredict,
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score the whole dataset at the target usage",
	RunE:  runBatch,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "path to the dataset file (xlsx or csv)")
	rootCmd.PersistentFlags().StringVar(&classifierPath, "classifier", "", "path to the classifier artifact (json)")
	rootCmd.PersistentFlags().Float64Var(&targetUsage, "usage", 0.25, "target usage level, fraction or percentage")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
}

// buildEngine loads the dataset, builds the reference distribution, and
// wires the prediction service
func buildEngine() (*app.PredictionService, player.Dataset, error) {
	if datasetPath == "" || classifierPath == "" {
		// Fall back to env configuration when flags are not given
		_ = godotenv.Load()
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		if datasetPath == "" {
			datasetPath = cfg.Paths.DatasetFile
		}
		if classifierPath == "" {
			classifierPath = cfg.Paths.ClassifierFile
		}
	}

	ds, err := excel.NewDatasetReader(datasetPath).ReadDataset()
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}
	ref, err := reference.Build(ds, reference.DefaultConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("build reference distribution: %w", err)
	}
	clf, err := model.Load(classifierPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load classifier: %w", err)
	}
	svc, err := app.NewPredictionService(clf, ref)
	if err != nil {
		return nil, nil, err
	}
	return svc, ds, nil
}

func runPredict(cmd *cobra.Command, args []string) error {
	svc, ds, err := buildEngine()
	if err != nil {
		return err
	}

	query := strings.ToLower(args[0])
	var found *player.FeatureVector
	for i := range ds {
		if strings.ToLower(ds[i].Name) == query || strings.ToLower(ds[i].PlayerID.String()) == query {
			found = &ds[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("player %q not found in dataset", args[0])
	}

	res, err := svc.Predict(*found, targetUsage)
	if err != nil {
		return err
	}
	fmt.Print(report.Markdown(*res))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	svc, ds, err := buildEngine()
	if err != nil {
		return err
	}

	runner := app.NewBatchRunner(svc, nil, 8)
	out, err := runner.Run(context.Background(), ds, targetUsage)
	if err != nil {
		return err
	}

	printBatchTable(out.Results)
	if len(out.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d rows failed:\n", len(out.Errors))
		for _, ie := range out.Errors {
			fmt.Fprintf(os.Stderr, "  %s [%s]: %s\n", ie.PlayerID, ie.Code, ie.Message)
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	svc, ds, err := buildEngine()
	if err != nil {
		return err
	}
	svc.WithCuts(risk.Cuts{
		Performance:    cfg.Engine.PerformanceCut,
		DependenceLow:  cfg.Engine.DependenceLow,
		DependenceHigh: cfg.Engine.DependenceHigh,
		StrictMiddle:   cfg.Engine.StrictMiddleBand,
	})
	server := ui.NewServer(svc, app.NewBatchRunner(svc, nil, cfg.Engine.BatchConcurrency)).WithRoster(ds)
	return server.Start(context.Background(), cfg.Server.Port)
}

func printBatchTable(results []prediction.Result) {
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("PLAYER", "ARCHETYPE", "PERF", "DEP", "RISK", "PATH", "GATES")

	for _, res := range results {
		name := res.Name
		if name == "" {
			name = res.PlayerID.String()
		}
		dep := "—"
		if res.DependenceKnown {
			dep = fmt.Sprintf("%.3f", res.DependenceScore)
		}
		table.Append(
			name,
			string(res.Archetype),
			fmt.Sprintf("%.3f", res.PerformanceScore),
			dep,
			string(res.RiskCategory),
			res.Path,
			strings.Join(res.AppliedGates, ","),
		)
	}
	table.Render()
}
