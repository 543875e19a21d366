package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/cognicore/inductor/pkg/inductor/asp/prologsolver"
	"github.com/cognicore/inductor/pkg/inductor/config"
	"github.com/cognicore/inductor/pkg/inductor/exampleio"
	"github.com/cognicore/inductor/pkg/inductor/exampleio/file"
	"github.com/cognicore/inductor/pkg/inductor/exampleio/sqlitesource"
	"github.com/cognicore/inductor/pkg/inductor/learn"
	"github.com/cognicore/inductor/pkg/inductor/parser"
	"github.com/cognicore/inductor/pkg/inductor/parser/recur"
	"github.com/cognicore/inductor/pkg/inductor/score"
	"github.com/cognicore/inductor/pkg/inductor/structlearn/bottomup"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Learner YAML configuration file (optional, defaults applied otherwise)")
		trainPath   = flag.String("train", "", "Training example source (required)")
		trainFormat = flag.String("train-format", "jsonl", "Training source format: jsonl or sqlite")
		testPath    = flag.String("test", "", "Test example source (optional, evaluated after rescoring)")
		testFormat  = flag.String("test-format", "jsonl", "Test source format: jsonl or sqlite")
	)
	flag.Parse()

	if *trainPath == "" {
		log.Fatal("--train required")
	}

	ctx := context.Background()
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	p := recur.New()

	train, err := openSource(ctx, *trainPath, *trainFormat, p)
	if err != nil {
		log.Fatal("Failed to open training source: ", err)
	}
	defer train.Close()

	var test exampleio.Source
	if *testPath != "" {
		test, err = openSource(ctx, *testPath, *testFormat, p)
		if err != nil {
			log.Fatal("Failed to open test source: ", err)
		}
		defer test.Close()
	}

	runID := uuid.NewString()
	l := learn.NewLearner(cfg, runID, prologsolver.New(), bottomup.New(), score.NewGroundingScorer(), logger)

	logger.Printf("inductor run %s started", runID)

	var examplesObserved int
	for {
		e, ok, err := train.Next(ctx)
		if err != nil {
			log.Fatal("Failed reading training stream: ", err)
		}
		if !ok {
			break
		}
		if err := l.Observe(ctx, e); err != nil {
			log.Fatal("Failed observing example ", e.ID, ": ", err)
		}
		examplesObserved++
	}

	logger.Printf("observed %d training examples, rescoring", examplesObserved)

	// Rescore requires a fresh pass over the training stream, not the
	// exhausted one above.
	train.Close()
	train, err = openSource(ctx, *trainPath, *trainFormat, p)
	if err != nil {
		log.Fatal("Failed to reopen training source for rescoring: ", err)
	}
	defer train.Close()

	result, err := l.Rescore(ctx, train, test)
	if err != nil {
		log.Fatal("Failed to rescore theory: ", err)
	}

	printTheory(result.Theory)

	stats := l.Stats()
	logger.Printf(
		"online: tp=%d fp=%d fn=%d groundings=%d examples=%d",
		stats.TruePositives, stats.FalsePositives, stats.FalseNegatives, stats.TotalGroundings, stats.ExamplesSeen,
	)
	logger.Printf(
		"rescore training: tp=%d fp=%d fn=%d groundings=%d examples=%d",
		result.TrainingStats.TruePositives, result.TrainingStats.FalsePositives,
		result.TrainingStats.FalseNegatives, result.TrainingStats.TotalGroundings, result.TrainingStats.ExamplesSeen,
	)
	if result.TestStats != nil {
		logger.Printf(
			"rescore test: tp=%d fp=%d fn=%d groundings=%d examples=%d",
			result.TestStats.TruePositives, result.TestStats.FalsePositives,
			result.TestStats.FalseNegatives, result.TestStats.TotalGroundings, result.TestStats.ExamplesSeen,
		)
	}
}

func loadConfig(path string) (learn.Config, error) {
	if path == "" {
		return learn.DefaultConfig(), nil
	}
	raw, err := config.LoadLearner(path)
	if err != nil {
		return learn.Config{}, err
	}
	comparisons, err := config.ModeDeclarations(raw.ComparisonPredicates)
	if err != nil {
		return learn.Config{}, err
	}
	return learn.Config{
		SpecializationDepth:  raw.SpecializationDepth,
		PruneThreshold:       raw.PruneThreshold,
		ScoreMode:            raw.ScoreMode(),
		ComparisonPredicates: comparisons,
		WeightFloor:          raw.WeightFloor,
		HoeffdingDelta:       raw.HoeffdingDelta,
		Strategy:             raw.Strategy(),
		WithInertia:          raw.WithInertia,
		InertiaMode:          learn.ParseInertiaMode(raw.InertiaMode),
		AxiomModule:          "event_calculus",
		SubsumptionCacheSize: 4096,
	}, nil
}

// openSource opens an exampleio.Source over path according to format,
// one of "jsonl" or "sqlite".
func openSource(ctx context.Context, path, format string, p parser.Parser) (exampleio.Source, error) {
	switch format {
	case "", "jsonl":
		return file.Open(path, p)
	case "sqlite":
		return sqlitesource.Open(ctx, path, p)
	default:
		log.Fatalf("unknown source format %q, want jsonl or sqlite", format)
		return nil, nil
	}
}

// printTheory writes the learned theory to stdout, framed with a plain
// divider when stdout is a terminal.
func printTheory(t interface{ String() string }) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		os.Stdout.WriteString("--- learned theory ---\n")
	}
	os.Stdout.WriteString(t.String())
}
