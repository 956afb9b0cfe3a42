package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/reviewdex/internal/config"
	"github.com/kailas-cloud/reviewdex/internal/ml/artifact"
	"github.com/kailas-cloud/reviewdex/internal/ml/corpus"
	"github.com/kailas-cloud/reviewdex/internal/ml/hashing"
	"github.com/kailas-cloud/reviewdex/internal/ml/svm"
	"github.com/kailas-cloud/reviewdex/internal/usecase/training"
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train <corpus.csv|corpus.parquet>",
		Short: "Fit the sentiment classifier and write model artifacts",
		Long: `Train reads a labelled review corpus, holds out a seeded random test split,
fits a linear SVM over hashed text features and prints the evaluation report.
Artifacts are written only when training and the accuracy gate succeed.`,
		Args: cobra.ExactArgs(1),
		RunE: runTrain,
	}

	f := cmd.Flags()
	f.String("label-column", "", "corpus column holding the category")
	f.String("text-column", "", "corpus column holding the review text")
	f.Float64("test-size", 0, "holdout fraction in (0, 1)")
	f.Uint64("seed", 0, "seed for the split and the solver")
	f.Float64("c", 0, "SVM regularisation strength")
	f.Int("max-iter", 0, "solver epoch limit")
	f.Float64("tol", 0, "solver stopping tolerance")
	f.Float64("min-accuracy", 0, "reject the model below this holdout accuracy")
	f.Int("n-features", 0, "hashed feature space size")
	f.StringP("output", "o", "", "directory for vectorizer.json and classifier.json")
	f.String("sample", "", "review classified after training as a smoke check")

	return cmd
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyTrainFlags(cmd, &cfg.Training); err != nil {
		return err
	}
	if err := cfg.Training.Validate(); err != nil {
		return fmt.Errorf("invalid training options: %w", err)
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := training.New(trainingConfig(cfg.Training), logger).Run(ctx, args[0])
	if err != nil {
		logger.Error("Training failed", zap.Error(err))
		return fmt.Errorf("train: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "samples: %d (train %d, test %d)\n", res.Samples, res.TrainSize, res.TestSize)
	fmt.Fprintln(out, res.Report.String())
	if cfg.Training.SampleReview != "" {
		fmt.Fprintf(out, "sample %q: %s\n", cfg.Training.SampleReview, res.SampleLabel)
	}
	fmt.Fprintf(out, "vectorizer: %s\nclassifier: %s\n", res.Output.Vectorizer, res.Output.Classifier)
	fmt.Fprintf(out, "elapsed: %s\n", res.Duration.Round(time.Millisecond))
	return nil
}

// applyTrainFlags overlays explicitly set flags on the configured values.
func applyTrainFlags(cmd *cobra.Command, t *config.TrainingConfig) error {
	f := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err != nil || !f.Changed(name) {
			return
		}
		err = apply()
	}

	set("label-column", func() (e error) { t.LabelColumn, e = f.GetString("label-column"); return })
	set("text-column", func() (e error) { t.TextColumn, e = f.GetString("text-column"); return })
	set("test-size", func() (e error) { t.TestSize, e = f.GetFloat64("test-size"); return })
	set("seed", func() (e error) { t.Seed, e = f.GetUint64("seed"); return })
	set("c", func() (e error) { t.C, e = f.GetFloat64("c"); return })
	set("max-iter", func() (e error) { t.MaxIter, e = f.GetInt("max-iter"); return })
	set("tol", func() (e error) { t.Tol, e = f.GetFloat64("tol"); return })
	set("min-accuracy", func() (e error) { t.MinAccuracy, e = f.GetFloat64("min-accuracy"); return })
	set("n-features", func() (e error) { t.NFeatures, e = f.GetInt("n-features"); return })
	set("output", func() (e error) { t.OutputDir, e = f.GetString("output"); return })
	set("sample", func() (e error) { t.SampleReview, e = f.GetString("sample"); return })

	if err != nil {
		return fmt.Errorf("read flags: %w", err)
	}
	return nil
}

func trainingConfig(t config.TrainingConfig) training.Config {
	vec := hashing.DefaultConfig()
	vec.NFeatures = t.NFeatures

	return training.Config{
		Corpus: corpus.Options{
			LabelColumn: t.LabelColumn,
			TextColumn:  t.TextColumn,
		},
		TestSize:   t.TestSize,
		Seed:       t.Seed,
		Vectorizer: vec,
		SVM: svm.Params{
			C:       t.C,
			MaxIter: t.MaxIter,
			Tol:     t.Tol,
		},
		MinAccuracy:  t.MinAccuracy,
		SampleReview: t.SampleReview,
		Output:       artifact.PathsIn(t.OutputDir),
	}
}
