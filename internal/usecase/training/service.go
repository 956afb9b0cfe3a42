// Package training fits the sentiment model from a labelled corpus and
// writes the artifacts the server loads.
package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
	"github.com/kailas-cloud/reviewdex/internal/ml/artifact"
	"github.com/kailas-cloud/reviewdex/internal/ml/corpus"
	"github.com/kailas-cloud/reviewdex/internal/ml/evaluate"
	"github.com/kailas-cloud/reviewdex/internal/ml/hashing"
	"github.com/kailas-cloud/reviewdex/internal/ml/svm"
)

// DefaultSampleReview is classified after every run as a smoke check.
const DefaultSampleReview = "simple and convenient"

// ErrAccuracyBelowThreshold is returned when holdout accuracy misses Config.MinAccuracy.
var ErrAccuracyBelowThreshold = errors.New("holdout accuracy below threshold")

// Config controls a training run.
type Config struct {
	Corpus       corpus.Options
	TestSize     float64
	Seed         uint64
	Vectorizer   hashing.Config
	SVM          svm.Params
	MinAccuracy  float64 // 0 disables the gate
	SampleReview string  // empty skips the smoke check
	Output       artifact.Paths
}

// DefaultConfig holds out 20% with seed 42 over 2^20 hashed features.
func DefaultConfig() Config {
	return Config{
		TestSize:     0.2,
		Seed:         42,
		Vectorizer:   hashing.DefaultConfig(),
		SVM:          svm.DefaultParams(),
		SampleReview: DefaultSampleReview,
		Output:       artifact.PathsIn("model"),
	}
}

// Result summarises a completed run.
type Result struct {
	Samples     int
	TrainSize   int
	TestSize    int
	Report      evaluate.Report
	SampleLabel sentiment.Label
	Output      artifact.Paths
	Duration    time.Duration
}

// Service runs training.
type Service struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a training service.
func New(cfg Config, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, logger: logger}
}

// Run loads the corpus, fits and evaluates the model, and saves both artifacts.
// Nothing is written when any step fails or the accuracy gate rejects the model.
func (s *Service) Run(ctx context.Context, corpusPath string) (Result, error) {
	start := time.Now()

	vec, err := hashing.New(s.cfg.Vectorizer)
	if err != nil {
		return Result{}, fmt.Errorf("vectorizer: %w", err)
	}

	samples, err := corpus.Load(corpusPath, s.cfg.Corpus)
	if err != nil {
		return Result{}, fmt.Errorf("load corpus: %w", err)
	}
	s.logger.Info("Corpus loaded",
		zap.String("path", corpusPath),
		zap.Int("samples", len(samples)),
	)

	train, test, err := corpus.TrainTestSplit(samples, s.cfg.TestSize, s.cfg.Seed)
	if err != nil {
		return Result{}, fmt.Errorf("split corpus: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	trainTexts, trainCodes := corpus.Split(train)
	params := s.cfg.SVM
	params.Seed = s.cfg.Seed
	model, err := svm.Train(vec.TransformBatch(trainTexts), trainCodes, params)
	if err != nil {
		return Result{}, fmt.Errorf("fit classifier: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	testTexts, testCodes := corpus.Split(test)
	predicted, err := model.PredictBatch(vec.TransformBatch(testTexts))
	if err != nil {
		return Result{}, fmt.Errorf("predict holdout: %w", err)
	}
	report, err := evaluate.Evaluate(model.Classes(), testCodes, predicted)
	if err != nil {
		return Result{}, fmt.Errorf("evaluate: %w", err)
	}
	s.logger.Info("Model evaluated",
		zap.Int("train_size", len(train)),
		zap.Int("test_size", len(test)),
		zap.Float64("accuracy", report.Accuracy),
		zap.Float64("macro_f1", report.MacroAvg.F1),
	)

	res := Result{
		Samples:   len(samples),
		TrainSize: len(train),
		TestSize:  len(test),
		Report:    report,
		Output:    s.cfg.Output,
	}

	if s.cfg.MinAccuracy > 0 && report.Accuracy < s.cfg.MinAccuracy {
		return res, fmt.Errorf("%w: %.4f < %.4f", ErrAccuracyBelowThreshold, report.Accuracy, s.cfg.MinAccuracy)
	}

	if err := artifact.Save(s.cfg.Output, vec.Config(), model); err != nil {
		return res, fmt.Errorf("save artifacts: %w", err)
	}
	s.logger.Info("Artifacts saved",
		zap.String("vectorizer", s.cfg.Output.Vectorizer),
		zap.String("classifier", s.cfg.Output.Classifier),
		zap.Int("n_features", model.NFeatures()),
	)

	if s.cfg.SampleReview != "" {
		code, err := model.Predict(vec.Transform(s.cfg.SampleReview))
		if err != nil {
			return res, fmt.Errorf("sample prediction: %w", err)
		}
		res.SampleLabel = sentiment.FromCode(code)
		s.logger.Info("Sample review classified",
			zap.String("review", s.cfg.SampleReview),
			zap.String("sentiment", res.SampleLabel.String()),
		)
	}

	res.Duration = time.Since(start)
	return res, nil
}
