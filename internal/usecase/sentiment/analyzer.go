// Package sentiment classifies review text with a model loaded at startup.
package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kailas-cloud/reviewdex/internal/domain"
	domsent "github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
	"github.com/kailas-cloud/reviewdex/internal/metrics"
)

// Analyzer labels review text. Immutable after construction and safe for
// concurrent use; the optional memo cache is internally synchronised.
type Analyzer struct {
	vec     Vectorizer
	model   Classifier
	cache   *lru.Cache[string, domsent.Label]
	metrics bool
}

// Option configures an Analyzer.
type Option func(*Analyzer) error

// WithCache memoises up to size distinct texts. size <= 0 disables the cache.
func WithCache(size int) Option {
	return func(a *Analyzer) error {
		if size <= 0 {
			return nil
		}
		c, err := lru.New[string, domsent.Label](size)
		if err != nil {
			return fmt.Errorf("create cache: %w", err)
		}
		a.cache = c
		return nil
	}
}

// WithMetrics records predictions and inference latency in Prometheus.
func WithMetrics() Option {
	return func(a *Analyzer) error {
		a.metrics = true
		return nil
	}
}

// NewAnalyzer builds an Analyzer. The vectorizer and model must share a feature space.
func NewAnalyzer(vec Vectorizer, model Classifier, opts ...Option) (*Analyzer, error) {
	if vec == nil || model == nil {
		return nil, fmt.Errorf("analyzer requires a vectorizer and a model")
	}
	if vec.NFeatures() != model.NFeatures() {
		return nil, fmt.Errorf("vectorizer has %d features, model %d", vec.NFeatures(), model.NFeatures())
	}
	a := &Analyzer{vec: vec, model: model}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Analyze returns the sentiment of text. Empty or whitespace-only text is
// rejected with domain.ErrEmptyText. Codes the model was not trained to
// emit map to Unknown.
func (a *Analyzer) Analyze(_ context.Context, text string) (domsent.Label, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyText
	}

	if a.cache != nil {
		if l, ok := a.cache.Get(text); ok {
			a.observeCache("hit")
			a.observeLabel(l)
			return l, nil
		}
		a.observeCache("miss")
	}

	start := time.Now()
	code, err := a.model.Predict(a.vec.Transform(text))
	if err != nil {
		return "", fmt.Errorf("predict: %w", err)
	}
	label := domsent.FromCode(code)

	if a.metrics {
		metrics.SentimentInferenceDuration.Observe(time.Since(start).Seconds())
	}
	a.observeLabel(label)

	if a.cache != nil {
		a.cache.Add(text, label)
	}
	return label, nil
}

// NFeatures returns the feature space size of the loaded model.
func (a *Analyzer) NFeatures() int { return a.model.NFeatures() }

// HealthCheck runs a fixed probe through the model, bypassing cache and metrics.
func (a *Analyzer) HealthCheck(_ context.Context) error {
	if _, err := a.model.Predict(a.vec.Transform("health check probe")); err != nil {
		return fmt.Errorf("analyzer probe: %w", err)
	}
	return nil
}

func (a *Analyzer) observeLabel(l domsent.Label) {
	if a.metrics {
		metrics.SentimentPredictionsTotal.WithLabelValues(l.String()).Inc()
	}
}

func (a *Analyzer) observeCache(result string) {
	if a.metrics {
		metrics.SentimentCacheTotal.WithLabelValues(result).Inc()
	}
}
