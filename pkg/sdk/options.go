package reviewdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/reviewdex/internal/ml/artifact"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	password string

	artifacts artifact.Paths
	nFeatures int
	cacheSize int

	keyPrefix       string
	defaultPageSize int
	maxPageSize     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		artifacts: artifact.PathsIn("model"),
		keyPrefix: "reviewdex:",
	}
}

// WithRedis sets the Redis addresses. The server needs the JSON and search modules.
func WithRedis(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
	})
}

// WithPassword sets the Redis password.
func WithPassword(password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.password = password
	})
}

// WithArtifacts loads vectorizer.json and classifier.json from dir.
// Defaults to ./model.
func WithArtifacts(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.artifacts = artifact.PathsIn(dir)
	})
}

// WithArtifactPaths sets the two artifact files individually.
func WithArtifactPaths(vectorizer, classifier string) Option {
	return optionFunc(func(c *clientConfig) {
		c.artifacts = artifact.Paths{Vectorizer: vectorizer, Classifier: classifier}
	})
}

// WithNFeatures pins the feature space size the artifacts must have.
func WithNFeatures(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.nFeatures = n
	})
}

// WithCache memoises up to size classified texts. Disabled by default.
func WithCache(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheSize = size
	})
}

// WithKeyPrefix namespaces all keys and indexes. Default: "reviewdex:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithPageSizes sets the default and maximum listing page sizes.
// Defaults: 50 and 500.
func WithPageSizes(defaultSize, maxSize int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
