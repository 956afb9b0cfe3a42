package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/reviewdex/internal/ml/artifact"
)

// Config holds the reviewdex configuration shared by the API server and the trainer.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Training  TrainingConfig  `yaml:"training"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
	// File enables a rotated log file next to stderr output.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int             `yaml:"port"`
	ReadTimeoutSec  int             `yaml:"read_timeout_sec"`
	WriteTimeoutSec int             `yaml:"write_timeout_sec"`
	ShutdownSec     int             `yaml:"shutdown_timeout_sec"`
	CORSOrigins     []string        `yaml:"cors_origins"`
	MaxBodyBytes    int64           `yaml:"max_body_bytes"`
	RateLimit       RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig bounds requests per client IP on /api. Requests 0 disables it.
type RateLimitConfig struct {
	Requests  int `yaml:"requests"`
	WindowSec int `yaml:"window_sec"`
}

// DatabaseConfig holds document store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds key layout and paging settings.
type StorageConfig struct {
	KeyPrefix       string `yaml:"key_prefix"`
	DefaultPageSize int    `yaml:"default_page_size"`
	MaxPageSize     int    `yaml:"max_page_size"`
}

// SentimentConfig locates the artifacts served by the API.
type SentimentConfig struct {
	ModelDir       string `yaml:"model_dir"`
	VectorizerPath string `yaml:"vectorizer_path"` // overrides <model_dir>/vectorizer.json
	ClassifierPath string `yaml:"classifier_path"` // overrides <model_dir>/classifier.json
	// NFeatures, when set, must match the feature space stored in the artifacts.
	NFeatures int `yaml:"n_features"`
	CacheSize int `yaml:"cache_size"` // 0 = no memo cache
}

// TrainingConfig holds the offline trainer settings.
type TrainingConfig struct {
	LabelColumn  string  `yaml:"label_column"`
	TextColumn   string  `yaml:"text_column"`
	TestSize     float64 `yaml:"test_size"`
	Seed         uint64  `yaml:"seed"`
	C            float64 `yaml:"c"`
	MaxIter      int     `yaml:"max_iter"`
	Tol          float64 `yaml:"tol"`
	MinAccuracy  float64 `yaml:"min_accuracy"`
	NFeatures    int     `yaml:"n_features"`
	OutputDir    string  `yaml:"output_dir"`
	SampleReview string  `yaml:"sample_review"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands, defaults and validates the configuration at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = 1 << 20
	}
	if c.HTTP.RateLimit.WindowSec <= 0 {
		c.HTTP.RateLimit.WindowSec = 60
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "reviewdex:"
	}
	if c.Storage.DefaultPageSize <= 0 {
		c.Storage.DefaultPageSize = 50
	}
	if c.Storage.MaxPageSize <= 0 {
		c.Storage.MaxPageSize = 500
	}
	if c.Sentiment.ModelDir == "" {
		c.Sentiment.ModelDir = "model"
	}
	c.applyTrainingDefaults()
}

func (c *Config) applyTrainingDefaults() {
	t := &c.Training
	if t.LabelColumn == "" {
		t.LabelColumn = "division"
	}
	if t.TextColumn == "" {
		t.TextColumn = "review"
	}
	if t.TestSize == 0 {
		t.TestSize = 0.2
	}
	if t.Seed == 0 {
		t.Seed = 42
	}
	if t.C == 0 {
		t.C = 1
	}
	if t.MaxIter <= 0 {
		t.MaxIter = 1000
	}
	if t.Tol == 0 {
		t.Tol = 1e-3
	}
	if t.NFeatures <= 0 {
		t.NFeatures = 1 << 20
	}
	if t.OutputDir == "" {
		t.OutputDir = c.Sentiment.ModelDir
	}
	if t.SampleReview == "" {
		t.SampleReview = "simple and convenient"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimit.Requests < 0 {
		return fmt.Errorf("http.rate_limit.requests must be >= 0, got %d", c.HTTP.RateLimit.Requests)
	}
	if len(c.Database.Addrs) == 0 {
		return errors.New("database.addrs is required")
	}
	if c.Storage.DefaultPageSize > c.Storage.MaxPageSize {
		return fmt.Errorf("storage.default_page_size (%d) exceeds storage.max_page_size (%d)",
			c.Storage.DefaultPageSize, c.Storage.MaxPageSize)
	}
	if c.Sentiment.NFeatures < 0 {
		return fmt.Errorf("sentiment.n_features must be >= 0, got %d", c.Sentiment.NFeatures)
	}
	if c.Sentiment.CacheSize < 0 {
		return fmt.Errorf("sentiment.cache_size must be >= 0, got %d", c.Sentiment.CacheSize)
	}
	if err := c.Training.Validate(); err != nil {
		return err
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must be >= 0")
	}
	return nil
}

// Validate checks the trainer settings. It is also run after CLI flag overrides.
func (t *TrainingConfig) Validate() error {
	if strings.TrimSpace(t.LabelColumn) == "" || strings.TrimSpace(t.TextColumn) == "" {
		return errors.New("training.label_column and training.text_column are required")
	}
	if t.LabelColumn == t.TextColumn {
		return fmt.Errorf("training.label_column and training.text_column must differ, both are %q", t.TextColumn)
	}
	if t.TestSize <= 0 || t.TestSize >= 1 {
		return fmt.Errorf("training.test_size must be in (0, 1), got %v", t.TestSize)
	}
	if t.C <= 0 {
		return fmt.Errorf("training.c must be > 0, got %v", t.C)
	}
	if t.Tol <= 0 {
		return fmt.Errorf("training.tol must be > 0, got %v", t.Tol)
	}
	if t.MinAccuracy < 0 || t.MinAccuracy > 1 {
		return fmt.Errorf("training.min_accuracy must be in [0, 1], got %v", t.MinAccuracy)
	}
	if t.NFeatures <= 0 {
		return fmt.Errorf("training.n_features must be > 0, got %d", t.NFeatures)
	}
	return nil
}

// ArtifactPaths returns the vectorizer and classifier files the server loads.
func (s SentimentConfig) ArtifactPaths() artifact.Paths {
	p := artifact.PathsIn(s.ModelDir)
	if s.VectorizerPath != "" {
		p.Vectorizer = s.VectorizerPath
	}
	if s.ClassifierPath != "" {
		p.Classifier = s.ClassifierPath
	}
	return p
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
