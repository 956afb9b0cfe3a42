package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8000},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing database addrs")
	}
	if err.Error() != "database.addrs is required" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"page sizes", func(c *Config) { c.Storage.DefaultPageSize = 600 }, "storage.default_page_size"},
		{"negative rate limit", func(c *Config) { c.HTTP.RateLimit.Requests = -1 }, "http.rate_limit.requests"},
		{"negative n_features", func(c *Config) { c.Sentiment.NFeatures = -8 }, "sentiment.n_features"},
		{"negative cache", func(c *Config) { c.Sentiment.CacheSize = -1 }, "sentiment.cache_size"},
		{"test size one", func(c *Config) { c.Training.TestSize = 1 }, "training.test_size"},
		{"negative test size", func(c *Config) { c.Training.TestSize = -0.1 }, "training.test_size"},
		{"same columns", func(c *Config) { c.Training.TextColumn = c.Training.LabelColumn }, "must differ"},
		{"min accuracy", func(c *Config) { c.Training.MinAccuracy = 1.5 }, "training.min_accuracy"},
		{"negative c", func(c *Config) { c.Training.C = -1 }, "training.c"},
		{"log rotation", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging rotation"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http timeouts: %+v", cfg.HTTP)
	}
	if cfg.HTTP.MaxBodyBytes != 1<<20 {
		t.Errorf("expected MaxBodyBytes=1MiB, got %d", cfg.HTTP.MaxBodyBytes)
	}
	if cfg.HTTP.RateLimit.Requests != 0 || cfg.HTTP.RateLimit.WindowSec != 60 {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.HTTP.RateLimit)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Storage.KeyPrefix != "reviewdex:" {
		t.Errorf("expected KeyPrefix='reviewdex:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.DefaultPageSize != 50 || cfg.Storage.MaxPageSize != 500 {
		t.Errorf("unexpected page sizes: %+v", cfg.Storage)
	}
	if cfg.Sentiment.ModelDir != "model" || cfg.Sentiment.CacheSize != 0 {
		t.Errorf("unexpected sentiment defaults: %+v", cfg.Sentiment)
	}

	tr := cfg.Training
	if tr.LabelColumn != "division" || tr.TextColumn != "review" {
		t.Errorf("unexpected columns: %q %q", tr.LabelColumn, tr.TextColumn)
	}
	if tr.TestSize != 0.2 || tr.Seed != 42 || tr.C != 1 || tr.MaxIter != 1000 || tr.Tol != 1e-3 {
		t.Errorf("unexpected training defaults: %+v", tr)
	}
	if tr.NFeatures != 1<<20 {
		t.Errorf("expected NFeatures=2^20, got %d", tr.NFeatures)
	}
	if tr.OutputDir != "model" || tr.SampleReview != "simple and convenient" {
		t.Errorf("unexpected output defaults: %+v", tr)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:  DatabaseConfig{ReadinessTimeout: 15},
		Storage:   StorageConfig{KeyPrefix: "custom:", DefaultPageSize: 10, MaxPageSize: 20},
		Sentiment: SentimentConfig{ModelDir: "/srv/models/v2"},
		Training:  TrainingConfig{LabelColumn: "label", TextColumn: "body", TestSize: 0.3, NFeatures: 1024},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 || cfg.HTTP.WriteTimeoutSec != 60 || cfg.HTTP.ShutdownSec != 5 {
		t.Errorf("http timeouts overridden: %+v", cfg.HTTP)
	}
	if cfg.Storage.KeyPrefix != "custom:" || cfg.Storage.MaxPageSize != 20 {
		t.Errorf("storage overridden: %+v", cfg.Storage)
	}
	if cfg.Training.LabelColumn != "label" || cfg.Training.TestSize != 0.3 || cfg.Training.NFeatures != 1024 {
		t.Errorf("training overridden: %+v", cfg.Training)
	}
	if cfg.Training.OutputDir != "/srv/models/v2" {
		t.Errorf("expected output dir to follow model dir, got %q", cfg.Training.OutputDir)
	}
}

func TestArtifactPaths(t *testing.T) {
	s := SentimentConfig{ModelDir: "models"}
	p := s.ArtifactPaths()
	if p.Vectorizer != filepath.Join("models", "vectorizer.json") {
		t.Errorf("vectorizer = %q", p.Vectorizer)
	}
	if p.Classifier != filepath.Join("models", "classifier.json") {
		t.Errorf("classifier = %q", p.Classifier)
	}

	s.ClassifierPath = "/tmp/other.json"
	if got := s.ArtifactPaths().Classifier; got != "/tmp/other.json" {
		t.Errorf("classifier override = %q", got)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("REVIEWDEX_TEST_ADDR", "redis:6379")

	in := []byte("a: ${REVIEWDEX_TEST_ADDR}\nb: ${REVIEWDEX_TEST_UNSET:-fallback}\nc: ${REVIEWDEX_TEST_UNSET}\n")
	got := string(expandEnvVars(in))
	want := "a: redis:6379\nb: fallback\nc: \n"
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("REVIEWDEX_TEST_PORT", "9090")

	path := filepath.Join(t.TempDir(), "test.yaml")
	data := `
http:
  port: ${REVIEWDEX_TEST_PORT}
  cors_origins: ["http://localhost:3000"]
  rate_limit:
    requests: 100
database:
  addrs: ["${REVIEWDEX_TEST_REDIS:-localhost:6379}"]
sentiment:
  model_dir: artifacts
  cache_size: 4096
training:
  label_column: category
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.RateLimit.Requests != 100 {
		t.Errorf("http = %+v", cfg.HTTP)
	}
	if cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v", cfg.Database.Addrs)
	}
	if cfg.Sentiment.CacheSize != 4096 || cfg.Training.OutputDir != "artifacts" {
		t.Errorf("sentiment = %+v, output dir %q", cfg.Sentiment, cfg.Training.OutputDir)
	}
	if cfg.Training.LabelColumn != "category" || cfg.Training.TextColumn != "review" {
		t.Errorf("training columns = %q %q", cfg.Training.LabelColumn, cfg.Training.TextColumn)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("http:\n  port: 0\ndatabase:\n  addrs: [x]\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected invalid config error, got %v", err)
	}
}
