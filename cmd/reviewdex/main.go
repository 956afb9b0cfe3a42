package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/reviewdex/internal/config"
	dbRedis "github.com/kailas-cloud/reviewdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/reviewdex/internal/logger"
	"github.com/kailas-cloud/reviewdex/internal/metrics"
	"github.com/kailas-cloud/reviewdex/internal/ml/artifact"
	productrepo "github.com/kailas-cloud/reviewdex/internal/repository/product"
	reviewrepo "github.com/kailas-cloud/reviewdex/internal/repository/review"
	chiTransport "github.com/kailas-cloud/reviewdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/reviewdex/internal/usecase/health"
	productuc "github.com/kailas-cloud/reviewdex/internal/usecase/product"
	reviewuc "github.com/kailas-cloud/reviewdex/internal/usecase/review"
	sentimentuc "github.com/kailas-cloud/reviewdex/internal/usecase/sentiment"
	"github.com/kailas-cloud/reviewdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLoggerWithFile(env, cfg.Logging.Level, logpkg.FileOutput{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting reviewdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Artifacts first: a server without a model must not come up.
	paths := cfg.Sentiment.ArtifactPaths()
	set, err := artifact.Load(paths, cfg.Sentiment.NFeatures)
	if err != nil {
		logger.Fatal("Failed to load sentiment artifacts",
			zap.String("vectorizer", paths.Vectorizer),
			zap.String("classifier", paths.Classifier),
			zap.Error(err),
		)
	}

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSentimentMetrics()
	metrics.ModelInfo.WithLabelValues(classesLabel(set.Model.Classes())).Set(float64(set.NFeatures()))

	analyzer, err := sentimentuc.NewAnalyzer(set.Vectorizer, set.Model,
		sentimentuc.WithCache(cfg.Sentiment.CacheSize),
		sentimentuc.WithMetrics(),
	)
	if err != nil {
		logger.Fatal("Failed to build sentiment analyzer", zap.Error(err))
	}
	logger.Info("Sentiment model loaded",
		zap.Int("n_features", set.NFeatures()),
		zap.Ints("classes", set.Model.Classes()),
		zap.Int("cache_size", cfg.Sentiment.CacheSize),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Repositories
	productRepo := productrepo.New(store, cfg.Storage.KeyPrefix)
	reviewRepo := reviewrepo.New(store, cfg.Storage.KeyPrefix)
	if err := productRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure product index", zap.Error(err))
	}
	if err := reviewRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure review index", zap.Error(err))
	}

	// Use case services
	productSvc := productuc.New(productRepo, cfg.Storage.DefaultPageSize, cfg.Storage.MaxPageSize)
	reviewSvc := reviewuc.New(reviewRepo, productRepo, analyzer, cfg.Storage.DefaultPageSize, cfg.Storage.MaxPageSize)
	healthSvc := healthuc.New(store, analyzer)

	server := chiTransport.NewServer(productSvc, reviewSvc, analyzer, healthSvc, logger)
	handler := server.Routes(chiTransport.RouterConfig{
		CORSOrigins:       cfg.HTTP.CORSOrigins,
		RateLimitRequests: cfg.HTTP.RateLimit.Requests,
		RateLimitWindow:   time.Duration(cfg.HTTP.RateLimit.WindowSec) * time.Second,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// classesLabel renders model classes as a metric label value, e.g. "-1,0,1".
func classesLabel(classes []int) string {
	parts := make([]string, len(classes))
	for i, c := range classes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}
