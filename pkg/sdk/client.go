package reviewdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/reviewdex/internal/db"
	dbRedis "github.com/kailas-cloud/reviewdex/internal/db/redis"
	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
	"github.com/kailas-cloud/reviewdex/internal/ml/artifact"
	productrepo "github.com/kailas-cloud/reviewdex/internal/repository/product"
	reviewrepo "github.com/kailas-cloud/reviewdex/internal/repository/review"
	healthuc "github.com/kailas-cloud/reviewdex/internal/usecase/health"
	productuc "github.com/kailas-cloud/reviewdex/internal/usecase/product"
	reviewuc "github.com/kailas-cloud/reviewdex/internal/usecase/review"
	sentimentuc "github.com/kailas-cloud/reviewdex/internal/usecase/sentiment"
)

const defaultReadinessTimeout = 10 * time.Second

// Внутренние интерфейсы для подмены в тестах.
type productUseCase interface {
	Create(ctx context.Context, name string, price float64, description string, stock int) (domprod.Product, error)
	Get(ctx context.Context, id string) (domprod.Product, error)
	List(ctx context.Context, offset, limit int) ([]domprod.Product, int, error)
}

type reviewUseCase interface {
	Create(ctx context.Context, productID, text, label string) (domrev.Review, error)
	List(ctx context.Context, productID string, offset, limit int) ([]domrev.Review, int, error)
	Summary(ctx context.Context, productID string) (map[sentiment.Label]int, error)
}

type analyzerUseCase interface {
	Analyze(ctx context.Context, text string) (sentiment.Label, error)
}

// Client is the reviewdex SDK entry point.
type Client struct {
	store       db.Store
	productSvc  productUseCase
	reviewSvc   reviewUseCase
	analyzerSvc analyzerUseCase
	healthSvc   healthUseCase
	obs         *observer
}

// New loads the sentiment artifacts, connects to Redis and ensures the
// product and review indexes exist. The provided context bounds the
// readiness check and index creation.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("reviewdex: database address required (use WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	// Model first: a client that cannot classify must not touch the database.
	analyzer, err := loadAnalyzer(cfg)
	if err != nil {
		return nil, err
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("reviewdex: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("reviewdex: database not ready: %w", err)
	}

	c, err := wireClient(ctx, store, analyzer, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func loadAnalyzer(cfg *clientConfig) (*sentimentuc.Analyzer, error) {
	set, err := artifact.Load(cfg.artifacts, cfg.nFeatures)
	if err != nil {
		return nil, fmt.Errorf("reviewdex: load artifacts: %w", err)
	}
	analyzer, err := sentimentuc.NewAnalyzer(set.Vectorizer, set.Model, sentimentuc.WithCache(cfg.cacheSize))
	if err != nil {
		return nil, fmt.Errorf("reviewdex: create analyzer: %w", err)
	}
	return analyzer, nil
}

func wireClient(
	ctx context.Context, store db.Store, analyzer *sentimentuc.Analyzer, cfg *clientConfig, obs *observer,
) (*Client, error) {
	productRepo := productrepo.New(store, cfg.keyPrefix)
	reviewRepo := reviewrepo.New(store, cfg.keyPrefix)
	if err := productRepo.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("reviewdex: ensure product index: %w", err)
	}
	if err := reviewRepo.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("reviewdex: ensure review index: %w", err)
	}

	return &Client{
		store:       store,
		productSvc:  productuc.New(productRepo, cfg.defaultPageSize, cfg.maxPageSize),
		reviewSvc:   reviewuc.New(reviewRepo, productRepo, analyzer, cfg.defaultPageSize, cfg.maxPageSize),
		analyzerSvc: analyzer,
		healthSvc:   healthuc.New(store, analyzer),
		obs:         obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Analyze classifies text without storing it. Blank text returns ErrEmptyText.
func (c *Client) Analyze(ctx context.Context, text string) (_ Sentiment, err error) {
	start := time.Now()
	defer func() { c.obs.observe("analyze", start, err) }()

	l, err := c.analyzerSvc.Analyze(ctx, text)
	if err != nil {
		return "", fmt.Errorf("analyze: %w", err)
	}
	s := Sentiment(l)
	c.obs.label(s)
	return s, nil
}

// Products returns the product catalogue service.
func (c *Client) Products() *ProductService {
	return &ProductService{svc: c.productSvc, obs: c.obs}
}

// Reviews returns the review service.
func (c *Client) Reviews() *ReviewService {
	return &ReviewService{svc: c.reviewSvc, obs: c.obs}
}
