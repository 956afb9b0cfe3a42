package chi

import (
	"context"

	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
	healthuc "github.com/kailas-cloud/reviewdex/internal/usecase/health"
)

// ProductService is the product use case consumed by the HTTP layer.
type ProductService interface {
	Create(ctx context.Context, name string, price float64, description string, stock int) (domprod.Product, error)
	Get(ctx context.Context, id string) (domprod.Product, error)
	List(ctx context.Context, offset, limit int) ([]domprod.Product, int, error)
}

// ReviewService is the review use case consumed by the HTTP layer.
type ReviewService interface {
	Create(ctx context.Context, productID, text, label string) (domrev.Review, error)
	List(ctx context.Context, productID string, offset, limit int) ([]domrev.Review, int, error)
	Summary(ctx context.Context, productID string) (map[sentiment.Label]int, error)
}

// SentimentAnalyzer classifies free text.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (sentiment.Label, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
