package review

import (
	"context"

	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

// Repository defines the storage contract for reviews.
type Repository interface {
	Create(ctx context.Context, rv domrev.Review) (domrev.Review, error)
	ListByProduct(ctx context.Context, productID string, offset, limit int) ([]domrev.Review, int, error)
	CountBySentiment(ctx context.Context, productID string) (map[sentiment.Label]int, error)
}

// ProductChecker reports whether a product exists.
type ProductChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Analyzer labels review text.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (sentiment.Label, error)
}
