package review

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/reviewdex/internal/domain"
	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

// Page bounds used when the caller does not set a limit.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Service handles review operations.
type Service struct {
	repo            Repository
	products        ProductChecker
	analyzer        Analyzer
	now             func() time.Time
	defaultPageSize int
	maxPageSize     int
}

// New creates a review service. Non-positive page sizes fall back to the defaults.
func New(repo Repository, products ProductChecker, analyzer Analyzer, defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if maxPageSize <= 0 {
		maxPageSize = MaxPageSize
	}
	return &Service{
		repo:            repo,
		products:        products,
		analyzer:        analyzer,
		now:             time.Now,
		defaultPageSize: min(defaultPageSize, maxPageSize),
		maxPageSize:     maxPageSize,
	}
}

// Create stores a review of an existing product. An empty label asks the
// analyzer to classify the text; otherwise the label must be one of the
// three sentiment categories.
func (s *Service) Create(ctx context.Context, productID, text, label string) (domrev.Review, error) {
	var l sentiment.Label
	if label == "" {
		var err error
		l, err = s.analyzer.Analyze(ctx, text)
		if err != nil {
			return domrev.Review{}, fmt.Errorf("classify review: %w", err)
		}
		if !l.Valid() {
			return domrev.Review{}, fmt.Errorf("classify review: %w: model returned %q", domain.ErrInternal, l)
		}
	} else {
		parsed, err := sentiment.ParseLabel(label)
		if err != nil {
			return domrev.Review{}, domain.NewValidationError("sentiment", "must be positive, neutral or negative")
		}
		l = parsed
	}

	rv, err := domrev.New(productID, l, text, s.now())
	if err != nil {
		return domrev.Review{}, fmt.Errorf("validate review: %w", err)
	}

	if err := s.requireProduct(ctx, productID); err != nil {
		return domrev.Review{}, err
	}

	stored, err := s.repo.Create(ctx, rv)
	if err != nil {
		return domrev.Review{}, fmt.Errorf("create review: %w", err)
	}
	return stored, nil
}

// List returns one page of a product's reviews, newest first, and the total count.
func (s *Service) List(ctx context.Context, productID string, offset, limit int) ([]domrev.Review, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	limit = min(limit, s.maxPageSize)

	list, total, err := s.repo.ListByProduct(ctx, productID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return list, total, nil
}

// Summary counts a product's reviews per sentiment label.
func (s *Service) Summary(ctx context.Context, productID string) (map[sentiment.Label]int, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	counts, err := s.repo.CountBySentiment(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("summarize reviews: %w", err)
	}
	return counts, nil
}

func (s *Service) requireProduct(ctx context.Context, productID string) error {
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !ok {
		return domain.ErrProductNotFound
	}
	return nil
}
