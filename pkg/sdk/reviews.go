package reviewdex

import (
	"context"
	"fmt"
	"time"

	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

// ReviewService stores and lists product reviews.
type ReviewService struct {
	svc reviewUseCase
	obs *observer
}

// Create stores a review of an existing product. An empty label lets the
// model classify the text; otherwise it must be Positive, Neutral or Negative.
func (s *ReviewService) Create(ctx context.Context, productID, text string, label Sentiment) (_ Review, err error) {
	start := time.Now()
	defer func() { s.obs.observe("review.create", start, err) }()

	rv, err := s.svc.Create(ctx, productID, text, string(label))
	if err != nil {
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	out := fromInternalReview(rv)
	s.obs.label(out.Sentiment)
	return out, nil
}

// List returns one page of a product's reviews, newest first.
func (s *ReviewService) List(ctx context.Context, productID string, offset, limit int) (_ Page[Review], err error) {
	start := time.Now()
	defer func() { s.obs.observe("review.list", start, err) }()

	list, total, err := s.svc.List(ctx, productID, offset, limit)
	if err != nil {
		return Page[Review]{}, fmt.Errorf("list reviews: %w", err)
	}
	items := make([]Review, len(list))
	for i, rv := range list {
		items[i] = fromInternalReview(rv)
	}
	return Page[Review]{Items: items, Total: total, Offset: max(offset, 0)}, nil
}

// Summary counts a product's reviews per sentiment. All three labels are present.
func (s *ReviewService) Summary(ctx context.Context, productID string) (_ Summary, err error) {
	start := time.Now()
	defer func() { s.obs.observe("review.summary", start, err) }()

	counts, err := s.svc.Summary(ctx, productID)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize reviews: %w", err)
	}
	out := Summary{ProductID: productID, Counts: make(map[Sentiment]int, len(sentiment.Labels()))}
	for _, l := range sentiment.Labels() {
		out.Counts[Sentiment(l)] = counts[l]
		out.Total += counts[l]
	}
	return out, nil
}

func fromInternalReview(rv domrev.Review) Review {
	return Review{
		ID:        rv.ID(),
		ProductID: rv.ProductID(),
		Sentiment: Sentiment(rv.Sentiment()),
		Text:      rv.Text(),
		CreatedAt: rv.CreatedAt(),
	}
}
