package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/reviewdex/internal/db"
	"github.com/kailas-cloud/reviewdex/internal/domain"
	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

// store is the consumer interface for reviews (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters ...db.TagFilter) (int, error)
}

// Repo implements usecase/review.Repository on JSON documents.
type Repo struct {
	store  store
	prefix string
	newID  func() string
}

// New creates a review repository. An empty prefix uses domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix, newID: uuid.NewString}
}

// EnsureIndex creates the review search index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := buildIndex(r.prefix)
	exists, err := r.store.IndexExists(ctx, def.Name)
	if err != nil {
		return fmt.Errorf("check review index: %w", err)
	}
	if exists {
		return nil
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create review index: %w", err)
	}
	return nil
}

// Create stores rv under a freshly generated id and returns it with that id.
func (r *Repo) Create(ctx context.Context, rv domrev.Review) (domrev.Review, error) {
	stored := rv.WithID(r.newID())
	data, err := marshalReview(stored)
	if err != nil {
		return domrev.Review{}, err
	}
	if err := r.store.JSONSet(ctx, reviewKey(r.prefix, stored.ID()), "$", data); err != nil {
		return domrev.Review{}, fmt.Errorf("json.set review: %w", err)
	}
	return stored, nil
}

// ListByProduct returns one page of a product's reviews, newest first, plus the total count.
func (r *Repo) ListByProduct(ctx context.Context, productID string, offset, limit int) ([]domrev.Review, int, error) {
	res, err := r.store.SearchList(ctx, &db.ListQuery{
		Index:   indexName(r.prefix),
		Filters: []db.TagFilter{{Field: "product_id", Value: productID}},
		Offset:  offset,
		Limit:   limit,
		SortBy:  "created_at",
		Fields:  []string{"$"},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews of %s: %w", productID, err)
	}

	out := make([]domrev.Review, 0, len(res.Entries))
	for _, e := range res.Entries {
		rv, err := unmarshalReview([]byte(e.Fields["$"]))
		if err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", e.Key, err)
		}
		out = append(out, rv)
	}
	return out, res.Total, nil
}

// CountBySentiment returns how many of a product's reviews carry each label.
func (r *Repo) CountBySentiment(ctx context.Context, productID string) (map[sentiment.Label]int, error) {
	counts := make(map[sentiment.Label]int, len(sentiment.Labels()))
	for _, l := range sentiment.Labels() {
		n, err := r.store.SearchCount(ctx, indexName(r.prefix),
			db.TagFilter{Field: "product_id", Value: productID},
			db.TagFilter{Field: "sentiment", Value: l.String()},
		)
		if err != nil {
			return nil, fmt.Errorf("count %s reviews of %s: %w", l, productID, err)
		}
		counts[l] = n
	}
	return counts, nil
}
