package review

import (
	"strings"
	"time"

	"github.com/kailas-cloud/reviewdex/internal/domain"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

// MaxTextSize is the maximum review text size in bytes.
const MaxTextSize = 16384

// Review is a customer review of a product (immutable value object).
type Review struct {
	id        string
	productID string
	sentiment sentiment.Label
	text      string
	createdAt time.Time
}

// New validates and creates a Review without an identifier.
// label must be one of the three trainable sentiment labels.
func New(productID string, label sentiment.Label, text string, createdAt time.Time) (Review, error) {
	if strings.TrimSpace(productID) == "" {
		return Review{}, domain.NewValidationError("product_id", "is required")
	}
	if strings.TrimSpace(text) == "" {
		return Review{}, domain.NewValidationError("text", "is required")
	}
	if len(text) > MaxTextSize {
		return Review{}, domain.NewValidationError("text", "too large (max 16384 bytes)")
	}
	if !label.Valid() {
		return Review{}, domain.NewValidationError("sentiment", "must be positive, neutral or negative")
	}
	return Review{productID: productID, sentiment: label, text: text, createdAt: createdAt.UTC()}, nil
}

// Reconstruct creates a Review without validation (storage hydration).
func Reconstruct(id, productID string, label sentiment.Label, text string, createdAt time.Time) Review {
	return Review{id: id, productID: productID, sentiment: label, text: text, createdAt: createdAt}
}

// ID returns the store-assigned identifier.
func (r *Review) ID() string { return r.id }

// ProductID returns the reviewed product.
func (r *Review) ProductID() string { return r.productID }

// Sentiment returns the review label.
func (r *Review) Sentiment() sentiment.Label { return r.sentiment }

// Text returns the review body.
func (r *Review) Text() string { return r.text }

// CreatedAt returns the creation time in UTC.
func (r *Review) CreatedAt() time.Time { return r.createdAt }

// WithID returns a copy carrying the given identifier.
func (r *Review) WithID(id string) Review {
	c := *r
	c.id = id
	return c
}
