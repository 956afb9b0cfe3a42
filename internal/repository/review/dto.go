package review

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

// reviewDoc is the stored JSON representation of a review.
// created_at is Unix milliseconds so the index can sort on it.
type reviewDoc struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Sentiment string `json:"sentiment"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"created_at"`
}

func marshalReview(rv domrev.Review) ([]byte, error) {
	data, err := json.Marshal(reviewDoc{
		ID:        rv.ID(),
		ProductID: rv.ProductID(),
		Sentiment: rv.Sentiment().String(),
		Text:      rv.Text(),
		CreatedAt: rv.CreatedAt().UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal review: %w", err)
	}
	return data, nil
}

func unmarshalReview(data []byte) (domrev.Review, error) {
	var doc reviewDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domrev.Review{}, fmt.Errorf("unmarshal review: %w", err)
	}
	return domrev.Reconstruct(
		doc.ID,
		doc.ProductID,
		sentiment.Label(doc.Sentiment),
		doc.Text,
		time.UnixMilli(doc.CreatedAt).UTC(),
	), nil
}
