package reviewdex

import "time"

// Sentiment is the label attached to a review.
type Sentiment string

// Sentiment constants.
const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
	// Unknown is produced when the classifier emits a code outside the label set.
	Unknown Sentiment = "unknown"
)

// Product is a catalogue entry.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Description string
	Stock       int
}

// NewProduct holds the fields of a product to create.
type NewProduct struct {
	Name        string
	Price       float64
	Description string
	Stock       int
}

// Review is a stored product review.
type Review struct {
	ID        string
	ProductID string
	Sentiment Sentiment
	Text      string
	CreatedAt time.Time
}

// Page is one slice of a paginated listing. Total counts all matches.
type Page[T any] struct {
	Items  []T
	Total  int
	Offset int
}

// Summary counts a product's reviews per sentiment.
type Summary struct {
	ProductID string
	Total     int
	Counts    map[Sentiment]int
}
