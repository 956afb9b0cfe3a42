package chi

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage renders the first failed rule as "field: reason".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + ": is required"
	case "max":
		return fmt.Sprintf("%s: too long (max %s)", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s: must be >= %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag())
	}
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s, err := unquoteNumber(b)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", b)
	}
	*f = flexFloat(v)
	return nil
}

// flexInt accepts a JSON integer or an integer string.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s, err := unquoteNumber(b)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %s", b)
	}
	*n = flexInt(v)
	return nil
}

func unquoteNumber(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", fmt.Errorf("decode string: %w", err)
		}
		return strings.TrimSpace(s), nil
	}
	return string(b), nil
}

// CreateProductRequest is the body of POST /api/products.
type CreateProductRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Price       *flexFloat `json:"price" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Stock       *flexInt   `json:"stock" validate:"required"`
}

// CreateReviewRequest is the body of POST /api/reviews/{product_id}.
// An omitted sentiment is filled in by the classifier.
type CreateReviewRequest struct {
	Text      string `json:"text" validate:"required"`
	Sentiment string `json:"sentiment"`
}

// AnalyzeRequest is the body of POST /api/analyze-sentiment.
type AnalyzeRequest struct {
	Review string `json:"review"`
}

// AnalyzeResponse echoes the review with its predicted label.
type AnalyzeResponse struct {
	Review    string `json:"review"`
	Sentiment string `json:"sentiment"`
}

type pageQuery struct {
	Offset int `json:"offset" validate:"gte=0"`
	Limit  int `json:"limit" validate:"gte=0"`
}

// ProductResponse is the wire form of a product.
type ProductResponse struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
}

// ReviewResponse is the wire form of a review.
type ReviewResponse struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"product_id"`
	Sentiment string    `json:"sentiment"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// SummaryResponse counts the reviews of a product per label.
type SummaryResponse struct {
	ProductID string         `json:"product_id"`
	Total     int            `json:"total"`
	Counts    map[string]int `json:"counts"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func productToResponse(p domprod.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Price:       p.Price(),
		Description: p.Description(),
		Stock:       p.Stock(),
	}
}

func reviewToResponse(r domrev.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID(),
		ProductID: r.ProductID(),
		Sentiment: r.Sentiment().String(),
		Text:      r.Text(),
		CreatedAt: r.CreatedAt(),
	}
}

func summaryToResponse(productID string, counts map[sentiment.Label]int) SummaryResponse {
	resp := SummaryResponse{ProductID: productID, Counts: make(map[string]int, len(counts))}
	for _, l := range sentiment.Labels() {
		n := counts[l]
		resp.Counts[l.String()] = n
		resp.Total += n
	}
	return resp
}
