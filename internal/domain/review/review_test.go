package review

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/reviewdex/internal/domain"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

func TestNew_Valid(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	r, err := New("p-1", sentiment.Positive, "simple and convenient", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ProductID() != "p-1" || r.Text() != "simple and convenient" {
		t.Errorf("unexpected review: %+v", r)
	}
	if r.Sentiment() != sentiment.Positive {
		t.Errorf("Sentiment() = %q", r.Sentiment())
	}
	if r.CreatedAt().Location() != time.UTC {
		t.Errorf("CreatedAt() not UTC: %v", r.CreatedAt())
	}
}

func TestNew_Invalid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		productID string
		label     sentiment.Label
		text      string
	}{
		{"missing product", "", sentiment.Neutral, "ok"},
		{"missing text", "p", sentiment.Neutral, "   "},
		{"text too large", "p", sentiment.Neutral, strings.Repeat("a", MaxTextSize+1)},
		{"unknown label", "p", sentiment.Unknown, "ok"},
		{"bogus label", "p", sentiment.Label("great"), "ok"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.productID, tc.label, tc.text, now)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}
