package sentiment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kailas-cloud/reviewdex/internal/domain"
	domsent "github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
	"github.com/kailas-cloud/reviewdex/internal/ml/hashing"
	"github.com/kailas-cloud/reviewdex/internal/ml/svm"
)

// --- Mocks ---

type stubClassifier struct {
	nFeatures int
	code      int
	err       error
	mu        sync.Mutex
	calls     int
}

func (s *stubClassifier) Predict(_ hashing.Vector) (int, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.code, s.err
}

func (s *stubClassifier) NFeatures() int { return s.nFeatures }

func newVectorizer(t *testing.T, dim int) *hashing.Vectorizer {
	t.Helper()
	cfg := hashing.DefaultConfig()
	cfg.NFeatures = dim
	v, err := hashing.New(cfg)
	if err != nil {
		t.Fatalf("hashing.New: %v", err)
	}
	return v
}

func trainToy(t *testing.T, vec *hashing.Vectorizer) *svm.Model {
	t.Helper()
	texts := []string{"good product", "terrible", "it is ok"}
	codes := []int{1, -1, 0}
	m, err := svm.Train(vec.TransformBatch(texts), codes, svm.DefaultParams())
	if err != nil {
		t.Fatalf("svm.Train: %v", err)
	}
	return m
}

// --- Tests ---

func TestAnalyze_ToyEndToEnd(t *testing.T) {
	vec := newVectorizer(t, 1<<10)
	a, err := NewAnalyzer(vec, trainToy(t, vec))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	tests := []struct {
		text string
		want domsent.Label
	}{
		{"good product", domsent.Positive},
		{"terrible", domsent.Negative},
		{"it is ok", domsent.Neutral},
	}
	for _, tt := range tests {
		got, err := a.Analyze(context.Background(), tt.text)
		if err != nil {
			t.Fatalf("Analyze(%q): %v", tt.text, err)
		}
		if got != tt.want {
			t.Errorf("Analyze(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAnalyze_EmptyTextRejected(t *testing.T) {
	clf := &stubClassifier{nFeatures: 16, code: 1}
	a, err := NewAnalyzer(newVectorizer(t, 16), clf)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := a.Analyze(context.Background(), text)
		if !errors.Is(err, domain.ErrEmptyText) {
			t.Errorf("Analyze(%q): expected ErrEmptyText, got %v", text, err)
		}
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Analyze(%q): expected ErrValidation, got %v", text, err)
		}
	}
	if clf.calls != 0 {
		t.Errorf("model must not be called for empty text, got %d calls", clf.calls)
	}
}

func TestAnalyze_UnmappedCodeIsUnknown(t *testing.T) {
	a, err := NewAnalyzer(newVectorizer(t, 16), &stubClassifier{nFeatures: 16, code: 7})
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	got, err := a.Analyze(context.Background(), "whatever")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domsent.Unknown {
		t.Errorf("expected %q, got %q", domsent.Unknown, got)
	}
}

func TestAnalyze_PredictError(t *testing.T) {
	a, err := NewAnalyzer(newVectorizer(t, 16), &stubClassifier{nFeatures: 16, err: svm.ErrDimensionMismatch})
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	_, err = a.Analyze(context.Background(), "whatever")
	if !errors.Is(err, svm.ErrDimensionMismatch) {
		t.Errorf("expected wrapped ErrDimensionMismatch, got %v", err)
	}
}

func TestAnalyze_CacheServesRepeats(t *testing.T) {
	clf := &stubClassifier{nFeatures: 16, code: -1}
	a, err := NewAnalyzer(newVectorizer(t, 16), clf, WithCache(8), WithMetrics())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	for range 3 {
		got, err := a.Analyze(context.Background(), "same text")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != domsent.Negative {
			t.Errorf("expected negative, got %q", got)
		}
	}
	if clf.calls != 1 {
		t.Errorf("expected 1 model call, got %d", clf.calls)
	}
}

func TestAnalyze_Concurrent(t *testing.T) {
	vec := newVectorizer(t, 1<<10)
	a, err := NewAnalyzer(vec, trainToy(t, vec), WithCache(4))
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text := "good product"
			if i%2 == 1 {
				text = "terrible"
			}
			if _, err := a.Analyze(context.Background(), text); err != nil {
				t.Errorf("Analyze: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestNewAnalyzer_DimensionMismatch(t *testing.T) {
	_, err := NewAnalyzer(newVectorizer(t, 16), &stubClassifier{nFeatures: 32})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestNewAnalyzer_Nil(t *testing.T) {
	if _, err := NewAnalyzer(nil, &stubClassifier{nFeatures: 16}); err == nil {
		t.Fatal("expected error")
	}
}

func TestHealthCheck(t *testing.T) {
	a, err := NewAnalyzer(newVectorizer(t, 16), &stubClassifier{nFeatures: 16, err: errors.New("boom")})
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	if err := a.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
