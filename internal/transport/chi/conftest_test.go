package chi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
	healthuc "github.com/kailas-cloud/reviewdex/internal/usecase/health"
)

const testProductID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"

type mockProducts struct {
	createFn func(ctx context.Context, name string, price float64, description string, stock int) (domprod.Product, error)
	getFn    func(ctx context.Context, id string) (domprod.Product, error)
	listFn   func(ctx context.Context, offset, limit int) ([]domprod.Product, int, error)
}

func (m *mockProducts) Create(
	ctx context.Context, name string, price float64, description string, stock int,
) (domprod.Product, error) {
	return m.createFn(ctx, name, price, description, stock)
}

func (m *mockProducts) Get(ctx context.Context, id string) (domprod.Product, error) {
	return m.getFn(ctx, id)
}

func (m *mockProducts) List(ctx context.Context, offset, limit int) ([]domprod.Product, int, error) {
	return m.listFn(ctx, offset, limit)
}

type mockReviews struct {
	createFn  func(ctx context.Context, productID, text, label string) (domrev.Review, error)
	listFn    func(ctx context.Context, productID string, offset, limit int) ([]domrev.Review, int, error)
	summaryFn func(ctx context.Context, productID string) (map[sentiment.Label]int, error)
}

func (m *mockReviews) Create(ctx context.Context, productID, text, label string) (domrev.Review, error) {
	return m.createFn(ctx, productID, text, label)
}

func (m *mockReviews) List(ctx context.Context, productID string, offset, limit int) ([]domrev.Review, int, error) {
	return m.listFn(ctx, productID, offset, limit)
}

func (m *mockReviews) Summary(ctx context.Context, productID string) (map[sentiment.Label]int, error) {
	return m.summaryFn(ctx, productID)
}

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, text string) (sentiment.Label, error)
	calls     int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, text string) (sentiment.Label, error) {
	m.calls++
	return m.analyzeFn(ctx, text)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

type testDeps struct {
	products *mockProducts
	reviews  *mockReviews
	analyzer *mockAnalyzer
	health   *mockHealth
}

func newTestDeps() *testDeps {
	return &testDeps{
		products: &mockProducts{},
		reviews:  &mockReviews{},
		analyzer: &mockAnalyzer{},
		health: &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK, "model": healthuc.CheckOK},
		}},
	}
}

func (d *testDeps) handler(cfg RouterConfig) http.Handler {
	return NewServer(d.products, d.reviews, d.analyzer, d.health, nil).Routes(cfg)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v (body %q)", err, rr.Body.String())
	}
	return resp
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code ErrorCode) ErrorResponse {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	resp := decodeError(t, rr)
	if resp.Code != code {
		t.Errorf("code = %q, want %q", resp.Code, code)
	}
	return resp
}

var testCreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
