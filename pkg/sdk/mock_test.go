package reviewdex

import (
	"context"

	domprod "github.com/kailas-cloud/reviewdex/internal/domain/product"
	domrev "github.com/kailas-cloud/reviewdex/internal/domain/review"
	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
	healthuc "github.com/kailas-cloud/reviewdex/internal/usecase/health"
)

// --- productUseCase mock ---

type mockProductUC struct {
	createFn func(ctx context.Context, name string, price float64, description string, stock int) (domprod.Product, error)
	getFn    func(ctx context.Context, id string) (domprod.Product, error)
	listFn   func(ctx context.Context, offset, limit int) ([]domprod.Product, int, error)
}

func (m *mockProductUC) Create(
	ctx context.Context, name string, price float64, description string, stock int,
) (domprod.Product, error) {
	return m.createFn(ctx, name, price, description, stock)
}

func (m *mockProductUC) Get(ctx context.Context, id string) (domprod.Product, error) {
	return m.getFn(ctx, id)
}

func (m *mockProductUC) List(ctx context.Context, offset, limit int) ([]domprod.Product, int, error) {
	return m.listFn(ctx, offset, limit)
}

// --- reviewUseCase mock ---

type mockReviewUC struct {
	createFn  func(ctx context.Context, productID, text, label string) (domrev.Review, error)
	listFn    func(ctx context.Context, productID string, offset, limit int) ([]domrev.Review, int, error)
	summaryFn func(ctx context.Context, productID string) (map[sentiment.Label]int, error)
}

func (m *mockReviewUC) Create(ctx context.Context, productID, text, label string) (domrev.Review, error) {
	return m.createFn(ctx, productID, text, label)
}

func (m *mockReviewUC) List(
	ctx context.Context, productID string, offset, limit int,
) ([]domrev.Review, int, error) {
	return m.listFn(ctx, productID, offset, limit)
}

func (m *mockReviewUC) Summary(ctx context.Context, productID string) (map[sentiment.Label]int, error) {
	return m.summaryFn(ctx, productID)
}

// --- analyzerUseCase mock ---

type mockAnalyzerUC struct {
	analyzeFn func(ctx context.Context, text string) (sentiment.Label, error)
}

func (m *mockAnalyzerUC) Analyze(ctx context.Context, text string) (sentiment.Label, error) {
	return m.analyzeFn(ctx, text)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(
	productSvc productUseCase,
	reviewSvc reviewUseCase,
	analyzerSvc analyzerUseCase,
) *Client {
	return &Client{
		productSvc:  productSvc,
		reviewSvc:   reviewSvc,
		analyzerSvc: analyzerSvc,
	}
}
