package chi

import (
	"errors"
	"net/http"
	"strconv"

	gochi "github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	healthuc "github.com/kailas-cloud/reviewdex/internal/usecase/health"
)

// ListProducts handles GET /api/products.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	list, total, err := s.products.List(r.Context(), page.Offset, page.Limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]ProductResponse, len(list))
	for i, p := range list {
		items[i] = productToResponse(p)
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	writeJSON(w, http.StatusOK, items)
}

// CreateProduct handles POST /api/products.
func (s *Server) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, validationMessage(err))
		return
	}

	p, err := s.products.Create(r.Context(), req.Name, float64(*req.Price), req.Description, int(*req.Stock))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/products/"+p.ID())
	writeJSON(w, http.StatusCreated, productToResponse(p))
}

// GetProduct handles GET /api/products/{product_id}.
func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.products.Get(r.Context(), gochi.URLParam(r, "product_id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productToResponse(p))
}

// ListReviews handles GET /api/reviews/{product_id}.
func (s *Server) ListReviews(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	list, total, err := s.reviews.List(r.Context(), gochi.URLParam(r, "product_id"), page.Offset, page.Limit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]ReviewResponse, len(list))
	for i, rv := range list {
		items[i] = reviewToResponse(rv)
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	writeJSON(w, http.StatusOK, items)
}

// CreateReview handles POST /api/reviews/{product_id}.
func (s *Server) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, validationMessage(err))
		return
	}

	rv, err := s.reviews.Create(r.Context(), gochi.URLParam(r, "product_id"), req.Text, req.Sentiment)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reviewToResponse(rv))
}

// ReviewSummary handles GET /api/reviews/{product_id}/summary.
func (s *Server) ReviewSummary(w http.ResponseWriter, r *http.Request) {
	productID := gochi.URLParam(r, "product_id")
	counts, err := s.reviews.Summary(r.Context(), productID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(productID, counts))
}

// AnalyzeSentiment handles POST /api/analyze-sentiment.
func (s *Server) AnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Review == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, emptyReviewMessage)
		return
	}

	label, err := s.analyzer.Analyze(r.Context(), req.Review)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{Review: req.Review, Sentiment: label.String()})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}

// decodeBody reads a JSON request body. On failure it writes a 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return false
	}
	return true
}

// parsePage reads the optional offset and limit query parameters.
func parsePage(w http.ResponseWriter, r *http.Request) (pageQuery, bool) {
	var q pageQuery
	for name, dst := range map[string]*int{"offset": &q.Offset, "limit": &q.Limit} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, name+" must be an integer")
			return pageQuery{}, false
		}
		*dst = v
	}
	if err := validate.Struct(&q); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, validationMessage(err))
		return pageQuery{}, false
	}
	return q, true
}
