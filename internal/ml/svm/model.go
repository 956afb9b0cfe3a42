package svm

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/reviewdex/internal/ml/hashing"
)

// ErrDimensionMismatch signals a vector whose length differs from the model's feature space.
var ErrDimensionMismatch = errors.New("feature dimension mismatch")

// Estimator is one binary one-vs-one hyperplane.
// A positive decision value votes for Positive, otherwise for Negative.
type Estimator struct {
	Positive int
	Negative int
	Bias     float64
	Weights  map[int]float64
}

// Decision returns w·x + b.
func (e *Estimator) Decision(x hashing.Vector) float64 {
	s := e.Bias
	for k, idx := range x.Indices {
		if w, ok := e.Weights[idx]; ok {
			s += w * x.Values[k]
		}
	}
	return s
}

// Model is a fitted linear multiclass SVM. Immutable and safe for concurrent use.
type Model struct {
	nFeatures  int
	classes    []int
	estimators []Estimator
	params     Params
}

// NewModel assembles a model from fitted estimators (used when loading artifacts).
func NewModel(nFeatures int, classes []int, estimators []Estimator, params Params) (*Model, error) {
	if nFeatures <= 0 {
		return nil, fmt.Errorf("n_features must be positive, got %d", nFeatures)
	}
	if len(classes) < 2 {
		return nil, fmt.Errorf("at least two classes are required, got %d", len(classes))
	}
	if !slices.IsSorted(classes) || len(slices.Compact(slices.Clone(classes))) != len(classes) {
		return nil, fmt.Errorf("classes must be sorted and unique: %v", classes)
	}
	want := len(classes) * (len(classes) - 1) / 2
	if len(estimators) != want {
		return nil, fmt.Errorf("expected %d estimators for %d classes, got %d", want, len(classes), len(estimators))
	}
	for i := range estimators {
		e := &estimators[i]
		if !slices.Contains(classes, e.Positive) || !slices.Contains(classes, e.Negative) || e.Positive == e.Negative {
			return nil, fmt.Errorf("estimator %d has invalid classes %d/%d", i, e.Negative, e.Positive)
		}
		for idx := range e.Weights {
			if idx < 0 || idx >= nFeatures {
				return nil, fmt.Errorf("estimator %d weight index %d out of range", i, idx)
			}
		}
	}
	return &Model{
		nFeatures:  nFeatures,
		classes:    slices.Clone(classes),
		estimators: estimators,
		params:     params,
	}, nil
}

// NFeatures returns the feature space dimension the model was fitted on.
func (m *Model) NFeatures() int { return m.nFeatures }

// Classes returns the sorted class codes.
func (m *Model) Classes() []int { return slices.Clone(m.classes) }

// Estimators returns the fitted one-vs-one estimators. Callers must not mutate them.
func (m *Model) Estimators() []Estimator { return m.estimators }

// Params returns the solver parameters used for fitting.
func (m *Model) Params() Params { return m.params }

// Predict returns the class code with the most one-vs-one votes.
// Ties go to the lowest class code.
func (m *Model) Predict(x hashing.Vector) (int, error) {
	if x.Len() != m.nFeatures {
		return 0, fmt.Errorf("%w: vector has %d, model has %d", ErrDimensionMismatch, x.Len(), m.nFeatures)
	}

	votes := make(map[int]int, len(m.classes))
	for i := range m.estimators {
		e := &m.estimators[i]
		if e.Decision(x) > 0 {
			votes[e.Positive]++
		} else {
			votes[e.Negative]++
		}
	}

	best := m.classes[0]
	for _, c := range m.classes[1:] {
		if votes[c] > votes[best] {
			best = c
		}
	}
	return best, nil
}

// PredictBatch predicts every vector in order.
func (m *Model) PredictBatch(xs []hashing.Vector) ([]int, error) {
	out := make([]int, len(xs))
	for i, x := range xs {
		c, err := m.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("predict [%d]: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// Decision returns the raw decision value of every estimator, in estimator order.
func (m *Model) Decision(x hashing.Vector) ([]float64, error) {
	if x.Len() != m.nFeatures {
		return nil, fmt.Errorf("%w: vector has %d, model has %d", ErrDimensionMismatch, x.Len(), m.nFeatures)
	}
	out := make([]float64, len(m.estimators))
	for i := range m.estimators {
		out[i] = m.estimators[i].Decision(x)
	}
	return out, nil
}
