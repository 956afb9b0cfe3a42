package artifact

import (
	"fmt"
	"slices"
	"time"

	"github.com/kailas-cloud/reviewdex/internal/ml/svm"
)

type estimatorDoc struct {
	Positive int       `json:"positive"`
	Negative int       `json:"negative"`
	Bias     float64   `json:"bias"`
	Indices  []int     `json:"indices"`
	Values   []float64 `json:"values"`
}

type classifierDoc struct {
	Format     string         `json:"format"`
	Version    int            `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	NFeatures  int            `json:"n_features"`
	Classes    []int          `json:"classes"`
	Estimators []estimatorDoc `json:"estimators"`
	Params     svm.Params     `json:"params"`
}

// SaveClassifier writes a fitted model to path. Weights are stored sparsely
// with indices in ascending order so identical models produce identical files.
func SaveClassifier(path string, m *svm.Model) error {
	doc := classifierDoc{
		Format:    classifierFormat,
		Version:   formatVersion,
		CreatedAt: time.Now().UTC(),
		NFeatures: m.NFeatures(),
		Classes:   m.Classes(),
		Params:    m.Params(),
	}
	for _, e := range m.Estimators() {
		ed := estimatorDoc{
			Positive: e.Positive,
			Negative: e.Negative,
			Bias:     e.Bias,
			Indices:  make([]int, 0, len(e.Weights)),
			Values:   make([]float64, 0, len(e.Weights)),
		}
		for idx := range e.Weights {
			ed.Indices = append(ed.Indices, idx)
		}
		slices.Sort(ed.Indices)
		for _, idx := range ed.Indices {
			ed.Values = append(ed.Values, e.Weights[idx])
		}
		doc.Estimators = append(doc.Estimators, ed)
	}
	return writeJSON(path, doc)
}

// LoadClassifier reads and validates a classifier artifact.
func LoadClassifier(path string) (*svm.Model, error) {
	var doc classifierDoc
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	if err := checkHeader(path, doc.Format, doc.Version, classifierFormat); err != nil {
		return nil, err
	}

	estimators := make([]svm.Estimator, len(doc.Estimators))
	for i, ed := range doc.Estimators {
		if len(ed.Indices) != len(ed.Values) {
			return nil, fmt.Errorf("%w: %s: estimator %d has %d indices but %d values",
				ErrCorruptArtifact, path, i, len(ed.Indices), len(ed.Values))
		}
		w := make(map[int]float64, len(ed.Indices))
		for k, idx := range ed.Indices {
			w[idx] = ed.Values[k]
		}
		estimators[i] = svm.Estimator{
			Positive: ed.Positive,
			Negative: ed.Negative,
			Bias:     ed.Bias,
			Weights:  w,
		}
	}

	m, err := svm.NewModel(doc.NFeatures, doc.Classes, estimators, doc.Params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	return m, nil
}
