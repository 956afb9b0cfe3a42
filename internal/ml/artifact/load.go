package artifact

import (
	"fmt"

	"github.com/kailas-cloud/reviewdex/internal/ml/hashing"
	"github.com/kailas-cloud/reviewdex/internal/ml/svm"
)

// Set is a matched vectorizer and classifier pair.
type Set struct {
	Vectorizer *hashing.Vectorizer
	Model      *svm.Model
}

// NFeatures returns the shared feature space size.
func (s Set) NFeatures() int { return s.Model.NFeatures() }

// Save writes both artifacts.
func Save(p Paths, cfg hashing.Config, m *svm.Model) error {
	if cfg.NFeatures != m.NFeatures() {
		return fmt.Errorf("%w: vectorizer %d, classifier %d", ErrDimensionMismatch, cfg.NFeatures, m.NFeatures())
	}
	if err := SaveVectorizer(p.Vectorizer, cfg); err != nil {
		return fmt.Errorf("save vectorizer: %w", err)
	}
	if err := SaveClassifier(p.Classifier, m); err != nil {
		return fmt.Errorf("save classifier: %w", err)
	}
	return nil
}

// Load reads both artifacts and checks that they share a feature space.
// expectedFeatures > 0 additionally pins the size the caller was configured for.
func Load(p Paths, expectedFeatures int) (Set, error) {
	vec, err := LoadVectorizer(p.Vectorizer)
	if err != nil {
		return Set{}, fmt.Errorf("load vectorizer: %w", err)
	}
	model, err := LoadClassifier(p.Classifier)
	if err != nil {
		return Set{}, fmt.Errorf("load classifier: %w", err)
	}
	if vec.NFeatures() != model.NFeatures() {
		return Set{}, fmt.Errorf("%w: vectorizer %d, classifier %d",
			ErrDimensionMismatch, vec.NFeatures(), model.NFeatures())
	}
	if expectedFeatures > 0 && expectedFeatures != vec.NFeatures() {
		return Set{}, fmt.Errorf("%w: artifacts have %d features, configured %d",
			ErrDimensionMismatch, vec.NFeatures(), expectedFeatures)
	}
	return Set{Vectorizer: vec, Model: model}, nil
}
