package sentiment

import "github.com/kailas-cloud/reviewdex/internal/ml/hashing"

// Vectorizer maps text into the model's feature space.
type Vectorizer interface {
	Transform(text string) hashing.Vector
	NFeatures() int
}

// Classifier predicts a class code for a feature vector.
type Classifier interface {
	Predict(x hashing.Vector) (int, error)
	NFeatures() int
}
