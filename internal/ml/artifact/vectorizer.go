package artifact

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/reviewdex/internal/ml/hashing"
)

type vectorizerDoc struct {
	Format    string    `json:"format"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	hashing.Config
}

// SaveVectorizer writes the vectorizer configuration to path.
func SaveVectorizer(path string, cfg hashing.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("save vectorizer: %w", err)
	}
	doc := vectorizerDoc{
		Format:    vectorizerFormat,
		Version:   formatVersion,
		CreatedAt: time.Now().UTC(),
		Config:    cfg,
	}
	return writeJSON(path, doc)
}

// LoadVectorizer reads and validates a vectorizer artifact.
func LoadVectorizer(path string) (*hashing.Vectorizer, error) {
	var doc vectorizerDoc
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	if err := checkHeader(path, doc.Format, doc.Version, vectorizerFormat); err != nil {
		return nil, err
	}
	v, err := hashing.New(doc.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	return v, nil
}
