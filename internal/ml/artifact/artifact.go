// Package artifact persists the vectorizer and classifier produced by a
// training run. Files are JSON, written atomically, and cross-checked on load.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Default file names inside a model directory.
const (
	VectorizerFile = "vectorizer.json"
	ClassifierFile = "classifier.json"
)

const (
	vectorizerFormat = "reviewdex.hashing-vectorizer"
	classifierFormat = "reviewdex.linear-svm"
	formatVersion    = 1
)

var (
	// ErrCorruptArtifact is returned when a file exists but cannot be decoded or validated.
	ErrCorruptArtifact = errors.New("corrupt artifact")
	// ErrDimensionMismatch is returned when artifacts disagree on the feature space size.
	ErrDimensionMismatch = errors.New("artifact feature dimension mismatch")
)

// Paths locates the two artifact files.
type Paths struct {
	Vectorizer string
	Classifier string
}

// PathsIn returns the default artifact paths under dir.
func PathsIn(dir string) Paths {
	return Paths{
		Vectorizer: filepath.Join(dir, VectorizerFile),
		Classifier: filepath.Join(dir, ClassifierFile),
	}
}

// writeJSON encodes v into a temp file next to path, syncs it and renames it
// into place, so readers see either the old file or the complete new one.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptArtifact, path, err)
	}
	return nil
}

func checkHeader(path, format string, version int, wantFormat string) error {
	if format != wantFormat {
		return fmt.Errorf("%w: %s: format %q, want %q", ErrCorruptArtifact, path, format, wantFormat)
	}
	if version != formatVersion {
		return fmt.Errorf("%w: %s: unsupported version %d", ErrCorruptArtifact, path, version)
	}
	return nil
}
