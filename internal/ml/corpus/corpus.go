// Package corpus reads labelled review corpora for training.
package corpus

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/reviewdex/internal/domain/sentiment"
)

// Default column names of the review corpus.
const (
	DefaultLabelColumn = "division"
	DefaultTextColumn  = "review"
)

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing column")
	// ErrUnsupportedFormat is returned for file extensions other than .csv and .parquet.
	ErrUnsupportedFormat = errors.New("unsupported corpus format")
)

// Sample is one labelled review.
type Sample struct {
	Text string
	Code int
}

// Options selects the corpus columns.
type Options struct {
	LabelColumn string
	TextColumn  string
}

func (o Options) withDefaults() Options {
	if o.LabelColumn == "" {
		o.LabelColumn = DefaultLabelColumn
	}
	if o.TextColumn == "" {
		o.TextColumn = DefaultTextColumn
	}
	return o
}

// LabelError reports an unmapped category at a 1-based data row.
type LabelError struct {
	Row   int
	Value string
	Err   error
}

func (e *LabelError) Error() string {
	return fmt.Sprintf("row %d: category %q: %v", e.Row, e.Value, e.Err)
}

func (e *LabelError) Unwrap() error { return e.Err }

// Load reads a corpus, choosing the reader by file extension.
func Load(path string, opts Options) ([]Sample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path, opts)
	case ".parquet":
		return LoadParquet(path, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// toSample maps a raw label to its training code. Empty text is kept.
func toSample(row int, label, text string) (Sample, error) {
	l, err := sentiment.ParseLabel(label)
	if err != nil {
		return Sample{}, &LabelError{Row: row, Value: label, Err: err}
	}
	code, _ := l.Code()
	return Sample{Text: text, Code: code}, nil
}

// Split returns texts and codes as parallel slices.
func Split(samples []Sample) ([]string, []int) {
	texts := make([]string, len(samples))
	codes := make([]int, len(samples))
	for i, s := range samples {
		texts[i] = s.Text
		codes[i] = s.Code
	}
	return texts, codes
}
