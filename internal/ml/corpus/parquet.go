package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// LoadParquet reads a Parquet corpus. Columns are resolved by name from the
// file schema, so any extra columns are ignored.
func LoadParquet(path string, opts Options) ([]Sample, error) {
	opts = opts.withDefaults()

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	labelIdx, textIdx := -1, -1
	for i, col := range pf.Schema().Columns() {
		if len(col) == 0 {
			continue
		}
		switch col[0] {
		case opts.LabelColumn:
			labelIdx = i
		case opts.TextColumn:
			textIdx = i
		}
	}
	if labelIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opts.LabelColumn)
	}
	if textIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opts.TextColumn)
	}

	var samples []Sample
	row := 0
	buf := make([]parquet.Row, 1000)
	for _, rg := range pf.RowGroups() {
		rows := parquet.NewRowGroupReader(rg)
		for {
			n, readErr := rows.ReadRows(buf)
			for i := 0; i < n; i++ {
				row++
				var label, text string
				for _, v := range buf[i] {
					if v.IsNull() {
						continue
					}
					switch v.Column() {
					case labelIdx:
						label = v.String()
					case textIdx:
						text = v.String()
					}
				}
				s, err := toSample(row, label, text)
				if err != nil {
					return nil, err
				}
				samples = append(samples, s)
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return nil, fmt.Errorf("read rows: %w", readErr)
			}
		}
	}
	return samples, nil
}
