// Package source extracts the three raw sales reports and normalizes each
// one independently: trimmed headers, dropped junk columns, renames to the
// warehouse vocabulary, and typed-field coercion. No cross-source logic
// lives here.
package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"salesetl/internal/table"
)

// CleanSpec is the per-source normalization configuration. The specs are
// fixed constants of the pipeline, passed in explicitly so tests can run
// variants side by side.
type CleanSpec struct {
	DropColumns []string
	Rename      map[string]string
	Coerce      map[string]Coercion
}

// ReadCSV loads a delimited file into a raw all-string table. Header
// names are whitespace-trimmed; a UTF-8 BOM is stripped; short rows are
// padded with empty cells rather than rejected.
func ReadCSV(path string) (table.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		return table.Table{}, fmt.Errorf("read %s header: %w", path, err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	out := table.New(headers...)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table.Table{}, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(table.Row, len(headers))
		for i, h := range headers {
			// empty cells read as null, matching how every later
			// stage reasons about missing values
			if i < len(rec) && strings.TrimSpace(rec[i]) != "" {
				row[h] = table.Str(rec[i])
			} else {
				row[h] = table.NullValue()
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// Clean applies a CleanSpec in the fixed order drop, rename, coerce.
// Coercion failures turn single cells null; they never fail the table.
func Clean(t table.Table, spec CleanSpec) table.Table {
	t.DropColumns(spec.DropColumns...)
	t.RenameColumns(spec.Rename)
	for col, c := range spec.Coerce {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			row.Set(col, c.Apply(row.Get(col).Raw))
		}
	}
	return t
}

// Load reads and normalizes one source. The read failing is fatal to the
// whole run; nothing downstream can proceed without a source table.
func Load(path string, spec CleanSpec) (table.Table, error) {
	t, err := ReadCSV(path)
	if err != nil {
		return table.Table{}, err
	}
	return Clean(t, spec), nil
}
