// Package dataset loads pre-computed CSV tables and memoizes them for the
// process lifetime.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrTableTooLarge = errors.New("table exceeds size limit")

// Table is a parsed CSV file. The first record is the header; row count and
// column names are preserved exactly as read.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Parse reads CSV from r. The reader settings tolerate the quoting and
// spacing quirks of spreadsheet exports.
func Parse(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	t := &Table{Name: strings.TrimSuffix(name, ".csv")}
	if len(records) == 0 {
		return t, nil
	}
	t.Columns = records[0]
	t.Rows = records[1:]
	return t, nil
}

// Load parses the CSV file at path. maxBytes <= 0 disables the size limit.
func Load(path string, maxBytes int64) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	if maxBytes > 0 {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("stat table: %w", err)
		}
		if info.Size() > maxBytes {
			return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrTableTooLarge, path, info.Size(), maxBytes)
		}
	}

	return Parse(f, filepath.Base(path))
}
