// Package source loads the consolidated gazette table into a record
// snapshot, from a local CSV file or over HTTP.
package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jjenkins/gazette/internal/model"
)

// DefaultPath is where the consolidation step writes the gazette table
const DefaultPath = "base_datos_final/base_datos_completa.csv"

// ErrNotFound is returned when the source file does not exist
var ErrNotFound = errors.New("source file not found")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a parsed tabular source: a header and one field map per row
type Table struct {
	Header []string
	Rows   []map[string]string
}

// RecordSet builds the query snapshot from the table
func (t *Table) RecordSet() *model.RecordSet {
	return model.NewRecordSet(t.Header, t.Rows)
}

// ReadCSV parses a CSV document with a header row. Short rows leave the
// trailing columns blank; extra cells are ignored.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &Table{Header: header}
	for {
		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", len(table.Rows)+2, err)
		}

		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(cells) {
				row[col] = cells[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// LoadFile reads a CSV table from path
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (run the consolidation step first)", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return table, nil
}
