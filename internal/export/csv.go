// Package export writes result sets for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jjenkins/gazette/internal/model"
)

// Filename is the download name offered for CSV exports
const Filename = "resultados_peruano.csv"

// ContentType is the MIME type of CSV exports
const ContentType = "text/csv; charset=utf-8"

// WriteCSV writes records as CSV with header as the first row. Cells for
// columns a record lacks are left empty.
func WriteCSV(w io.Writer, header []string, records []model.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(header))
	for _, r := range records {
		for i, col := range header {
			row[i] = r.Fields[col]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", r.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
