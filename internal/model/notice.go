package model

import "strings"

// Physical column names of the consolidated gazette file
const (
	ColumnCategory   = "tipo"
	ColumnCompany    = "empresa"
	ColumnIdentifier = "ruc"
)

// DateColumns are the candidate publication date columns in priority order
var DateColumns = []string{"fecha_boletin", "fecha", "fecha_publicacion"}

// TextColumns are the candidate body text columns in priority order
var TextColumns = []string{"texto_completo", "texto", "contenido"}

// Record represents one legal notice from the gazette
type Record struct {
	ID     int // Position in the loaded snapshot, stable for the snapshot's lifetime
	Fields map[string]string
}

// Value returns the trimmed value of column, reporting false when the
// column is missing or blank.
func (r Record) Value(column string) (string, bool) {
	v, ok := r.Fields[column]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

// Raw returns the untrimmed value of column
func (r Record) Raw(column string) string {
	return r.Fields[column]
}

// Category returns the record's category value exactly as stored.
// Surrounding whitespace makes it unknown rather than being trimmed away.
func (r Record) Category() Category {
	return Category(r.Raw(ColumnCategory))
}

// Columns is the set of column names available in a record source
type Columns map[string]struct{}

// NewColumns builds a column set from a header
func NewColumns(names []string) Columns {
	cols := make(Columns, len(names))
	for _, n := range names {
		cols[n] = struct{}{}
	}
	return cols
}

// Has reports whether name is an available column
func (c Columns) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// RecordSet is an immutable snapshot of loaded notices
type RecordSet struct {
	header  []string
	columns Columns
	records []Record
	dropped int
}

// NewRecordSet builds a snapshot from a header and its rows. When the
// category column is present, rows whose category is blank or outside the
// enumeration are dropped here so no query ever sees them.
func NewRecordSet(header []string, rows []map[string]string) *RecordSet {
	set := &RecordSet{
		header:  append([]string(nil), header...),
		columns: NewColumns(header),
		records: make([]Record, 0, len(rows)),
	}

	checkCategory := set.columns.Has(ColumnCategory)
	for _, row := range rows {
		rec := Record{ID: len(set.records), Fields: row}
		if checkCategory && !rec.Category().Valid() {
			set.dropped++
			continue
		}
		set.records = append(set.records, rec)
	}

	return set
}

// Header returns the source column names in their original order
func (s *RecordSet) Header() []string {
	return append([]string(nil), s.header...)
}

// Columns returns the available column set
func (s *RecordSet) Columns() Columns {
	return s.columns
}

// Records returns a copy of the record slice. Callers may reorder the copy
// freely; the snapshot itself is never modified.
func (s *RecordSet) Records() []Record {
	return append([]Record(nil), s.records...)
}

// Len returns the number of records kept in the snapshot
func (s *RecordSet) Len() int {
	return len(s.records)
}

// Dropped returns how many source rows were excluded by category closure
func (s *RecordSet) Dropped() int {
	return s.dropped
}
