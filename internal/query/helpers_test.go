package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/jjenkins/gazette/internal/model"
)

var fixtureHeader = []string{"n", "tipo", "fecha_boletin", "empresa", "ruc", "texto_completo"}

// fixtureRows covers the awkward cases: blank and unknown categories, blank
// companies and identifiers, missing and malformed dates.
var fixtureRows = [][]string{
	{"decreto", "DECRETO_SUPREMO", "2024-01-10", "", "", "Decreto que aprueba el reglamento de la SUNAT"},
	{"junta", "JUNTA_ACCIONISTAS", "2024-03-05", "ACME S.A.C.", "20100154057", "Convocatoria a junta general de accionistas"},
	{"remate", "REMATE", "2023-12-01", "Transportes Acme EIRL", "20512345678", "Remate de inmueble en Lima"},
	{"otro", "OTRO", "2024-02-01", "ACME", "1", "categoria fuera del catalogo"},
	{"blank", "", "2024-02-02", "ACME", "2", "sin categoria"},
	{"disolucion", "DISOLUCION", "", "Minera Andina", "  ", "Disolución y liquidación de la sociedad"},
	{"aviso", "AVISO", "not a date", "", "", ""},
}

func buildSet(t *testing.T, header []string, rows [][]string) *model.RecordSet {
	t.Helper()
	maps := make([]map[string]string, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			t.Fatalf("row %d has %d cells, header has %d", i, len(row), len(header))
		}
		m := make(map[string]string, len(header))
		for j, col := range header {
			m[col] = row[j]
		}
		maps[i] = m
	}
	return model.NewRecordSet(header, maps)
}

func fixtureSet(t *testing.T) *model.RecordSet {
	return buildSet(t, fixtureHeader, fixtureRows)
}

// withoutColumn drops one column from the fixture header and rows
func withoutColumn(t *testing.T, column string) *model.RecordSet {
	t.Helper()
	idx := -1
	var header []string
	for i, c := range fixtureHeader {
		if c == column {
			idx = i
			continue
		}
		header = append(header, c)
	}
	if idx < 0 {
		t.Fatalf("unknown column %q", column)
	}
	rows := make([][]string, len(fixtureRows))
	for i, row := range fixtureRows {
		rows[i] = append(append([]string(nil), row[:idx]...), row[idx+1:]...)
	}
	return buildSet(t, header, rows)
}

func names(records []model.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Fields["n"]
	}
	return out
}

// numbered builds n valid notices named r1..rn with descending dates so the
// default sort keeps them in order.
func numbered(t *testing.T, n int) *model.RecordSet {
	t.Helper()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{
			fmt.Sprintf("r%d", i+1),
			"AVISO",
			base.Add(-time.Duration(i) * time.Minute).Format("2006-01-02 15:04:05"),
			"",
			"",
			"texto",
		}
	}
	return buildSet(t, fixtureHeader, rows)
}
