package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/gazette/internal/source"
	"github.com/jjenkins/gazette/internal/store"
)

type fakeLoader struct {
	csv string
	err error
}

func (f *fakeLoader) Load(ctx context.Context, location string) (*source.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	return source.ReadCSV(strings.NewReader(f.csv))
}

type fakeWriter struct {
	seen     map[string]bool
	imports  []*store.Import
	finished map[int]int
	failOn   int // batch number (1-based) that fails, 0 for none
	batches  int
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{seen: make(map[string]bool), finished: make(map[int]int)}
}

func (f *fakeWriter) CreateImport(ctx context.Context, imp *store.Import) error {
	imp.ID = len(f.imports) + 1
	f.imports = append(f.imports, imp)
	return nil
}

func (f *fakeWriter) SaveBatch(ctx context.Context, importID int, notices []store.NoticeRow) (int, error) {
	f.batches++
	if f.batches == f.failOn {
		return 0, errors.New("connection reset")
	}
	inserted := 0
	for _, n := range notices {
		if !f.seen[n.Checksum] {
			f.seen[n.Checksum] = true
			inserted++
		}
	}
	return inserted, nil
}

func (f *fakeWriter) FinishImport(ctx context.Context, importID, rowCount int) error {
	f.finished[importID] = rowCount
	return nil
}

func quietImporter(loader TableLoader, w NoticeWriter) *Importer {
	imp := NewImporter(loader, w)
	imp.logger = log.New(io.Discard, "", 0)
	imp.errLogger = log.New(io.Discard, "", 0)
	return imp
}

const importCSV = `tipo,fecha_boletin,empresa,ruc,texto_completo
JUNTA_ACCIONISTAS,2024-03-05,ACME S.A.C.,20100154057,Convocatoria a junta general
REMATE,2023-12-01,,,Remate de inmueble
OTRO,2024-01-01,X,1,fuera
JUNTA_ACCIONISTAS,2024-03-05,ACME S.A.C.,20100154057,Convocatoria a junta general
`

func TestImporter_Import(t *testing.T) {
	w := newFakeWriter()
	imp := quietImporter(&fakeLoader{csv: importCSV}, w)

	stats, err := imp.Import(context.Background(), "base.csv")
	require.NoError(t, err)

	assert.Equal(t, &ImportStats{Total: 4, Imported: 2, Unchanged: 1, Skipped: 1}, stats)
	require.Len(t, w.imports, 1)
	assert.Equal(t, "base.csv", w.imports[0].Source)
	assert.Equal(t, []string{"tipo", "fecha_boletin", "empresa", "ruc", "texto_completo"}, w.imports[0].Columns)
	assert.Equal(t, 4, w.finished[1])

	// A second run finds nothing new.
	stats, err = imp.Import(context.Background(), "base.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Imported)
	assert.Equal(t, 3, stats.Unchanged)
}

func TestImporter_BatchFailureIsCounted(t *testing.T) {
	w := newFakeWriter()
	w.failOn = 1
	imp := quietImporter(&fakeLoader{csv: importCSV}, w)

	stats, err := imp.Import(context.Background(), "base.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Failed)
	assert.Equal(t, 0, stats.Imported)
}

func TestImporter_LoadError(t *testing.T) {
	imp := quietImporter(&fakeLoader{err: source.ErrNotFound}, newFakeWriter())

	_, err := imp.Import(context.Background(), "missing.csv")
	assert.ErrorIs(t, err, source.ErrNotFound)
}

func TestImporter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	imp := quietImporter(&fakeLoader{csv: importCSV}, newFakeWriter())
	_, err := imp.Import(ctx, "base.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParser_Parse(t *testing.T) {
	header := []string{"tipo", "empresa", "texto"}
	p := NewParser(header)

	a := p.Parse(map[string]string{"tipo": "LEY", "empresa": "", "texto": "Ley que  modifica\nel código"})
	assert.False(t, a.Skipped)
	assert.Equal(t, "LEY", a.Category.String)
	assert.True(t, a.Category.Valid)
	assert.Equal(t, 5, a.WordCount)
	assert.Len(t, a.Checksum, 32)

	b := p.Parse(map[string]string{"tipo": "LEY", "empresa": "x", "texto": "Ley que  modifica\nel código"})
	assert.NotEqual(t, a.Checksum, b.Checksum)

	assert.True(t, p.Parse(map[string]string{"tipo": " "}).Skipped)

	// Without a category column nothing is skipped.
	noCat := NewParser([]string{"texto"}).Parse(map[string]string{"texto": "hola"})
	assert.False(t, noCat.Skipped)
	assert.False(t, noCat.Category.Valid)
}
