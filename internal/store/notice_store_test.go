package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and starts from empty tables
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := NewDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db))
	_, err = db.ExecContext(ctx, `TRUNCATE notices, imports, metrics RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return db
}

func TestNoticeStore_EmptySnapshot(t *testing.T) {
	s := NewNoticeStore(openTestDB(t))

	set, err := s.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestNoticeStore_SaveBatchDedupes(t *testing.T) {
	ctx := context.Background()
	s := NewNoticeStore(openTestDB(t))

	imp := &Import{Source: "base.csv", Columns: []string{"tipo", "empresa", "ruc"}}
	require.NoError(t, s.CreateImport(ctx, imp))
	require.NotZero(t, imp.ID)

	notices := []NoticeRow{
		{Checksum: "a", Category: sql.NullString{String: "REMATE", Valid: true}, Fields: map[string]string{"tipo": "REMATE", "empresa": "ACME"}},
		{Checksum: "b", Category: sql.NullString{String: "LEY", Valid: true}, Fields: map[string]string{"tipo": "LEY", "ruc": "20100154057"}},
	}

	inserted, err := s.SaveBatch(ctx, imp.ID, notices)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	inserted, err = s.SaveBatch(ctx, imp.ID, notices)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	require.NoError(t, s.FinishImport(ctx, imp.ID, 2))

	latest, err := s.LatestImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tipo", "empresa", "ruc"}, latest.Columns)
	assert.Equal(t, 2, latest.RowCount)

	set, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, "ACME", set.Records()[0].Fields["empresa"])

	count, err := s.CountNotices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNoticeStore_SnapshotUsesAllImportColumns(t *testing.T) {
	ctx := context.Background()
	s := NewNoticeStore(openTestDB(t))

	first := &Import{Source: "old.csv", Columns: []string{"tipo", "empresa", "texto_completo"}}
	require.NoError(t, s.CreateImport(ctx, first))
	_, err := s.SaveBatch(ctx, first.ID, []NoticeRow{
		{Checksum: "old", Fields: map[string]string{"tipo": "LEY", "empresa": "ACME", "texto_completo": "Ley antigua"}},
	})
	require.NoError(t, err)

	second := &Import{Source: "new.csv", Columns: []string{"tipo", "ruc"}, ImportedAt: first.ImportedAt.Add(time.Hour)}
	require.NoError(t, s.CreateImport(ctx, second))
	_, err = s.SaveBatch(ctx, second.ID, []NoticeRow{
		{Checksum: "new", Fields: map[string]string{"tipo": "REMATE", "ruc": "20100154057"}},
	})
	require.NoError(t, err)

	cols, err := s.Columns(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tipo", "empresa", "texto_completo", "ruc"}, cols)

	set, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	assert.True(t, set.Columns().Has("empresa"))
	assert.True(t, set.Columns().Has("texto_completo"))
	assert.True(t, set.Columns().Has("ruc"))
}
