package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/jjenkins/gazette/internal/model"
)

// NoticeRow is a notice as persisted by the importer
type NoticeRow struct {
	Checksum  string
	Category  sql.NullString
	WordCount int
	Fields    map[string]string
}

// Import describes one run of the importer
type Import struct {
	ID         int
	Source     string
	Columns    []string
	RowCount   int
	ImportedAt time.Time
}

// NoticeStore handles database operations for notices
type NoticeStore struct {
	db *sql.DB
}

// NewNoticeStore creates a new NoticeStore
func NewNoticeStore(db *sql.DB) *NoticeStore {
	return &NoticeStore{db: db}
}

// CreateImport registers a new import run and sets its ID
func (s *NoticeStore) CreateImport(ctx context.Context, imp *Import) error {
	query := `
		INSERT INTO imports (source, columns, row_count, imported_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	if imp.ImportedAt.IsZero() {
		imp.ImportedAt = time.Now()
	}

	err := s.db.QueryRowContext(ctx, query,
		imp.Source,
		pq.Array(imp.Columns),
		imp.RowCount,
		imp.ImportedAt,
	).Scan(&imp.ID)
	if err != nil {
		return fmt.Errorf("failed to create import for %s: %w", imp.Source, err)
	}

	return nil
}

// FinishImport stores the final row count of an import run
func (s *NoticeStore) FinishImport(ctx context.Context, importID, rowCount int) error {
	_, err := s.db.ExecContext(ctx, `UPDATE imports SET row_count = $2 WHERE id = $1`, importID, rowCount)
	if err != nil {
		return fmt.Errorf("failed to finish import %d: %w", importID, err)
	}
	return nil
}

// LatestImport returns the most recent import run, or nil when none exists
func (s *NoticeStore) LatestImport(ctx context.Context) (*Import, error) {
	query := `
		SELECT id, source, columns, row_count, imported_at
		FROM imports
		ORDER BY imported_at DESC, id DESC
		LIMIT 1
	`

	var imp Import
	err := s.db.QueryRowContext(ctx, query).Scan(
		&imp.ID,
		&imp.Source,
		pq.Array(&imp.Columns),
		&imp.RowCount,
		&imp.ImportedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest import: %w", err)
	}

	return &imp, nil
}

// SaveBatch inserts notices in one transaction. Notices whose checksum is
// already stored are left untouched. It returns how many rows were new.
func (s *NoticeStore) SaveBatch(ctx context.Context, importID int, notices []NoticeRow) (inserted int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notices (import_id, checksum, category, word_count, fields)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (checksum) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range notices {
		fields, err := json.Marshal(n.Fields)
		if err != nil {
			return 0, fmt.Errorf("failed to encode notice %s: %w", n.Checksum, err)
		}

		res, err := stmt.ExecContext(ctx, importID, n.Checksum, n.Category, n.WordCount, fields)
		if err != nil {
			return 0, fmt.Errorf("failed to insert notice %s: %w", n.Checksum, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read insert result: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// Columns returns the union of every import's columns, in order of first
// appearance from the oldest import on.
func (s *NoticeStore) Columns(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT columns FROM imports ORDER BY imported_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get import columns: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var columns []string
	for rows.Next() {
		var cols []string
		if err := rows.Scan(pq.Array(&cols)); err != nil {
			return nil, fmt.Errorf("failed to scan import columns: %w", err)
		}
		for _, c := range cols {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}

	return columns, rows.Err()
}

// LoadSnapshot reads every stored notice, in insertion order, into a query
// snapshot. The header is the union of all imports' columns; fields a
// notice lacks are treated as absent.
func (s *NoticeStore) LoadSnapshot(ctx context.Context) (*model.RecordSet, error) {
	header, err := s.Columns(ctx)
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return model.NewRecordSet(nil, nil), nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT fields FROM notices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get notices: %w", err)
	}
	defer rows.Close()

	var records []map[string]string
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}

		fields := make(map[string]string)
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode notice: %w", err)
		}
		records = append(records, fields)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return model.NewRecordSet(header, records), nil
}

// CountNotices returns the total number of stored notices
func (s *NoticeStore) CountNotices(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notices").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count notices: %w", err)
	}
	return count, nil
}
