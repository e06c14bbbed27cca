package service

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jjenkins/gazette/internal/source"
	"github.com/jjenkins/gazette/internal/store"
)

const batchSize = 500

// ImportStats tracks import statistics
type ImportStats struct {
	Total     int
	Imported  int
	Unchanged int
	Skipped   int
	Failed    int
}

// TableLoader reads a gazette table from a file path or URL
type TableLoader interface {
	Load(ctx context.Context, location string) (*source.Table, error)
}

// NoticeWriter persists parsed notices
type NoticeWriter interface {
	CreateImport(ctx context.Context, imp *store.Import) error
	SaveBatch(ctx context.Context, importID int, notices []store.NoticeRow) (int, error)
	FinishImport(ctx context.Context, importID, rowCount int) error
}

// Importer orchestrates loading the consolidated gazette table into the store
type Importer struct {
	loader    TableLoader
	store     NoticeWriter
	logger    *log.Logger
	errLogger *log.Logger
}

// NewImporter creates a new Importer
func NewImporter(loader TableLoader, noticeStore NoticeWriter) *Importer {
	return &Importer{
		loader:    loader,
		store:     noticeStore,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// Import loads the table at location and stores every notice not seen before
func (i *Importer) Import(ctx context.Context, location string) (*ImportStats, error) {
	stats := &ImportStats{}

	i.logger.Printf("Loading gazette table from %s...", location)
	table, err := i.loader.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load table: %w", err)
	}

	stats.Total = len(table.Rows)
	i.logger.Printf("Found %d rows with %d columns", stats.Total, len(table.Header))

	imp := &store.Import{Source: location, Columns: table.Header}
	if err := i.store.CreateImport(ctx, imp); err != nil {
		return nil, fmt.Errorf("failed to register import: %w", err)
	}

	parser := NewParser(table.Header)
	batch := make([]store.NoticeRow, 0, batchSize)

	flush := func(progress string) {
		if len(batch) == 0 {
			return
		}
		inserted, err := i.store.SaveBatch(ctx, imp.ID, batch)
		if err != nil {
			i.errLogger.Printf("%s Failed to save %d notices: %v", progress, len(batch), err)
			stats.Failed += len(batch)
		} else {
			stats.Imported += inserted
			stats.Unchanged += len(batch) - inserted
			i.logger.Printf("%s Saved %d new notices", progress, inserted)
		}
		batch = batch[:0]
	}

	for idx, row := range table.Rows {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		result := parser.Parse(row)
		if result.Skipped {
			stats.Skipped++
			continue
		}

		batch = append(batch, store.NoticeRow{
			Checksum:  result.Checksum,
			Category:  result.Category,
			WordCount: result.WordCount,
			Fields:    row,
		})

		if len(batch) == batchSize {
			flush(fmt.Sprintf("[%d/%d]", idx+1, stats.Total))
		}
	}
	flush(fmt.Sprintf("[%d/%d]", stats.Total, stats.Total))

	if err := i.store.FinishImport(ctx, imp.ID, stats.Total); err != nil {
		return stats, fmt.Errorf("failed to finish import: %w", err)
	}

	return stats, nil
}

// PrintSummary prints the import statistics
func (i *Importer) PrintSummary(stats *ImportStats) {
	i.logger.Println("")
	i.logger.Println("=== Import Summary ===")
	i.logger.Printf("Total rows:      %d", stats.Total)
	i.logger.Printf("Imported:        %d", stats.Imported)
	i.logger.Printf("Unchanged:       %d", stats.Unchanged)
	i.logger.Printf("Skipped:         %d (category not searchable)", stats.Skipped)
	i.logger.Printf("Failed:          %d", stats.Failed)

	if considered := stats.Total - stats.Skipped; considered > 0 {
		successRate := float64(stats.Imported+stats.Unchanged) / float64(considered) * 100
		i.logger.Printf("Success rate:    %.1f%%", successRate)
	}
}
