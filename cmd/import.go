package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jjenkins/gazette/internal/model"
	"github.com/jjenkins/gazette/internal/service"
	"github.com/jjenkins/gazette/internal/source"
	"github.com/jjenkins/gazette/internal/store"
)

var importSource string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the consolidated gazette CSV into PostgreSQL",
	Long: `Import reads the consolidated gazette table and stores every notice in
PostgreSQL. Notices are identified by a checksum of their cells, so
running the import again only adds notices that were not seen before.
Rows whose category is not searchable are skipped.

Examples:
  # Import the default consolidated file
  ./gazette import

  # Import from a URL
  ./gazette import --source https://example.org/base_datos_completa.csv`,
	Run: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importSource, "source", "s", "", "CSV file path or URL (default from config)")
}

func runImport(cmd *cobra.Command, args []string) {
	location := cfg.Source
	if importSource != "" {
		location = importSource
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	db := requireDB(cfg)
	defer db.Close()

	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	// Create dependencies
	client := source.NewClient()
	noticeStore := store.NewNoticeStore(db)
	importer := service.NewImporter(client, noticeStore)

	log.Printf("Starting import from %s", location)
	stats, err := importer.Import(ctx, location)
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Import cancelled")
			os.Exit(1)
		}
		log.Fatalf("Import failed: %v", err)
	}
	importer.PrintSummary(stats)

	// Calculate and store archive metrics
	log.Println("\nCalculating archive metrics...")
	metricsService := service.NewMetricsService(db)
	metrics, err := metricsService.CalculateAndStore(ctx)
	if err != nil {
		log.Printf("Warning: Failed to calculate metrics: %v", err)
	} else {
		printMetrics(metrics)
	}

	// Exit with error code if there were failures
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

func printMetrics(m *service.SystemMetrics) {
	log.Println("")
	log.Println("=== Archive Metrics ===")
	log.Printf("Total notices:    %d", m.TotalNotices)
	log.Printf("Total words:      %d", m.TotalWords)
	log.Printf("Total imports:    %d", m.TotalImports)
	log.Printf("Average length:   %.2f words/notice", m.AverageWords)
	if m.TopCompany != "" {
		log.Printf("Top company:      %s (%d notices)", m.TopCompany, m.TopCompanyCount)
	}
	for _, c := range model.Categories {
		if n := m.ByCategory[c]; n > 0 {
			log.Printf("  %-24s %d", c.Badge().Label, n)
		}
	}
}
