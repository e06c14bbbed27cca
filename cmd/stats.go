package cmd

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jjenkins/gazette/internal/service"
	"github.com/jjenkins/gazette/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the latest archive metrics",
	Long:  `Print the metrics calculated by the most recent import.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := requireDB(cfg)
		defer db.Close()

		ctx := context.Background()

		latest, err := store.NewNoticeStore(db).LatestImport(ctx)
		if err != nil {
			log.Fatalf("Failed to load import history: %v", err)
		}
		if latest != nil {
			fmt.Printf("Last import: %s at %s (%d rows, %d columns)\n\n",
				latest.Source, latest.ImportedAt.Format("2006-01-02 15:04"), latest.RowCount, len(latest.Columns))
		}

		metrics, err := service.NewMetricsService(db).GetLatestMetrics(ctx)
		if err != nil {
			log.Fatalf("Failed to load metrics: %v", err)
		}
		if len(metrics) == 0 {
			fmt.Println("No metrics yet. Run the import command first.")
			return
		}

		names := make([]string, 0, len(metrics))
		for name := range metrics {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			fmt.Printf("%-32s %s\n", name, metrics[name])
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
