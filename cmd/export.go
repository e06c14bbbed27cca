package cmd

import (
	"context"
	"errors"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jjenkins/gazette/internal/export"
	"github.com/jjenkins/gazette/internal/query"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered notices as CSV",
	Long: `Export writes every notice matching the filters as CSV, sorted by
publication date. Result sets larger than the export limit are refused;
narrow the filters and try again.`,
	Run: func(cmd *cobra.Command, args []string) {
		spec := searchSpec()
		set := loadSnapshot(context.Background(), cfg)

		records, err := query.ExportSet(set, spec)
		var limitErr *query.ExportLimitError
		if errors.As(err, &limitErr) {
			log.Fatalf("Export refused: %d results exceed the limit of %d, narrow the filters", limitErr.Count, limitErr.Limit)
		}
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}

		var w io.Writer = os.Stdout
		if exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				log.Fatalf("Failed to create %s: %v", exportOut, err)
			}
			defer f.Close()
			w = f
		}

		if err := export.WriteCSV(w, set.Header(), records); err != nil {
			log.Fatalf("Failed to write export: %v", err)
		}
		if exportOut != "-" {
			log.Printf("Exported %d notices to %s", len(records), exportOut)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addFilterFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", export.Filename, "Output file, or - for stdout")
}
