package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jjenkins/gazette/internal/model"
	"github.com/jjenkins/gazette/internal/query"
	"github.com/jjenkins/gazette/internal/templates"
)

var (
	searchText       string
	searchCategory   string
	searchCompany    string
	searchIdentifier string
	searchAscending  bool
	searchPage       int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search notices and print one page of results",
	Long: `Search filters the notices and prints one page of results, most recent
first unless --asc is given. All filters are combined.

Examples:
  ./gazette search --text "junta general" --category JUNTA_ACCIONISTAS
  ./gazette search --company acme --page 2`,
	Run: func(cmd *cobra.Command, args []string) {
		spec := searchSpec()
		engine := query.NewEngine(loadSnapshot(context.Background(), cfg))

		// A fresh state ignores movement on its first query, so record the
		// spec before asking for the page.
		state := query.NewState()
		state.Observe(spec)
		res := engine.Search(state, spec, query.Nav{Kind: query.NavGoto, Page: searchPage})

		printResult(res)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	addFilterFlags(searchCmd)
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Page to print")
}

// addFilterFlags registers the filter flags shared by search and export
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&searchText, "text", "q", "", "Text the notice body must contain (case-insensitive)")
	cmd.Flags().StringVarP(&searchCategory, "category", "c", string(model.CategoryAll), "Notice category, or all")
	cmd.Flags().StringVar(&searchCompany, "company", "", "Company name substring (case-insensitive)")
	cmd.Flags().StringVar(&searchIdentifier, "ruc", "", "RUC substring")
	cmd.Flags().BoolVar(&searchAscending, "asc", false, "Oldest first")
}

func searchSpec() query.Spec {
	spec := query.Spec{
		Text:       searchText,
		Category:   model.Category(searchCategory),
		Company:    searchCompany,
		Identifier: searchIdentifier,
		Order:      query.Descending,
	}
	if searchAscending {
		spec.Order = query.Ascending
	}
	return spec
}

func printResult(res query.Result) {
	meta := res.Page.Meta
	s := res.Summary

	if s.HasCategories {
		fmt.Printf("Results: %d | Shareholder meetings: %d | Dissolutions: %d | Auctions: %d\n",
			s.Total, s.ShareholderMeetings, s.Dissolutions, s.Auctions)
	} else {
		fmt.Printf("Results: %d\n", s.Total)
	}

	if meta.Total == 0 {
		fmt.Println("No notices match the current filters.")
		return
	}

	fmt.Printf("Showing %d - %d of %d results (page %d of %d)\n\n",
		meta.Start, meta.End, meta.Total, meta.Page, meta.TotalPages)

	for _, r := range res.Page.Records {
		if s.HasCategories {
			fmt.Printf("[%s] ", r.Category().Badge().Label)
		}
		fmt.Println(templates.MetadataLine(r, res.DateField))

		var body string
		if col, ok := res.TextField.Name(); ok {
			body = r.Raw(col)
		}
		if ex := query.NewExcerpt(body); ex.Available {
			fmt.Printf("  %s\n\n", ex.Preview)
		} else {
			fmt.Print("  No text available\n\n")
		}
	}

	if !res.Exportable {
		fmt.Printf("Too many results to export (%d > %d). Narrow the filters.\n", s.Total, query.ExportLimit)
	}
}
