package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jjenkins/gazette/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gazette",
	Short: "Search legal notices published in El Peruano",
	Long: `gazette searches, filters and pages through legal notices extracted from
the official gazette: decrees, resolutions, laws, shareholder meetings,
dissolutions and auctions.

The notices come from the consolidated CSV file (or a URL serving it), or
from PostgreSQL when DATABASE_URL is set and the import command has run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./"+config.DefaultFile+" if present)")
}
