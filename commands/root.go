package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "olive-beauty",
	Short: "Olive Beauty storefront and admin API",
	Long: `Olive Beauty serves the storefront and admin REST API.

Commands:
  serve         - Start the HTTP server
  migrate       - Create or update the database schema
  create-admin  - Create or promote an admin account
  stats         - Print the dashboard overview`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Development logging")
}
