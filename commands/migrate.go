package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Lari-oliv/olive-beauty/database"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, db, err := loadEnvironment(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db.DB); err != nil {
		return err
	}
	success("Schema is up to date")
	return nil
}
