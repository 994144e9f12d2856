package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thecodejesters/visaadmin/internal/config"
	"github.com/thecodejesters/visaadmin/internal/database"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema tools",
		Long:  `Apply or list the schema migrations directly against DATABASE_URL.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the migration files in the order they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				files, err := database.MigrationFiles(database.MigrationSource(cfg.Database.MigrationsPath))
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				pool, err := database.NewPool(cmd.Context(), cfg.Database)
				if err != nil {
					return err
				}
				defer pool.Close()
				return database.RunMigrations(cmd.Context(), pool, database.MigrationSource(cfg.Database.MigrationsPath))
			},
		},
	)
	return cmd
}
