package cli

import (
	"github.com/spf13/cobra"

	"dora-roi/internal/config"
	"dora-roi/internal/registry"
)

// InitDBCommand creates the init-db command
func InitDBCommand() *cobra.Command {
	var dbConnStr string

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the register schema and tables",
		Long: `Create the roi schema and its tables in PostgreSQL. Safe to run more
than once.

Example:
  DB_CONN_STRING=postgres://localhost:5432/roi?sslmode=disable ./roi init-db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			connStr := dbConnStr
			if connStr == "" {
				connStr = config.GetStoreConfig().ConnectionString
			}
			store, err := registry.NewStore(connStr)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.InitDB(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("register schema ready")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbConnStr, "db", "", "Database connection string (overrides env var)")

	return cmd
}
