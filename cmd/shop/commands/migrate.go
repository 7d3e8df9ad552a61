package commands

import (
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/online_pharmacy/pkg/config"
	pkgdb "github.com/Skotchmaster/online_pharmacy/pkg/db"

	"github.com/Skotchmaster/online_pharmacy/internal/repo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create or update the users, products, orders and order_items tables.

Examples:
  shop migrate
  DB_DRIVER=sqlite DATABASE_URL=shop.db shop migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := openDB(ctx, config.Load())
		if err != nil {
			return err
		}
		defer pkgdb.Close(db)

		if err := repo.New(db).Migrate(ctx); err != nil {
			return err
		}
		logger.Info("migrate_done")
		return nil
	},
}
